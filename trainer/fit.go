package trainer

import "context"
import "fmt"
import "math/rand"
import "time"

import log "github.com/sirupsen/logrus"

import "github.com/neurlang/fashion/kernel"
import "github.com/neurlang/fashion/loss"
import "github.com/neurlang/fashion/net/feedforward"
import "github.com/neurlang/fashion/optimizer"
import "github.com/neurlang/fashion/parallel"

// Epoch holds the metrics of one pass over the training set. The validation
// metrics are zero when there is no validation set.
type Epoch struct {
	Epoch       int
	Loss        float64
	Accuracy    float64
	ValLoss     float64
	ValAccuracy float64
	Duration    time.Duration
}

// History is the list of finished epochs
type History []Epoch

// Fit trains net on train with mini-batch gradient descent. Each batch is
// split across goroutines, every one with its own scratch buffers, and the
// mean gradient is handed to opt. After every epoch net is evaluated on
// validation, which may be nil. Cancelling ctx stops after the current batch.
func Fit(ctx context.Context, net *feedforward.FeedforwardNetwork, opt optimizer.Optimizer,
	train, validation Dataset, h HyperParameters) (History, error) {

	if h.Epochs <= 0 || h.BatchSize <= 0 {
		return nil, fmt.Errorf("epochs (%d) and batch size (%d) must be positive", h.Epochs, h.BatchSize)
	}
	n := train.Len()
	if n == 0 {
		return nil, fmt.Errorf("training set is empty")
	}
	threads := h.threads()
	if threads > h.BatchSize {
		threads = h.BatchSize
	}

	scratch := make([]*feedforward.Scratch, threads)
	for i := range scratch {
		scratch[i] = net.NewScratch()
	}
	losses := make([]float64, threads)
	corrects := make([]int, threads)
	params := net.Params()

	rng := rand.New(rand.NewSource(h.Seed))
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	var history History
	for epoch := 1; epoch <= h.Epochs; epoch++ {
		start := time.Now()
		if h.Shuffle {
			rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
		}

		var sumLoss float64
		var correct int
		for lo := 0; lo < n; lo += h.BatchSize {
			if err := ctx.Err(); err != nil {
				return history, err
			}
			hi := lo + h.BatchSize
			if hi > n {
				hi = n
			}
			batch := order[lo:hi]
			workers := threads
			if workers > len(batch) {
				workers = len(batch)
			}

			parallel.Chunks(len(batch), workers, func(chunk, lo, hi int) {
				s := scratch[chunk]
				s.Zero()
				losses[chunk], corrects[chunk] = 0, 0
				for _, j := range batch[lo:hi] {
					label := train.Get(j, s.Input())
					l, ok := net.Backprop(s, label)
					losses[chunk] += float64(l)
					if ok {
						corrects[chunk]++
					}
				}
			})

			grads := scratch[0].Grads()
			for w := 1; w < workers; w++ {
				for p, g := range scratch[w].Grads() {
					kernel.Axpy(1, g, grads[p])
				}
			}
			scale := 1 / float32(len(batch))
			for _, g := range grads {
				for i := range g {
					g[i] *= scale
				}
			}
			opt.Step(params, grads)

			for w := 0; w < workers; w++ {
				sumLoss += losses[w]
				correct += corrects[w]
			}
		}

		e := Epoch{
			Epoch:    epoch,
			Loss:     sumLoss / float64(n),
			Accuracy: float64(correct) / float64(n),
		}
		if validation != nil && validation.Len() > 0 {
			e.ValLoss, e.ValAccuracy = Evaluate(net, validation, threads)
		}
		e.Duration = time.Since(start)
		history = append(history, e)

		log.WithFields(log.Fields{
			"epoch":        fmt.Sprintf("%d/%d", epoch, h.Epochs),
			"loss":         fmt.Sprintf("%.4f", e.Loss),
			"accuracy":     fmt.Sprintf("%.4f", e.Accuracy),
			"val_loss":     fmt.Sprintf("%.4f", e.ValLoss),
			"val_accuracy": fmt.Sprintf("%.4f", e.ValAccuracy),
			"duration":     e.Duration.Round(time.Millisecond),
		}).Info("[Trainer] Epoch finished")
	}
	return history, nil
}

// Evaluate returns the mean cross entropy loss and the accuracy of net on data
func Evaluate(net *feedforward.FeedforwardNetwork, data Dataset, threads int) (meanLoss, accuracy float64) {
	n := data.Len()
	if n == 0 {
		return 0, 0
	}
	if threads <= 0 {
		threads = parallel.Threads()
	}
	if threads > n {
		threads = n
	}
	losses := make([]float64, threads)
	corrects := make([]int, threads)

	parallel.Chunks(n, threads, func(chunk, lo, hi int) {
		s := net.NewScratch()
		for i := lo; i < hi; i++ {
			label := data.Get(i, s.Input())
			probs := net.Forward(s)
			losses[chunk] += float64(loss.SparseCategoricalCrossentropy(probs, label, nil))
			if loss.Argmax(probs) == label {
				corrects[chunk]++
			}
		}
	})

	var correct int
	for i := range losses {
		meanLoss += losses[i]
		correct += corrects[i]
	}
	return meanLoss / float64(n), float64(correct) / float64(n)
}
