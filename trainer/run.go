package trainer

import "context"
import "fmt"
import "math/rand"

import "github.com/pkg/errors"
import log "github.com/sirupsen/logrus"

import "github.com/neurlang/fashion/config"
import "github.com/neurlang/fashion/datasets/fashionmnist"
import "github.com/neurlang/fashion/kernel"
import "github.com/neurlang/fashion/net/feedforward"
import "github.com/neurlang/fashion/optimizer"
import "github.com/neurlang/fashion/parallel"

// Run is the training phase: extract the archive, load the dataset, train the
// Fashion network, report the test accuracy and save the model to
// cfg.ModelPath. The trained network is returned.
func Run(ctx context.Context, cfg *config.Config, resume bool) (*feedforward.FeedforwardNetwork, error) {
	if _, err := fashionmnist.Unzip(cfg.ArchivePath, cfg.DataDir); err != nil {
		log.WithError(err).Warn("[Trainer] Archive not extracted, looking for the dataset elsewhere")
	}

	trainSet, testSet, err := fashionmnist.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	trainSet, validationSet := fashionmnist.Split(trainSet, cfg.ValidationSplit)
	log.WithFields(log.Fields{
		"train":      len(trainSet),
		"validation": len(validationSet),
		"test":       len(testSet),
	}).Info("[Trainer] Dataset loaded")

	net := feedforward.Fashion(fashionmnist.ClassNames)
	if err := net.Compile(feedforward.FashionInput, rand.New(rand.NewSource(cfg.Seed))); err != nil {
		return nil, err
	}
	if err := Resume(net, resume, cfg.ModelPath); err != nil {
		return nil, err
	}

	h := Defaults()
	h.Epochs = cfg.Epochs
	h.BatchSize = cfg.BatchSize
	h.Seed = cfg.Seed

	log.WithFields(log.Fields{
		"cpu":      parallel.CPU(),
		"threads":  h.Threads,
		"unrolled": kernel.Unrolled(),
		"params":   net.Len(),
	}).Info("[Trainer] Starting training")
	log.Debug("[Trainer] Network\n" + net.Summary())

	if _, err := Fit(ctx, net, optimizer.NewAdam(cfg.LearningRate), trainSet, validationSet, h); err != nil {
		return nil, errors.Wrap(err, "training interrupted")
	}

	testLoss, testAcc := Evaluate(net, testSet, h.Threads)
	log.WithFields(log.Fields{
		"loss":     fmt.Sprintf("%.4f", testLoss),
		"accuracy": fmt.Sprintf("%.4f", testAcc),
	}).Info("[Trainer] Test set evaluated")
	fmt.Printf("\nTest accuracy: %v\n", testAcc)

	if err := net.WriteCompressedWeightsToFile(cfg.ModelPath); err != nil {
		return nil, err
	}
	log.WithField("model", cfg.ModelPath).Info("[Trainer] Model saved")
	return net, nil
}
