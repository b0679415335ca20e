package trainer

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/binary"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/fashion/config"
	"github.com/neurlang/fashion/datasets/fashionmnist"
	"github.com/neurlang/fashion/layer"
	"github.com/neurlang/fashion/layer/conv2d"
	"github.com/neurlang/fashion/layer/flatten"
	"github.com/neurlang/fashion/layer/full"
	"github.com/neurlang/fashion/layer/maxpool2d"
	"github.com/neurlang/fashion/net/feedforward"
	"github.com/neurlang/fashion/optimizer"
)

// halves is a dataset of 6x6 images whose left (label 0) or right (label 1)
// half is bright
type halves struct {
	noise [][]float32
}

func newHalves(n int, seed int64) halves {
	rng := rand.New(rand.NewSource(seed))
	h := halves{noise: make([][]float32, n)}
	for i := range h.noise {
		h.noise[i] = make([]float32, 36)
		for j := range h.noise[i] {
			h.noise[i][j] = 0.2 * rng.Float32()
		}
	}
	return h
}

func (h halves) Len() int {
	return len(h.noise)
}

func (h halves) Get(i int, dst []float32) int {
	label := i % 2
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			v := h.noise[i][6*y+x]
			if (x < 3) == (label == 0) {
				v += 0.8
			}
			dst[6*y+x] = v
		}
	}
	return label
}

func smallNet(t *testing.T) *feedforward.FeedforwardNetwork {
	var net feedforward.FeedforwardNetwork
	net.NewLayer(conv2d.MustNew(4, 3, layer.ReLU))
	net.NewLayer(maxpool2d.MustNew(2))
	net.NewLayer(flatten.New())
	net.NewLayer(full.MustNew(8, layer.ReLU))
	net.NewLayer(full.MustNew(2, layer.Softmax))
	require.NoError(t, net.Compile(layer.Shape{H: 6, W: 6, C: 1}, rand.New(rand.NewSource(3))))
	return &net
}

func TestFitLearnsHalves(t *testing.T) {
	net := smallNet(t)
	train := newHalves(64, 1)
	validation := newHalves(16, 2)

	h := Defaults()
	h.Epochs = 8
	h.BatchSize = 8
	h.Threads = 3

	history, err := Fit(context.Background(), net, optimizer.NewAdam(0.01), train, validation, h)
	require.NoError(t, err)
	require.Len(t, history, 8)
	require.Less(t, history[7].Loss, history[0].Loss)
	require.GreaterOrEqual(t, history[7].ValAccuracy, 0.9)

	loss, acc := Evaluate(net, validation, 2)
	require.Equal(t, history[7].ValAccuracy, acc)
	require.InDelta(t, history[7].ValLoss, loss, 1e-9)
}

func TestFitSameResultForAnyThreadCount(t *testing.T) {
	train := newHalves(20, 1)
	h := Defaults()
	h.Epochs = 1
	h.BatchSize = 5

	a, b := smallNet(t), smallNet(t)
	h.Threads = 1
	_, err := Fit(context.Background(), a, optimizer.NewSGD(0.1), train, nil, h)
	require.NoError(t, err)
	h.Threads = 4
	_, err = Fit(context.Background(), b, optimizer.NewSGD(0.1), train, nil, h)
	require.NoError(t, err)

	in := make([]float32, 36)
	train.Get(0, in)
	pa, pb := a.Infer(in), b.Infer(in)
	for i := range pa {
		require.InDelta(t, pa[i], pb[i], 1e-4)
	}
}

func TestFitStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	history, err := Fit(ctx, smallNet(t), optimizer.NewSGD(0.1), newHalves(8, 1), nil, Defaults())
	require.True(t, errors.Is(err, context.Canceled))
	require.Empty(t, history)
}

func TestFitRejectsBadArguments(t *testing.T) {
	h := Defaults()
	h.BatchSize = 0
	_, err := Fit(context.Background(), smallNet(t), optimizer.NewSGD(0.1), newHalves(8, 1), nil, h)
	require.Error(t, err)

	_, err = Fit(context.Background(), smallNet(t), optimizer.NewSGD(0.1), newHalves(0, 1), nil, Defaults())
	require.Error(t, err)
}

func TestEvaluateEmpty(t *testing.T) {
	loss, acc := Evaluate(smallNet(t), newHalves(0, 1), 4)
	require.Zero(t, loss)
	require.Zero(t, acc)
}

func TestResume(t *testing.T) {
	name := filepath.Join(t.TempDir(), "model.json.lzw")

	net := feedforward.Fashion(fashionmnist.ClassNames)
	require.NoError(t, net.Compile(feedforward.FashionInput, rand.New(rand.NewSource(1))))
	require.NoError(t, Resume(net, true, name), "missing model starts from scratch")
	require.NoError(t, net.WriteCompressedWeightsToFile(name))

	other := feedforward.Fashion(fashionmnist.ClassNames)
	require.NoError(t, other.Compile(feedforward.FashionInput, rand.New(rand.NewSource(2))))
	require.NoError(t, Resume(other, false, name))
	require.NotEqual(t, net.Params()[0].Value, other.Params()[0].Value)

	require.NoError(t, Resume(other, true, name))
	require.Equal(t, net.Params()[0].Value, other.Params()[0].Value)

	require.Error(t, Resume(smallNet(t), true, name))
}

func idx(magic uint32, dims []uint32, data []byte) []byte {
	var b bytes.Buffer
	binary.Write(&b, binary.BigEndian, append([]uint32{magic}, dims...))
	b.Write(data)
	return b.Bytes()
}

func writeArchive(t *testing.T, name string, train, test int) {
	set := func(n int) (images, labels []byte) {
		for i := 0; i < n; i++ {
			img := make([]byte, 28*28)
			for j := range img {
				img[j] = byte(25 * (i % 10))
			}
			images = append(images, img...)
			labels = append(labels, byte(i%10))
		}
		return
	}
	trainImg, trainVal := set(train)
	testImg, testVal := set(test)
	files := map[string][]byte{
		"train-images-idx3-ubyte": idx(0x803, []uint32{uint32(train), 28, 28}, trainImg),
		"train-labels-idx1-ubyte": idx(0x801, []uint32{uint32(train)}, trainVal),
		"t10k-images-idx3-ubyte":  idx(0x803, []uint32{uint32(test), 28, 28}, testImg),
		"t10k-labels-idx1-ubyte":  idx(0x801, []uint32{uint32(test)}, testVal),
	}

	f, err := os.Create(name)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for entry, data := range files {
		fw, err := w.Create(entry)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func TestRunSavesLoadableModel(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.Default()
	cfg.ArchivePath = filepath.Join(tmp, "archive.zip")
	cfg.DataDir = filepath.Join(tmp, "fashion_data")
	cfg.ModelPath = filepath.Join(tmp, "model.json.lzw")
	cfg.Epochs = 1
	cfg.BatchSize = 4
	writeArchive(t, cfg.ArchivePath, 20, 10)

	net, err := Run(context.Background(), cfg, false)
	require.NoError(t, err)

	loaded, err := feedforward.Load(cfg.ModelPath)
	require.NoError(t, err)
	require.Equal(t, fashionmnist.ClassNames, loaded.Classes())
	in := make([]float32, 28*28)
	for i := range in {
		in[i] = 0.5
	}
	require.Equal(t, net.Infer(in), loaded.Infer(in))
}

func TestRunWithoutDataset(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.Default()
	cfg.ArchivePath = filepath.Join(tmp, "missing.zip")
	cfg.DataDir = filepath.Join(tmp, "fashion_data")
	cfg.ModelPath = filepath.Join(tmp, "model.json.lzw")
	if _, err := os.Stat("/tmp/fashion-mnist/"); err == nil {
		t.Skip("dataset present in /tmp/fashion-mnist")
	}
	_, err := Run(context.Background(), cfg, false)
	require.Error(t, err)
}
