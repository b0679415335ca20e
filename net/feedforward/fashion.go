package feedforward

import "github.com/neurlang/fashion/layer"
import "github.com/neurlang/fashion/layer/conv2d"
import "github.com/neurlang/fashion/layer/flatten"
import "github.com/neurlang/fashion/layer/full"
import "github.com/neurlang/fashion/layer/maxpool2d"

// FashionInput is the shape of one Fashion-MNIST sample
var FashionInput = layer.Shape{H: 28, W: 28, C: 1}

// Fashion returns the uncompiled convolutional classifier for 28x28x1 images
// with outputs named by classes.
func Fashion(classes []string) *FeedforwardNetwork {
	var net FeedforwardNetwork
	net.NewLayer(conv2d.MustNew(32, 3, layer.ReLU))
	net.NewLayer(maxpool2d.MustNew(2))
	net.NewLayer(conv2d.MustNew(64, 3, layer.ReLU))
	net.NewLayer(maxpool2d.MustNew(2))
	net.NewLayer(conv2d.MustNew(64, 3, layer.ReLU))
	net.NewLayer(flatten.New())
	net.NewLayer(full.MustNew(64, layer.ReLU))
	net.NewLayer(full.MustNew(len(classes), layer.Softmax))
	net.SetClasses(classes)
	return &net
}
