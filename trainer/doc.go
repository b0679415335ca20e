// Package trainer provides high-level training orchestration for feedforward networks.
// It runs data-parallel mini-batch gradient descent over a dataset on all CPU
// cores, evaluates the result, and drives the complete Fashion-MNIST
// training phase from archive to saved model.
package trainer
