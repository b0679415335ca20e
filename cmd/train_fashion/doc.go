// Package main provides the program training the convolutional Fashion-MNIST
// classifier. It extracts the dataset archive, trains the network on all CPU
// cores, prints the test accuracy and saves the model for serve_fashion.
package main
