// Package main provides the HTTP service classifying the images dropped into
// a directory with a model saved by train_fashion.
package main
