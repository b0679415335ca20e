// Package main runs both phases in one process: it trains and saves the
// Fashion-MNIST classifier, then reloads the saved model and serves it.
package main
