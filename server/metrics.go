package server

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	predictions *prometheus.CounterVec
	inference   prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			}, []string{"path", "method", "status"},
		),
		predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fashion_predictions_total",
				Help: "Number of classified images by predicted class",
			}, []string{"class"},
		),
		inference: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fashion_inference_duration_seconds",
				Help:    "Duration of preprocessing and inference of one image",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
		),
	}
	m.registry.MustRegister(m.requests, m.predictions, m.inference)
	return m
}
