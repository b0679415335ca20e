// Package server exposes a trained network over HTTP
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/neurlang/fashion/config"
	"github.com/neurlang/fashion/datasets/fashionmnist"
	"github.com/neurlang/fashion/net/feedforward"
	"github.com/neurlang/fashion/parallel"
)

// Banner is the body of GET /
const Banner = "Simple API to classify Fashion MNIST images, with Go!"

type Server struct {
	net     *feedforward.FeedforwardNetwork
	classes []string
	dir     string
	ext     string
	addr    string
	threads int

	metrics *metrics
	router  *gin.Engine
}

// New creates a server classifying the cfg.PredictDir images with net
func New(net *feedforward.FeedforwardNetwork, cfg *config.Config) *Server {
	classes := net.Classes()
	if len(classes) == 0 {
		classes = fashionmnist.ClassNames
	}
	s := &Server{
		net:     net,
		classes: classes,
		dir:     cfg.PredictDir,
		ext:     cfg.Extension,
		addr:    cfg.Addr,
		threads: parallel.Threads(),
		metrics: newMetrics(),
	}

	router := gin.New()
	router.Use(s.requestLogger(), recovery())
	router.GET("/", s.index)
	router.GET("/predict", s.predict)
	router.POST("/predict", s.predict)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))
	s.router = router
	return s
}

// Router returns the http handler of the server
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}
	errs := make(chan error, 1)
	go func() {
		log.WithField("addr", s.addr).Info("[Server] Listening")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	log.Info("[Server] Shutting down")
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdown)
}

// Serve is the serving phase: load the model at cfg.ModelPath and serve it
// until ctx is cancelled. A missing model is an error.
func Serve(ctx context.Context, cfg *config.Config) error {
	if cfg.Release {
		log.Info("[Server] Starting gin in release mode")
		gin.SetMode(gin.ReleaseMode)
	}
	net, err := feedforward.Load(cfg.ModelPath)
	if err != nil {
		return err
	}
	if err := fashionmnist.CheckClasses(net.Classes()); err != nil {
		return errors.Wrapf(err, "model '%s'", cfg.ModelPath)
	}
	log.WithFields(log.Fields{
		"model":  cfg.ModelPath,
		"params": net.Len(),
		"dir":    cfg.PredictDir,
	}).Info("[Server] Model loaded")
	return New(net, cfg).Run(ctx)
}
