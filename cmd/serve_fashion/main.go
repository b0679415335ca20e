package main

import "context"
import "flag"
import "os"
import "os/signal"
import "syscall"

import log "github.com/sirupsen/logrus"

import "github.com/neurlang/fashion/config"
import "github.com/neurlang/fashion/server"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("[Main] Couldn't load configuration: ", err.Error())
	}

	flag.StringVar(&cfg.ModelPath, "model", cfg.ModelPath, "trained .json.lzw model file")
	flag.StringVar(&cfg.PredictDir, "dir", cfg.PredictDir, "directory with the images to classify")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.BoolVar(&cfg.Release, "release", cfg.Release, "run gin in release mode")
	flag.Parse()
	cfg.SetupLogging()
	if err := cfg.Validate(); err != nil {
		log.Fatal("[Main] Invalid configuration: ", err.Error())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := server.Serve(ctx, cfg); err != nil {
		log.Fatal("[Main] Serving failed: ", err.Error())
	}
}
