package main

import "context"
import "flag"
import "os"
import "os/signal"
import "syscall"

import log "github.com/sirupsen/logrus"

import "github.com/neurlang/fashion/config"
import "github.com/neurlang/fashion/server"
import "github.com/neurlang/fashion/trainer"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("[Main] Couldn't load configuration: ", err.Error())
	}

	flag.StringVar(&cfg.ArchivePath, "archive", cfg.ArchivePath, "dataset .zip archive")
	flag.StringVar(&cfg.DataDir, "datadir", cfg.DataDir, "directory the archive is extracted to")
	flag.StringVar(&cfg.ModelPath, "model", cfg.ModelPath, "model .json.lzw file")
	flag.StringVar(&cfg.PredictDir, "dir", cfg.PredictDir, "directory with the images to classify")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.IntVar(&cfg.Epochs, "epochs", cfg.Epochs, "number of epochs")
	flag.BoolVar(&cfg.Release, "release", cfg.Release, "run gin in release mode")
	skipTrain := flag.Bool("skiptrain", false, "serve the existing model without training")
	flag.Parse()
	cfg.SetupLogging()
	if err := cfg.Validate(); err != nil {
		log.Fatal("[Main] Invalid configuration: ", err.Error())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !*skipTrain {
		if _, err := trainer.Run(ctx, cfg, false); err != nil {
			log.Fatal("[Main] Training failed: ", err.Error())
		}
	}
	if err := server.Serve(ctx, cfg); err != nil {
		log.Fatal("[Main] Serving failed: ", err.Error())
	}
}
