package main

import "context"
import "flag"
import "os"
import "os/signal"
import "syscall"

import log "github.com/sirupsen/logrus"

import "github.com/neurlang/fashion/config"
import "github.com/neurlang/fashion/trainer"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("[Main] Couldn't load configuration: ", err.Error())
	}

	flag.StringVar(&cfg.ArchivePath, "archive", cfg.ArchivePath, "dataset .zip archive")
	flag.StringVar(&cfg.DataDir, "datadir", cfg.DataDir, "directory the archive is extracted to")
	flag.StringVar(&cfg.ModelPath, "dstmodel", cfg.ModelPath, "model destination .json.lzw file")
	flag.IntVar(&cfg.Epochs, "epochs", cfg.Epochs, "number of epochs")
	resume := flag.Bool("resume", false, "resume training")
	pgo := flag.Bool("pgo", false, "enable pgo")
	flag.Parse()
	cfg.SetupLogging()

	if err := run(cfg, *resume, *pgo); err != nil {
		log.Fatal("[Main] Training failed: ", err.Error())
	}
}

func run(cfg *config.Config, resume, pgo bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if pgo {
		stop, err := startPGO("default.pgo")
		if err != nil {
			return err
		}
		defer stop()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	_, err := trainer.Run(ctx, cfg, resume)
	return err
}
