// Package config reads the settings shared by the train and serve commands
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	ArchivePath string
	DataDir     string
	ModelPath   string

	PredictDir string
	Extension  string
	Addr       string
	Release    bool

	Epochs          int
	BatchSize       int
	ValidationSplit float64
	LearningRate    float64
	Seed            int64

	LogLevel string
}

// Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		ArchivePath:     "archive.zip",
		DataDir:         "fashion_data",
		ModelPath:       "fashion_mnist_model.json.lzw",
		PredictDir:      "new_data",
		Extension:       ".jpg",
		Addr:            "0.0.0.0:5000",
		Epochs:          10,
		BatchSize:       32,
		ValidationSplit: 0.2,
		LearningRate:    0.001,
		Seed:            1,
		LogLevel:        "debug",
	}
}

// Load reads the .env files (or .env in the working directory) into the
// environment, then overrides the defaults from the FASHION_* variables.
// Missing .env files are ignored.
func Load(filenames ...string) (*Config, error) {
	_ = godotenv.Load(filenames...)

	cfg := Default()
	str(&cfg.ArchivePath, "FASHION_ARCHIVE")
	str(&cfg.DataDir, "FASHION_DATA_DIR")
	str(&cfg.ModelPath, "FASHION_MODEL")
	str(&cfg.PredictDir, "FASHION_PREDICT_DIR")
	str(&cfg.Extension, "FASHION_EXTENSION")
	str(&cfg.Addr, "FASHION_ADDR")
	str(&cfg.LogLevel, "FASHION_LOG_LEVEL")
	for _, err := range []error{
		boolean(&cfg.Release, "FASHION_RELEASE"),
		integer(&cfg.Epochs, "FASHION_EPOCHS"),
		integer(&cfg.BatchSize, "FASHION_BATCH_SIZE"),
		float(&cfg.ValidationSplit, "FASHION_VALIDATION_SPLIT"),
		float(&cfg.LearningRate, "FASHION_LEARNING_RATE"),
		integer64(&cfg.Seed, "FASHION_SEED"),
	} {
		if err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings which can not work
func (c *Config) Validate() error {
	if c.Epochs <= 0 {
		return errors.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return errors.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.ValidationSplit < 0 || c.ValidationSplit >= 1 {
		return errors.Errorf("validation split must be in [0, 1), got %v", c.ValidationSplit)
	}
	if c.LearningRate <= 0 {
		return errors.Errorf("learning rate must be positive, got %v", c.LearningRate)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log level")
	}
	return nil
}

// SetupLogging applies the configured log level to the standard logger
func (c *Config) SetupLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func str(dst *string, key string) {
	*dst = envOr(key, *dst)
}

func integer(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.Wrap(err, key)
	}
	*dst = n
	return nil
}

func integer64(dst *int64, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return errors.Wrap(err, key)
	}
	*dst = n
	return nil
}

func float(dst *float64, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return errors.Wrap(err, key)
	}
	*dst = f
	return nil
}

func boolean(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return errors.Wrap(err, key)
	}
	*dst = b
	return nil
}
