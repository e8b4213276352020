package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"energycoach/internal/config"
	"energycoach/internal/logging"
	"energycoach/internal/model"
	"energycoach/internal/notify"
	"energycoach/internal/pipeline"
	"energycoach/internal/storage"
)

// Local one-shot runner: feeds a raw CSV file through both pipeline stages
// against a filesystem object store and the configured summary store and
// notifier. Defaults run fully offline (sqlite + log notifier).
func main() {
	if err := run(); err != nil {
		log.Fatalf("energycoach failed: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file (yaml or json)")
	input := flag.String("input", "", "raw CSV file to process")
	dataDir := flag.String("data", "data", "root directory of the local object store")
	flag.Parse()

	if *input == "" {
		return fmt.Errorf("-input is required")
	}

	_ = godotenv.Load()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cfg.Pipeline.TransformedBucket == "" {
		cfg.Pipeline.TransformedBucket = "transformed"
	}
	if err := cfg.ValidateCalculate(); err != nil {
		return err
	}

	logger := logging.ForInvocation(logging.NewLogger(cfg.LogLevel), uuid.NewString())
	ctx := context.Background()

	payload, err := os.ReadFile(*input)
	if err != nil {
		return err
	}

	objects := storage.NewFS(*dataDir)
	rawKey := filepath.Base(*input)
	if err := objects.Put(ctx, "raw", rawKey, payload, "text/csv", storage.ObjectMeta{}); err != nil {
		return err
	}

	summaries, err := storage.NewSummaryStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer summaries.Close()
	if err := summaries.Init(ctx); err != nil {
		return err
	}

	notifier, err := notify.New(ctx, cfg.Notifier, logger)
	if err != nil {
		return err
	}
	defer notifier.Close()

	transform := pipeline.NewTransform(objects, cfg.Pipeline.TransformedBucket, logger)
	keys, err := transform.Run(ctx, model.TriggerLocator{Bucket: "raw", Key: rawKey})
	if err != nil {
		return err
	}

	calculate := pipeline.NewCalculate(objects, summaries, notifier, logger)
	for _, key := range keys {
		result, err := calculate.Run(ctx, model.TriggerLocator{Bucket: cfg.Pipeline.TransformedBucket, Key: key})
		if err != nil {
			return err
		}
		logger.Info("batch processed",
			"key", key,
			"customer_id", result.CustomerID,
			"month", result.Month,
			"status", result.Status,
		)
	}
	return nil
}
