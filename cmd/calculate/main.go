package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"energycoach/internal/config"
	"energycoach/internal/logging"
	"energycoach/internal/notify"
	"energycoach/internal/pipeline"
	"energycoach/internal/storage"
)

func main() {
	lambda.Start(handler)
}

// handler runs one calculate invocation: summary computation, change
// detection, idempotent upsert and the conditional notification.
func handler(ctx context.Context, event events.S3Event) error {
	cfg := config.FromEnv()
	logger := logging.ForInvocation(logging.NewLogger(cfg.LogLevel), uuid.NewString())

	if err := cfg.ValidateCalculate(); err != nil {
		logger.Error("configuration invalid", "err", err)
		return err
	}
	loc, err := pipeline.ParseTrigger(event)
	if err != nil {
		logger.Error("trigger rejected", "err", err)
		return err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Error("aws configuration failed", "err", err)
		return err
	}
	objects := storage.NewS3(s3.NewFromConfig(awsCfg))

	summaries, err := storage.NewSummaryStore(ctx, cfg.Storage)
	if err != nil {
		logger.Error("summary store init failed", "err", err)
		return err
	}
	defer summaries.Close()

	notifier, err := notify.New(ctx, cfg.Notifier, logger)
	if err != nil {
		logger.Error("notifier init failed", "err", err)
		return err
	}
	defer notifier.Close()

	_, err = pipeline.NewCalculate(objects, summaries, notifier, logger).Run(ctx, loc)
	return err
}
