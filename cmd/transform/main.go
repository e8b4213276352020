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
	"energycoach/internal/pipeline"
	"energycoach/internal/storage"
)

func main() {
	lambda.Start(handler)
}

// handler runs one transform invocation. Clients are constructed here, per
// invocation, and handed down explicitly.
func handler(ctx context.Context, event events.S3Event) error {
	cfg := config.FromEnv()
	logger := logging.ForInvocation(logging.NewLogger(cfg.LogLevel), uuid.NewString())

	if err := cfg.ValidateTransform(); err != nil {
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

	_, err = pipeline.NewTransform(objects, cfg.Pipeline.TransformedBucket, logger).Run(ctx, loc)
	return err
}
