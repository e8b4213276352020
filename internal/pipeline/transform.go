package pipeline

import (
	"context"
	"log/slog"

	"energycoach/internal/batch"
	"energycoach/internal/ingest"
	"energycoach/internal/model"
	"energycoach/internal/storage"
)

// Transform is stage one: raw tabular payload in, one normalized batch
// document per customer/location/month group out.
type Transform struct {
	objects storage.ObjectStore
	writer  *batch.Writer
	logger  *slog.Logger
}

func NewTransform(objects storage.ObjectStore, transformedBucket string, logger *slog.Logger) *Transform {
	return &Transform{
		objects: objects,
		writer:  batch.NewWriter(objects, transformedBucket, logger),
		logger:  logger,
	}
}

// Run executes one transform invocation and returns the written batch keys.
func (t *Transform) Run(ctx context.Context, loc model.TriggerLocator) ([]string, error) {
	if t.logger != nil {
		t.logger.Info("transform triggered", "bucket", loc.Bucket, "key", loc.Key)
	}

	payload, err := t.objects.Get(ctx, loc.Bucket, loc.Key)
	if err != nil {
		if t.logger != nil {
			t.logger.Error("raw payload fetch failed", "bucket", loc.Bucket, "key", loc.Key, "err", err)
		}
		return nil, err
	}

	readings, err := ingest.ParseReadings(payload)
	if err != nil {
		if t.logger != nil {
			t.logger.Error("raw payload parse failed", "key", loc.Key, "err", err)
		}
		return nil, err
	}
	if t.logger != nil {
		t.logger.Info("raw payload parsed", "key", loc.Key, "record_count", len(readings))
	}

	keys, err := t.writer.Write(ctx, readings)
	if err != nil {
		if t.logger != nil {
			t.logger.Error("normalized batch write failed", "key", loc.Key, "err", err)
		}
		return keys, err
	}
	return keys, nil
}
