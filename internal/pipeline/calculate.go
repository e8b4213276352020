package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"energycoach/internal/batch"
	"energycoach/internal/model"
	"energycoach/internal/notify"
	"energycoach/internal/storage"
	"energycoach/internal/summary"
)

// Result reports what one calculate invocation did for its batch key.
type Result struct {
	CustomerID string
	Month      string
	Status     model.Status
	Summary    model.MonthlySummary
	Persisted  bool
	Notified   bool
}

// Calculate is stage two: one normalized batch document in, an idempotent
// summary upsert plus a change notification out. No locking or version check
// is performed against concurrent invocations for the same key; the later
// write wins.
type Calculate struct {
	objects   storage.ObjectStore
	summaries storage.SummaryStore
	notifier  notify.Notifier
	logger    *slog.Logger
	now       func() time.Time
}

func NewCalculate(objects storage.ObjectStore, summaries storage.SummaryStore, notifier notify.Notifier, logger *slog.Logger) *Calculate {
	return &Calculate{
		objects:   objects,
		summaries: summaries,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one calculate invocation: fetch, aggregate, detect change,
// upsert, notify. Equal summaries are a success no-op with zero writes.
func (c *Calculate) Run(ctx context.Context, loc model.TriggerLocator) (Result, error) {
	if c.logger != nil {
		c.logger.Info("calculate triggered", "bucket", loc.Bucket, "key", loc.Key)
	}

	body, err := c.objects.Get(ctx, loc.Bucket, loc.Key)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("normalized batch fetch failed", "bucket", loc.Bucket, "key", loc.Key, "err", err)
		}
		return Result{}, err
	}

	var readings []model.Reading
	if err := json.Unmarshal(body, &readings); err != nil {
		return Result{}, fmt.Errorf("decode normalized batch %s: %w", loc.Key, err)
	}
	if len(readings) == 0 {
		return Result{}, summary.ErrNoReadings
	}

	first := readings[0]
	month, err := batch.MonthKey(first.Timestamp)
	if err != nil {
		return Result{}, err
	}
	location := model.Location{
		LocationID: first.LocationID,
		Address:    first.Address,
		City:       first.City,
		State:      first.State,
		PostalCode: first.PostalCode,
	}

	existing, err := c.summaries.Get(ctx, first.CustomerID, month)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("stored summary fetch failed", "customer_id", first.CustomerID, "month", month, "err", err)
		}
		return Result{}, err
	}

	computed, err := summary.Aggregate(readings)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		CustomerID: first.CustomerID,
		Month:      month,
		Summary:    computed,
	}

	if existing != nil && summary.Equal(existing.Summary, computed) {
		result.Status = model.StatusUnchanged
		if c.logger != nil {
			c.logger.Info("no changes detected, skipping update",
				"customer_id", first.CustomerID,
				"month", month,
				"address", location.Address,
			)
		}
		return result, nil
	}

	result.Status = model.StatusNew
	if existing != nil {
		result.Status = model.StatusUpdated
	}

	rec := model.StoredSummaryRecord{
		CustomerID:   first.CustomerID,
		Month:        month,
		ComputedAt:   c.now().UTC(),
		CustomerName: first.CustomerName,
		Location:     location,
		Summary:      computed,
		RawData:      body,
	}
	if err := c.summaries.Put(ctx, rec); err != nil {
		if c.logger != nil {
			c.logger.Error("summary upsert failed", "customer_id", first.CustomerID, "month", month, "err", err)
		}
		return result, err
	}
	result.Persisted = true

	msg := model.Notification{
		Location: location,
		Month:    month,
		Summary:  computed,
		Status:   result.Status,
	}
	// Notification is not transactional with the write: a publish failure
	// leaves the persisted summary in place.
	if err := c.notifier.Publish(ctx, notify.Subject(first.CustomerName, month), msg); err != nil {
		if c.logger != nil {
			c.logger.Error("notification publish failed", "customer_id", first.CustomerID, "month", month, "err", err)
		}
		return result, err
	}
	result.Notified = true

	if c.logger != nil {
		c.logger.Info("summary persisted",
			"customer_id", first.CustomerID,
			"month", month,
			"status", result.Status,
			"total_kwh", computed.TotalKwh,
		)
	}
	return result, nil
}
