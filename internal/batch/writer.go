package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"energycoach/internal/ingest"
	"energycoach/internal/model"
	"energycoach/internal/storage"
)

// DocumentName is the fixed object name of a normalized batch document.
const DocumentName = "energy-data.json"

// MonthKey derives the four-digit-year/zero-padded-month key from a reading
// timestamp, e.g. "2024-01".
func MonthKey(timestamp string) (string, error) {
	t, err := ingest.ParseTimestamp(timestamp)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01"), nil
}

// ObjectKey builds the deterministic batch key
// {customerId}/{locationId}/{monthKey}/energy-data.json.
func ObjectKey(customerID, locationID, month string) string {
	return fmt.Sprintf("%s/%s/%s/%s", customerID, locationID, month, DocumentName)
}

// Group is one normalized batch: all readings sharing customer, location and
// month, in original input order.
type Group struct {
	CustomerID string
	LocationID string
	Month      string
	Readings   []model.Reading
}

// GroupReadings splits a parsed reading sequence into batches keyed by
// (customerId, locationId, monthKey), preserving input order both across and
// within groups.
func GroupReadings(readings []model.Reading) ([]Group, error) {
	if len(readings) == 0 {
		return nil, errors.New("no readings to group")
	}
	index := make(map[string]int)
	var groups []Group
	for _, r := range readings {
		month, err := MonthKey(r.Timestamp)
		if err != nil {
			return nil, err
		}
		key := r.CustomerID + "/" + r.LocationID + "/" + month
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{CustomerID: r.CustomerID, LocationID: r.LocationID, Month: month})
		}
		groups[i].Readings = append(groups[i].Readings, r)
	}
	return groups, nil
}

// Writer serializes normalized batches into the transformed bucket. Each
// write is the trigger for the calculate stage; re-writing the same key
// overwrites and re-triggers.
type Writer struct {
	objects storage.ObjectStore
	bucket  string
	logger  *slog.Logger
}

func NewWriter(objects storage.ObjectStore, bucket string, logger *slog.Logger) *Writer {
	return &Writer{objects: objects, bucket: bucket, logger: logger}
}

// Write persists one batch document per group and returns the written keys.
func (w *Writer) Write(ctx context.Context, readings []model.Reading) ([]string, error) {
	groups, err := GroupReadings(readings)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		body, err := json.MarshalIndent(g.Readings, "", "  ")
		if err != nil {
			return keys, err
		}
		key := ObjectKey(g.CustomerID, g.LocationID, g.Month)
		meta := storage.ObjectMeta{
			CustomerID:  g.CustomerID,
			LocationID:  g.LocationID,
			Month:       g.Month,
			RecordCount: len(g.Readings),
		}
		if err := w.objects.Put(ctx, w.bucket, key, body, "application/json", meta); err != nil {
			return keys, err
		}
		if w.logger != nil {
			w.logger.Info("normalized batch written",
				"bucket", w.bucket,
				"key", key,
				"record_count", len(g.Readings),
			)
		}
		keys = append(keys, key)
	}
	return keys, nil
}
