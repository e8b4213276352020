package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"energycoach/internal/model"
)

func testRecord() model.StoredSummaryRecord {
	rec := model.StoredSummaryRecord{
		CustomerID:   "CUST-001",
		Month:        "2024-01",
		ComputedAt:   time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		CustomerName: "Big Bird",
		Location: model.Location{
			LocationID: "LOC-001",
			Address:    "123 Sesame Street",
			City:       "New York",
			State:      "NY",
			PostalCode: "10001",
		},
		RawData: []byte(`[{"customerId":"CUST-001"}]`),
	}
	rec.Summary.TotalKwh = 96
	rec.Summary.Averages.Daily = 48
	rec.Summary.Averages.ByHour[7] = 3.5
	rec.Summary.PeakUsage = model.PeakUsage{Value: 5, Timestamp: "2024-01-01 07:00", Temperature: 4}
	return rec
}

func openTestStore(t *testing.T) SummaryStore {
	t.Helper()
	store, err := NewSQLite("file:"+filepath.Join(t.TempDir(), "test.db"), "summaries")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return store
}

func TestSQLiteRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	got, err := store.Get(ctx, "CUST-001", "2024-01")
	if err != nil {
		t.Fatalf("get before put: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no record, got %+v", got)
	}

	rec := testRecord()
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err = store.Get(ctx, "CUST-001", "2024-01")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatalf("record missing after put")
	}
	if got.CustomerName != rec.CustomerName || got.Location != rec.Location {
		t.Fatalf("round trip: %+v", got)
	}
	if !got.ComputedAt.Equal(rec.ComputedAt) {
		t.Fatalf("computedAt: %v", got.ComputedAt)
	}
	if got.Summary.Averages.ByHour[7] != 3.5 || got.Summary.PeakUsage != rec.Summary.PeakUsage {
		t.Fatalf("summary round trip: %+v", got.Summary)
	}
	if string(got.RawData) != string(rec.RawData) {
		t.Fatalf("raw data round trip: %q", got.RawData)
	}
}

func TestSQLiteUpsertOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := testRecord()
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("first put: %v", err)
	}
	rec.Summary.TotalKwh = 120
	rec.ComputedAt = rec.ComputedAt.Add(time.Hour)
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, err := store.Get(ctx, "CUST-001", "2024-01")
	if err != nil || got == nil {
		t.Fatalf("get: %v %v", got, err)
	}
	if got.Summary.TotalKwh != 120 {
		t.Fatalf("overwrite lost: %v", got.Summary.TotalKwh)
	}
	if !got.ComputedAt.Equal(rec.ComputedAt) {
		t.Fatalf("computedAt not refreshed: %v", got.ComputedAt)
	}
}
