package batch

import (
	"context"
	"encoding/json"
	"testing"

	"energycoach/internal/model"
	"energycoach/internal/storage"
)

func reading(customer, loc, ts string, kwh float64) model.Reading {
	return model.Reading{
		CustomerID: customer,
		LocationID: loc,
		Timestamp:  ts,
		KWh:        kwh,
	}
}

func TestMonthKey(t *testing.T) {
	got, err := MonthKey("2024-01-15 13:00")
	if err != nil {
		t.Fatalf("month key error: %v", err)
	}
	if got != "2024-01" {
		t.Fatalf("month key: got %q", got)
	}
	if _, err := MonthKey("bogus"); err == nil {
		t.Fatalf("expected error for unparsable timestamp")
	}
}

func TestObjectKey(t *testing.T) {
	got := ObjectKey("CUST-001", "LOC-001", "2024-01")
	if got != "CUST-001/LOC-001/2024-01/energy-data.json" {
		t.Fatalf("object key: got %q", got)
	}
}

func TestGroupReadingsPreservesOrder(t *testing.T) {
	readings := []model.Reading{
		reading("CUST-001", "LOC-001", "2024-01-01 00:00", 1),
		reading("CUST-001", "LOC-002", "2024-01-01 00:00", 2),
		reading("CUST-001", "LOC-001", "2024-01-01 01:00", 3),
		reading("CUST-001", "LOC-001", "2024-02-01 00:00", 4),
	}
	groups, err := GroupReadings(readings)
	if err != nil {
		t.Fatalf("group error: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].Month != "2024-01" || groups[0].LocationID != "LOC-001" {
		t.Fatalf("first group: %+v", groups[0])
	}
	if len(groups[0].Readings) != 2 || groups[0].Readings[1].KWh != 3 {
		t.Fatalf("group must keep input order: %+v", groups[0].Readings)
	}
	if groups[2].Month != "2024-02" {
		t.Fatalf("third group: %+v", groups[2])
	}
}

func TestWriterWritesDocumentWithMetadata(t *testing.T) {
	objects := storage.NewMemoryObjectStore()
	w := NewWriter(objects, "transformed", nil)

	readings := []model.Reading{
		reading("CUST-001", "LOC-001", "2024-01-01 00:00", 1.5),
		reading("CUST-001", "LOC-001", "2024-01-01 01:00", 2.5),
	}
	keys, err := w.Write(context.Background(), readings)
	if err != nil {
		t.Fatalf("write error: %v", err)
	}
	if len(keys) != 1 || keys[0] != "CUST-001/LOC-001/2024-01/energy-data.json" {
		t.Fatalf("keys: %v", keys)
	}

	body, err := objects.Get(context.Background(), "transformed", keys[0])
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	var stored []model.Reading
	if err := json.Unmarshal(body, &stored); err != nil {
		t.Fatalf("document must be JSON: %v", err)
	}
	if len(stored) != 2 || stored[0].KWh != 1.5 {
		t.Fatalf("stored readings: %+v", stored)
	}

	meta, ok := objects.Meta("transformed", keys[0])
	if !ok {
		t.Fatalf("metadata missing")
	}
	if meta.CustomerID != "CUST-001" || meta.Month != "2024-01" || meta.RecordCount != 2 {
		t.Fatalf("metadata: %+v", meta)
	}
}
