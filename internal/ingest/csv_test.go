package ingest

import (
	"errors"
	"strings"
	"testing"
)

const testHeader = "customerId,customerName,locationId,address,city,state,postalCode,timestamp,kWh,outsideTemp,electricVehicleCharging,hotWaterHeater,poolPump,heatPump"

func row(timestamp, kwh, ev string) string {
	return strings.Join([]string{
		"CUST-001", "Big Bird", "LOC-001", "123 Sesame Street", "New York", "NY", "10001",
		timestamp, kwh, "8.5", ev, "false", "false", "true",
	}, ",")
}

func TestParseReadingsCoercion(t *testing.T) {
	payload := testHeader + "\n" + row("2024-01-01 00:00", "10", "TRUE")
	readings, err := ParseReadings([]byte(payload))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("expected 1 reading, got %d", len(readings))
	}
	r := readings[0]
	if r.KWh != 10 {
		t.Fatalf("kWh: got %v", r.KWh)
	}
	if !r.ElectricVehicleCharging {
		t.Fatalf("expected TRUE to coerce to true")
	}
	if r.HotWaterHeater || r.PoolPump {
		t.Fatalf("expected false flags")
	}
	if !r.HeatPump {
		t.Fatalf("expected heatPump true")
	}
	if r.PostalCode != "10001" {
		t.Fatalf("postalCode must stay a string: %q", r.PostalCode)
	}
	if r.Timestamp != "2024-01-01 00:00" {
		t.Fatalf("timestamp must keep the wire string: %q", r.Timestamp)
	}
}

func TestParseReadingsNumericFlag(t *testing.T) {
	payload := testHeader + "\n" + row("2024-01-01 00:00", "1.5", "1")
	readings, err := ParseReadings([]byte(payload))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !readings[0].ElectricVehicleCharging {
		t.Fatalf("non-zero numeric flag must read as true")
	}
}

func TestParseReadingsEmptyPayload(t *testing.T) {
	if _, err := ParseReadings(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := ParseReadings([]byte("  \n ")); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput for whitespace, got %v", err)
	}
}

func TestParseReadingsHeaderOnly(t *testing.T) {
	if _, err := ParseReadings([]byte(testHeader + "\n")); !errors.Is(err, ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
}

func TestParseReadingsMalformedRowAbortsBatch(t *testing.T) {
	bad := row("2024-01-01 01:00", "not-a-number", "false")
	payload := testHeader + "\n" + row("2024-01-01 00:00", "1.0", "false") + "\n" + bad
	_, err := ParseReadings([]byte(payload))
	var malformedErr *MalformedInputError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("expected MalformedInputError, got %v", err)
	}
	if !strings.Contains(malformedErr.Line, "not-a-number") {
		t.Fatalf("error must carry the offending line, got %q", malformedErr.Line)
	}
}

func TestParseReadingsMissingRequiredColumn(t *testing.T) {
	payload := "customerId,locationId,timestamp\nCUST-001,LOC-001,2024-01-01 00:00"
	_, err := ParseReadings([]byte(payload))
	var malformedErr *MalformedInputError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("expected MalformedInputError, got %v", err)
	}
}

func TestParseReadingsBadTimestamp(t *testing.T) {
	payload := testHeader + "\n" + row("yesterday", "1.0", "false")
	var malformedErr *MalformedInputError
	if _, err := ParseReadings([]byte(payload)); !errors.As(err, &malformedErr) {
		t.Fatalf("expected MalformedInputError, got %v", err)
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	for _, value := range []string{
		"2024-01-15 13:00",
		"2024-01-15 13:00:00",
		"2024-01-15T13:00:00Z",
		"2024-01-15T13:00:00",
	} {
		ts, err := ParseTimestamp(value)
		if err != nil {
			t.Fatalf("parse %q: %v", value, err)
		}
		if ts.Hour() != 13 {
			t.Fatalf("parse %q: hour %d", value, ts.Hour())
		}
	}
	if _, err := ParseTimestamp(""); err == nil {
		t.Fatalf("expected error for empty timestamp")
	}
}
