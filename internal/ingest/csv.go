package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"energycoach/internal/model"
)

// Column names of the raw tabular schema. customerId, locationId, timestamp
// and kWh are required; the remaining columns default to zero values when the
// column is absent.
const (
	colCustomerID   = "customerId"
	colCustomerName = "customerName"
	colLocationID   = "locationId"
	colAddress      = "address"
	colCity         = "city"
	colState        = "state"
	colPostalCode   = "postalCode"
	colTimestamp    = "timestamp"
	colKWh          = "kWh"
	colOutsideTemp  = "outsideTemp"
	colEVCharging   = "electricVehicleCharging"
	colHotWater     = "hotWaterHeater"
	colPoolPump     = "poolPump"
	colHeatPump     = "heatPump"
)

var requiredColumns = []string{colCustomerID, colLocationID, colTimestamp, colKWh}

// ParseReadings parses one raw tabular payload (header row + data rows) into
// an ordered sequence of typed readings. Parsing is fail-fast: the first bad
// row aborts the batch.
func ParseReadings(payload []byte) ([]model.Reading, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, ErrEmptyInput
	}

	r := csv.NewReader(bytes.NewReader(payload))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, malformed(firstLine(payload), err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, malformed(firstLine(payload), fmt.Errorf("missing required column %q", name))
		}
	}

	var readings []model.Reading
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, malformed(recordLine(payload, err), err)
		}
		reading, err := coerceRecord(cols, record)
		if err != nil {
			return nil, malformed(strings.Join(record, ","), err)
		}
		readings = append(readings, reading)
	}
	if len(readings) == 0 {
		return nil, ErrNoRecords
	}
	return readings, nil
}

func coerceRecord(cols map[string]int, record []string) (model.Reading, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var reading model.Reading
	var err error

	reading.CustomerID = cell(colCustomerID)
	reading.CustomerName = cell(colCustomerName)
	reading.LocationID = cell(colLocationID)
	reading.Address = cell(colAddress)
	reading.City = cell(colCity)
	reading.State = cell(colState)
	reading.PostalCode = cell(colPostalCode)
	if reading.CustomerID == "" {
		return reading, errors.New("empty customerId")
	}
	if reading.LocationID == "" {
		return reading, errors.New("empty locationId")
	}

	reading.Timestamp = cell(colTimestamp)
	if _, err = ParseTimestamp(reading.Timestamp); err != nil {
		return reading, err
	}

	if reading.KWh, err = parseNumber(colKWh, cell(colKWh)); err != nil {
		return reading, err
	}
	if v := cell(colOutsideTemp); v != "" {
		if reading.OutsideTemp, err = parseNumber(colOutsideTemp, v); err != nil {
			return reading, err
		}
	}

	if reading.ElectricVehicleCharging, err = parseFlag(colEVCharging, cell(colEVCharging)); err != nil {
		return reading, err
	}
	if reading.HotWaterHeater, err = parseFlag(colHotWater, cell(colHotWater)); err != nil {
		return reading, err
	}
	if reading.PoolPump, err = parseFlag(colPoolPump, cell(colPoolPump)); err != nil {
		return reading, err
	}
	if reading.HeatPump, err = parseFlag(colHeatPump, cell(colHeatPump)); err != nil {
		return reading, err
	}
	return reading, nil
}

func parseNumber(column, value string) (float64, error) {
	if value == "" {
		return 0, fmt.Errorf("column %s: empty numeric value", column)
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not a number", column, value)
	}
	return n, nil
}

// parseFlag coerces a boolean cell: lower-cased exact "true"/"false", else a
// numeric value is truthy when non-zero. An absent column reads as false.
func parseFlag(column, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true":
		return true, nil
	case "false", "":
		return false, nil
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n != 0, nil
	}
	return false, fmt.Errorf("column %s: %q is not a boolean", column, value)
}

func firstLine(payload []byte) string {
	line, _, _ := strings.Cut(string(payload), "\n")
	return strings.TrimRight(line, "\r")
}

// recordLine recovers the offending line from a csv parse error when the
// reader reports a position.
func recordLine(payload []byte, err error) string {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		lines := strings.Split(string(payload), "\n")
		if parseErr.Line >= 1 && parseErr.Line <= len(lines) {
			return strings.TrimRight(lines[parseErr.Line-1], "\r")
		}
	}
	return firstLine(payload)
}
