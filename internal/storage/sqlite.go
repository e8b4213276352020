package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"energycoach/internal/model"
)

type sqliteStore struct {
	baseStore
}

func NewSQLite(dsn, table string) (SummaryStore, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = "file:energycoach.db?_pragma=busy_timeout(5000)"
	}
	if table == "" {
		table = "summaries"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &sqliteStore{baseStore{db: db, table: table}}, nil
}

func (s *sqliteStore) Init(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			customer_id TEXT NOT NULL,
			month TEXT NOT NULL,
			computed_at TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			location_id TEXT NOT NULL,
			address TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			postal_code TEXT NOT NULL,
			summary_json TEXT NOT NULL,
			raw_json TEXT NOT NULL,
			PRIMARY KEY (customer_id, month)
		)`, s.table),
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, customerID, month string) (*model.StoredSummaryRecord, error) {
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT computed_at, customer_name, location_id, address, city, state, postal_code, summary_json, raw_json
		FROM %s WHERE customer_id = ? AND month = ?`, s.table),
		customerID, month)

	var computedAt, summaryJSON, rawJSON string
	rec := model.StoredSummaryRecord{CustomerID: customerID, Month: month}
	err := row.Scan(&computedAt, &rec.CustomerName,
		&rec.Location.LocationID, &rec.Location.Address, &rec.Location.City,
		&rec.Location.State, &rec.Location.PostalCode, &summaryJSON, &rawJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, readErr(err)
	}
	if rec.ComputedAt, err = time.Parse(time.RFC3339Nano, computedAt); err != nil {
		return nil, readErr(err)
	}
	if err := json.Unmarshal([]byte(summaryJSON), &rec.Summary); err != nil {
		return nil, readErr(err)
	}
	rec.RawData = []byte(rawJSON)
	return &rec, nil
}

func (s *sqliteStore) Put(ctx context.Context, rec model.StoredSummaryRecord) error {
	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (customer_id, month, computed_at, customer_name, location_id, address, city, state, postal_code, summary_json, raw_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (customer_id, month) DO UPDATE SET
			computed_at = excluded.computed_at,
			customer_name = excluded.customer_name,
			location_id = excluded.location_id,
			address = excluded.address,
			city = excluded.city,
			state = excluded.state,
			postal_code = excluded.postal_code,
			summary_json = excluded.summary_json,
			raw_json = excluded.raw_json`, s.table),
		rec.CustomerID,
		rec.Month,
		rec.ComputedAt.UTC().Format(time.RFC3339Nano),
		rec.CustomerName,
		rec.Location.LocationID,
		rec.Location.Address,
		rec.Location.City,
		rec.Location.State,
		rec.Location.PostalCode,
		encodeJSON(rec.Summary),
		string(rec.RawData),
	)
	if err != nil {
		return writeErr(err)
	}
	return nil
}
