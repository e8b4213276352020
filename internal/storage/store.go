package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"energycoach/internal/config"
	"energycoach/internal/model"
)

var (
	// ErrStorageRead wraps failures reading from the object or key-value store.
	ErrStorageRead = errors.New("storage read failed")
	// ErrStorageWrite wraps failures writing to the object or key-value store.
	ErrStorageWrite = errors.New("storage write failed")
)

// ObjectMeta is attached to every normalized batch document.
type ObjectMeta struct {
	CustomerID  string
	LocationID  string
	Month       string
	RecordCount int
}

// ObjectStore is the get/put-by-key boundary to the object store holding raw
// payloads and normalized batch documents.
type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, body []byte, contentType string, meta ObjectMeta) error
}

// SummaryStore is the single-item key-value boundary, one record per
// (customerId, month). Get returns (nil, nil) when no record exists.
type SummaryStore interface {
	Init(ctx context.Context) error
	Close() error
	Get(ctx context.Context, customerID, month string) (*model.StoredSummaryRecord, error)
	Put(ctx context.Context, rec model.StoredSummaryRecord) error
}

// NewSummaryStore builds the configured store. Clients are constructed here,
// per call, never held as package state.
func NewSummaryStore(ctx context.Context, cfg config.StorageConfig) (SummaryStore, error) {
	switch strings.ToLower(cfg.Driver) {
	case "sqlite":
		return NewSQLite(cfg.DSN, cfg.Table)
	case "postgres", "postgresql":
		return NewPostgres(cfg.DSN, cfg.Table)
	case "dynamodb":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, err
		}
		return NewDynamoDB(dynamodb.NewFromConfig(awsCfg), cfg.Table), nil
	case "memory":
		return NewMemorySummaryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

type baseStore struct {
	db    *sql.DB
	table string
}

func (b *baseStore) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func encodeJSON(value any) string {
	data, _ := json.Marshal(value)
	return string(data)
}

func decodeJSON(data string, out any) error {
	return json.Unmarshal([]byte(data), out)
}

func readErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageRead, err)
}

func writeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageWrite, err)
}
