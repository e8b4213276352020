package storage

import (
	"context"
	"fmt"
	"sync"

	"energycoach/internal/model"
)

// MemoryObjectStore is an in-process object store used by tests and as a
// scratch store for dry runs.
type MemoryObjectStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	meta    map[string]ObjectMeta
	puts    int
}

func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{
		objects: make(map[string][]byte),
		meta:    make(map[string]ObjectMeta),
	}
}

func objectKey(bucket, key string) string {
	return bucket + "/" + key
}

func (s *MemoryObjectStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	body, ok := s.objects[objectKey(bucket, key)]
	if !ok {
		return nil, readErr(fmt.Errorf("no such object %s/%s", bucket, key))
	}
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

func (s *MemoryObjectStore) Put(ctx context.Context, bucket, key string, body []byte, contentType string, meta ObjectMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(body))
	copy(stored, body)
	s.objects[objectKey(bucket, key)] = stored
	s.meta[objectKey(bucket, key)] = meta
	s.puts++
	return nil
}

func (s *MemoryObjectStore) Meta(bucket, key string) (ObjectMeta, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meta[objectKey(bucket, key)]
	return m, ok
}

func (s *MemoryObjectStore) Puts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puts
}

// MemorySummaryStore is an in-process SummaryStore; Puts counts writes so
// tests can assert the idempotent skip path.
type MemorySummaryStore struct {
	mu      sync.RWMutex
	records map[string]model.StoredSummaryRecord
	puts    int
}

func NewMemorySummaryStore() *MemorySummaryStore {
	return &MemorySummaryStore{records: make(map[string]model.StoredSummaryRecord)}
}

func recordKey(customerID, month string) string {
	return customerID + "#" + month
}

func (s *MemorySummaryStore) Init(ctx context.Context) error { return nil }

func (s *MemorySummaryStore) Close() error { return nil }

func (s *MemorySummaryStore) Get(ctx context.Context, customerID, month string) (*model.StoredSummaryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[recordKey(customerID, month)]
	if !ok {
		return nil, nil
	}
	out := rec
	return &out, nil
}

func (s *MemorySummaryStore) Put(ctx context.Context, rec model.StoredSummaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[recordKey(rec.CustomerID, rec.Month)] = rec
	s.puts++
	return nil
}

func (s *MemorySummaryStore) Puts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puts
}
