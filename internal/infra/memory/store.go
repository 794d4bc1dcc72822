package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dvloznov/finance-agent/internal/domain"
	"github.com/dvloznov/finance-agent/internal/gcs"
)

// Store is an in-memory implementation of TransactionStore for local runs and tests.
// It is safe for concurrent use. Records keep their insertion order per user.
type Store struct {
	mu           sync.RWMutex
	partitionKey string
	byUser       map[string][]domain.Item
}

// NewStore creates an empty store keyed by partitionKey.
func NewStore(partitionKey string) *Store {
	return &Store{
		partitionKey: partitionKey,
		byUser:       make(map[string][]domain.Item),
	}
}

// NewStoreFromURI loads a JSON array of records from a local path or gs:// URI.
func NewStoreFromURI(ctx context.Context, uri, partitionKey string) (*Store, error) {
	s := NewStore(partitionKey)
	if uri == "" {
		return s, nil
	}

	data, err := gcs.ReadURI(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("NewStoreFromURI: %w", err)
	}
	if err := s.LoadJSON(data); err != nil {
		return nil, fmt.Errorf("NewStoreFromURI: %s: %w", uri, err)
	}
	return s, nil
}

// LoadJSON adds every record of a JSON array. Numbers are kept as json.Number
// so they go through the same normalization as store decimals.
func (s *Store) LoadJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var records []map[string]any
	if err := dec.Decode(&records); err != nil {
		return fmt.Errorf("decoding records: %w", err)
	}

	items := make([]domain.Item, len(records))
	for i, r := range records {
		items[i] = domain.Item(r)
	}
	return s.Add(items...)
}

// Add stores items under the value of their partition key attribute.
func (s *Store) Add(items ...domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range items {
		key, ok := item[s.partitionKey].(string)
		if !ok || key == "" {
			return fmt.Errorf("record %d: missing string attribute %q", i, s.partitionKey)
		}

		// Copy to avoid external modifications
		itemCopy := make(domain.Item, len(item))
		for k, v := range item {
			itemCopy[k] = v
		}
		s.byUser[key] = append(s.byUser[key], itemCopy)
	}
	return nil
}

// QueryByUser implements the TransactionStore interface.
func (s *Store) QueryByUser(ctx context.Context, userID string) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.byUser[userID]
	result := make([]domain.Item, 0, len(stored))
	for _, item := range stored {
		itemCopy := make(domain.Item, len(item))
		for k, v := range item {
			itemCopy[k] = v
		}
		result = append(result, itemCopy)
	}
	return result, nil
}

// Ensure Store implements TransactionStore interface.
var _ domain.TransactionStore = (*Store)(nil)
