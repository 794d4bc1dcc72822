package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"

	"github.com/dvloznov/finance-agent/internal/domain"
)

// BigQueryTransactionRepository is the BigQuery-backed TransactionStore.
// It holds a shared client to avoid creating a new connection per lookup.
type BigQueryTransactionRepository struct {
	client *bigquery.Client
	table  TableRef
}

// NewBigQueryTransactionRepository creates a repository with its own client.
func NewBigQueryTransactionRepository(ctx context.Context, table TableRef) (*BigQueryTransactionRepository, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("NewBigQueryTransactionRepository: %w", err)
	}
	client, err := bigquery.NewClient(ctx, table.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("NewBigQueryTransactionRepository: creating client: %w", err)
	}
	return &BigQueryTransactionRepository{
		client: client,
		table:  table,
	}, nil
}

// Close closes the BigQuery client connection.
func (r *BigQueryTransactionRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// QueryByUser delegates to QueryTransactionsByUserWithClient with the shared client.
func (r *BigQueryTransactionRepository) QueryByUser(ctx context.Context, userID string) ([]domain.Item, error) {
	return QueryTransactionsByUserWithClient(ctx, r.client, r.table, userID)
}

// Ensure BigQueryTransactionRepository implements TransactionStore interface.
var _ domain.TransactionStore = (*BigQueryTransactionRepository)(nil)
