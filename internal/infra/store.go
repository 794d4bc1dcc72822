// Package infra selects the TransactionStore backend named in the configuration.
package infra

import (
	"context"
	"fmt"

	"github.com/dvloznov/finance-agent/internal/config"
	"github.com/dvloznov/finance-agent/internal/domain"
	infraBQ "github.com/dvloznov/finance-agent/internal/infra/bigquery"
	infraDynamo "github.com/dvloznov/finance-agent/internal/infra/dynamodb"
	"github.com/dvloznov/finance-agent/internal/infra/memory"
)

// OpenStore builds the configured backend. The returned close function is
// always non-nil and safe to defer.
func OpenStore(ctx context.Context, cfg *config.Config) (domain.TransactionStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreBackend {
	case config.BackendDynamoDB:
		repo, err := infraDynamo.NewTransactionRepositoryFromEnv(ctx, cfg.AWSRegion, cfg.DynamoDBEndpoint, cfg.TableName, cfg.PartitionKey)
		if err != nil {
			return nil, noop, fmt.Errorf("OpenStore: %w", err)
		}
		return repo, noop, nil

	case config.BackendBigQuery:
		repo, err := infraBQ.NewBigQueryTransactionRepository(ctx, infraBQ.TableRef{
			ProjectID:    cfg.BQProjectID,
			DatasetID:    cfg.BQDataset,
			TableID:      cfg.TableName,
			PartitionKey: cfg.PartitionKey,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("OpenStore: %w", err)
		}
		return repo, repo.Close, nil

	case config.BackendMemory:
		store, err := memory.NewStoreFromURI(ctx, cfg.FixturesURI, cfg.PartitionKey)
		if err != nil {
			return nil, noop, fmt.Errorf("OpenStore: %w", err)
		}
		return store, noop, nil

	default:
		return nil, noop, fmt.Errorf("OpenStore: unknown backend %q", cfg.StoreBackend)
	}
}
