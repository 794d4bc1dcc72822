package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/finance-agent/internal/domain"
)

// QueryTransactionsByUserWithClient returns every row whose partition key
// column equals userID, in the order BigQuery returns them. NUMERIC and
// BIGNUMERIC columns arrive as *big.Rat.
func QueryTransactionsByUserWithClient(ctx context.Context, client *bigquery.Client, table TableRef, userID string) ([]domain.Item, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("QueryTransactionsByUser: %w", err)
	}

	q := client.Query(userTransactionsSQL(table))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("QueryTransactionsByUser: query read: %w", err)
	}

	var items []domain.Item
	for {
		row := map[string]bigquery.Value{}
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("QueryTransactionsByUser: iter next: %w", err)
		}
		items = append(items, rowToItem(row))
	}

	return items, nil
}

// rowToItem converts bigquery.Value containers into plain maps and slices.
func rowToItem(row map[string]bigquery.Value) domain.Item {
	item := make(domain.Item, len(row))
	for k, v := range row {
		item[k] = plainValue(v)
	}
	return item
}

func plainValue(v bigquery.Value) any {
	switch x := v.(type) {
	case map[string]bigquery.Value:
		return map[string]any(rowToItem(x))
	case []bigquery.Value:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = plainValue(elem)
		}
		return out
	default:
		return x
	}
}
