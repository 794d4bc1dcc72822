package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/dvloznov/finance-agent/internal/domain"
)

// TransactionRepository queries a DynamoDB table whose partition key is the user identifier.
type TransactionRepository struct {
	client       dynamodb.QueryAPIClient
	tableName    string
	partitionKey string
}

// NewTransactionRepository wraps an existing client. Tests pass a fake QueryAPIClient.
func NewTransactionRepository(client dynamodb.QueryAPIClient, tableName, partitionKey string) *TransactionRepository {
	return &TransactionRepository{
		client:       client,
		tableName:    tableName,
		partitionKey: partitionKey,
	}
}

// NewTransactionRepositoryFromEnv builds a client from the default AWS
// credential chain. An empty region or endpoint leaves the SDK defaults alone.
func NewTransactionRepositoryFromEnv(ctx context.Context, region, endpoint, tableName, partitionKey string) (*TransactionRepository, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewTransactionRepositoryFromEnv: loading AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return NewTransactionRepository(client, tableName, partitionKey), nil
}

// QueryByUser reads every page of the key-equality query. Numbers are decoded
// as attributevalue.Number so no precision is lost before normalization.
func (r *TransactionRepository) QueryByUser(ctx context.Context, userID string) ([]domain.Item, error) {
	keyCond := expression.Key(r.partitionKey).Equal(expression.Value(userID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("QueryByUser: building key condition: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	var items []domain.Item
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("QueryByUser: querying %s: %w", r.tableName, err)
		}

		var decoded []map[string]any
		err = attributevalue.UnmarshalListOfMapsWithOptions(page.Items, &decoded, func(o *attributevalue.DecoderOptions) {
			o.UseNumber = true
		})
		if err != nil {
			return nil, fmt.Errorf("QueryByUser: decoding items: %w", err)
		}
		for _, m := range decoded {
			items = append(items, domain.Item(m))
		}
	}

	return items, nil
}

// Ensure TransactionRepository implements TransactionStore interface.
var _ domain.TransactionStore = (*TransactionRepository)(nil)
