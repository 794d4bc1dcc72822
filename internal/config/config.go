package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	BackendDynamoDB = "dynamodb"
	BackendBigQuery = "bigquery"
	BackendMemory   = "memory"
)

// Config holds the runtime settings shared by the Lambda, the dev server and the CLI.
type Config struct {
	StoreBackend string `env:"STORE_BACKEND,default=dynamodb"`
	TableName    string `env:"TRANSACTIONS_TABLE,default=multiAgent-UserTransactions"`
	PartitionKey string `env:"PARTITION_KEY,default=user_id"`

	// DynamoDB. Credentials come from the default AWS chain.
	AWSRegion        string `env:"AWS_REGION"`
	DynamoDBEndpoint string `env:"DYNAMODB_ENDPOINT"`

	// BigQuery
	BQProjectID string `env:"BQ_PROJECT_ID"`
	BQDataset   string `env:"BQ_DATASET,default=finance"`

	// Local path or gs://bucket/object with a JSON array of records.
	FixturesURI string `env:"FIXTURES_URI"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`
	HTTPPort  string `env:"HTTP_PORT,default=8080"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("Load: decoding environment: %w", err)
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadWithDotenv loads .env files into the environment before calling Load.
// Missing files are ignored; variables already set are not overridden.
func LoadWithDotenv(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("LoadWithDotenv: loading %s: %w", p, err)
		}
	}
	return Load()
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendDynamoDB:
		if c.TableName == "" {
			return fmt.Errorf("TRANSACTIONS_TABLE is required for the %s backend", c.StoreBackend)
		}
	case BackendBigQuery:
		if c.BQProjectID == "" {
			return fmt.Errorf("BQ_PROJECT_ID is required for the %s backend", c.StoreBackend)
		}
		if c.TableName == "" || c.BQDataset == "" {
			return fmt.Errorf("TRANSACTIONS_TABLE and BQ_DATASET are required for the %s backend", c.StoreBackend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.PartitionKey == "" {
		return fmt.Errorf("PARTITION_KEY must not be empty")
	}
	return nil
}
