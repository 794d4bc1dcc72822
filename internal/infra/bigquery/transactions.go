package bigquery

import (
	"fmt"
	"regexp"
)

// TableRef identifies the transactions table and the column holding the user identifier.
type TableRef struct {
	ProjectID    string
	DatasetID    string
	TableID      string
	PartitionKey string
}

// BigQuery identifiers cannot be bound as query parameters, so they are
// restricted to a safe character set before being spliced into SQL.
// Lengths are checked separately: RE2 rejects repeat counts above 1000.
var (
	projectPattern = regexp.MustCompile(`^[a-z][a-z0-9-]{4,28}[a-z0-9]$`)
	datasetPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	tablePattern   = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_-]*$`)
	columnPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

const (
	maxNameLen   = 1024
	maxColumnLen = 300
)

// Validate checks every identifier of the reference.
func (t TableRef) Validate() error {
	if !projectPattern.MatchString(t.ProjectID) {
		return fmt.Errorf("invalid project id %q", t.ProjectID)
	}
	if len(t.DatasetID) > maxNameLen || !datasetPattern.MatchString(t.DatasetID) {
		return fmt.Errorf("invalid dataset %q", t.DatasetID)
	}
	if len(t.TableID) > maxNameLen || !tablePattern.MatchString(t.TableID) {
		return fmt.Errorf("invalid table %q", t.TableID)
	}
	if len(t.PartitionKey) > maxColumnLen || !columnPattern.MatchString(t.PartitionKey) {
		return fmt.Errorf("invalid partition key column %q", t.PartitionKey)
	}
	return nil
}

// FullyQualified returns the backtick-quoted project.dataset.table path.
func (t TableRef) FullyQualified() string {
	return fmt.Sprintf("`%s.%s.%s`", t.ProjectID, t.DatasetID, t.TableID)
}

// userTransactionsSQL selects every column so nested or extra fields reach the
// normalization pass the same way they do for DynamoDB items.
func userTransactionsSQL(t TableRef) string {
	return fmt.Sprintf(`
		SELECT t.*
		FROM %s t
		WHERE t.`+"`%s`"+` = @user_id
	`, t.FullyQualified(), t.PartitionKey)
}
