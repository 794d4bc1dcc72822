package lookup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dvloznov/finance-agent/internal/domain"
	"github.com/dvloznov/finance-agent/internal/normalize"
)

// Transactions normalizes every item and maps it onto a Transaction,
// keeping the store order.
func Transactions(items []domain.Item) ([]domain.Transaction, error) {
	txns := make([]domain.Transaction, 0, len(items))
	for i, item := range items {
		normalized, err := normalize.Map(item)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		txns = append(txns, domain.TransactionFromItem(normalized))
	}
	return txns, nil
}

// FormatTransactions renders the header line followed by one line per transaction.
func FormatTransactions(userID string, txns []domain.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are the last %d transactions for %s:\n", len(txns), userID)
	for i, t := range txns {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s | %s | ₹%s | %s (%s)",
			t.Date, t.Category, FormatAmount(t.Amount), t.Merchant, t.PaymentMethod)
	}
	return b.String()
}

// FormatAmount prints numeric amounts as the shortest decimal that
// round-trips (250 and 12.5, never 250.0). Non-numeric stored values are
// printed as they are.
func FormatAmount(amount any) string {
	if f, ok := amount.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return domain.Text(amount)
}

func noTransactionsText(userID string) string {
	return fmt.Sprintf("No transactions found for %s.", userID)
}
