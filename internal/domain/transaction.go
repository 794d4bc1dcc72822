package domain

import (
	"context"
	"fmt"
	"strconv"
)

// Item is one record as returned by a TransactionStore, keyed by attribute name.
// Numeric attributes may still carry their store-specific arbitrary-precision
// representation; run them through normalize.Value before reading amounts.
type Item map[string]any

// TransactionStore looks up the transaction records of a single user.
type TransactionStore interface {
	// QueryByUser returns every record whose partition key equals userID,
	// in the order the store returns them.
	QueryByUser(ctx context.Context, userID string) ([]Item, error)
}

// Transaction is the subset of a stored record shown to the user.
// Amount keeps the normalized stored value: float64 for numbers, anything
// else (a string, a bool) exactly as the store returned it.
type Transaction struct {
	TransactionID string
	Date          string
	Category      string
	Amount        any
	Merchant      string
	PaymentMethod string
}

// TransactionFromItem maps a normalized Item onto a Transaction.
// Missing text fields become "" and a missing amount becomes 0.
func TransactionFromItem(item Item) Transaction {
	amount, ok := item["amount"]
	if !ok || amount == nil {
		amount = float64(0)
	}
	return Transaction{
		TransactionID: stringField(item, "transaction_id"),
		Date:          stringField(item, "date"),
		Category:      stringField(item, "category"),
		Amount:        amount,
		Merchant:      stringField(item, "merchant"),
		PaymentMethod: stringField(item, "payment_method"),
	}
}

func stringField(item Item, key string) string {
	v, ok := item[key]
	if !ok || v == nil {
		return ""
	}
	return Text(v)
}

// Text renders a normalized value for display. Floats use the shortest
// plain decimal (20240101, 12.5), never exponent notation.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		// civil.Date, ints and bools all print the way a user expects
		return fmt.Sprint(x)
	}
}
