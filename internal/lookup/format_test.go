package lookup

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/dvloznov/finance-agent/internal/domain"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{250.0, "250"},
		{12.5, "12.5"},
		{0.0, "0"},
		{1999.99, "1999.99"},
		{-40.25, "-40.25"},
		{0.1, "0.1"},
		{"250.50", "250.50"},
		{"N/A", "N/A"},
		{true, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatAmount(tt.in); got != tt.want {
				t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTransactions_NormalizesDecimals(t *testing.T) {
	items := []domain.Item{
		{"transaction_id": "t1", "amount": attributevalue.Number("12.50")},
		{"transaction_id": "t2", "amount": json.Number("250")},
	}

	txns, err := Transactions(items)
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if txns[0].Amount != 12.5 || txns[1].Amount != 250.0 {
		t.Errorf("amounts = %v, %v; want 12.5, 250", txns[0].Amount, txns[1].Amount)
	}
	if txns[0].TransactionID != "t1" || txns[1].TransactionID != "t2" {
		t.Errorf("order not preserved: %+v", txns)
	}
}

func TestTransactions_InvalidDecimal(t *testing.T) {
	_, err := Transactions([]domain.Item{{"amount": attributevalue.Number("NaN-ish")}})
	if err == nil {
		t.Fatal("expected error for invalid number")
	}
}

func TestTransactions_NonNumericAmounts(t *testing.T) {
	items := []domain.Item{
		{"date": "2024-01-01", "amount": "N/A"},
		{"date": "2024-01-02", "amount": true},
		{"date": "2024-01-03", "amount": "250.50"},
		{"date": "2024-01-04", "amount": attributevalue.Number("99")},
	}

	txns, err := Transactions(items)
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	want := "Here are the last 4 transactions for Sam:\n" +
		"- 2024-01-01 |  | ₹N/A |  ()\n" +
		"- 2024-01-02 |  | ₹true |  ()\n" +
		"- 2024-01-03 |  | ₹250.50 |  ()\n" +
		"- 2024-01-04 |  | ₹99 |  ()"
	if got := FormatTransactions("Sam", txns); got != want {
		t.Errorf("FormatTransactions() =\n%q\nwant\n%q", got, want)
	}
}

func TestFormatTransactions(t *testing.T) {
	txns := []domain.Transaction{
		{Date: "2024-01-01", Category: "Food", Amount: 250.0, Merchant: "Cafe", PaymentMethod: "UPI"},
		{Date: "2024-01-02", Category: "Fuel", Amount: 12.5, Merchant: "HP Pump", PaymentMethod: "Card"},
	}
	want := "Here are the last 2 transactions for Sam:\n" +
		"- 2024-01-01 | Food | ₹250 | Cafe (UPI)\n" +
		"- 2024-01-02 | Fuel | ₹12.5 | HP Pump (Card)"
	if got := FormatTransactions("Sam", txns); got != want {
		t.Errorf("FormatTransactions() =\n%q\nwant\n%q", got, want)
	}
}

func TestBody(t *testing.T) {
	if got := Body(ErrMissingIdentifier); got != "Error: Please provide your name to fetch transactions." {
		t.Errorf("Body(ErrMissingIdentifier) = %q", got)
	}
	err := wrap(ErrStore, errors.New("timeout"))
	if got := Body(err); got != "Error fetching transactions: timeout" {
		t.Errorf("Body(store error) = %q", got)
	}
}
