package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-agent/internal/domain"
	"github.com/dvloznov/finance-agent/internal/infra/memory"
	"github.com/dvloznov/finance-agent/internal/lookup"
)

// failingStore always returns err.
type failingStore struct{ err error }

func (f failingStore) QueryByUser(ctx context.Context, userID string) ([]domain.Item, error) {
	return nil, f.err
}

func newLookupHandler(t *testing.T) *lookup.Handler {
	t.Helper()
	store := memory.NewStore("user_id")
	err := store.LoadJSON([]byte(`[
		{"user_id": "Sam", "date": "2024-01-01", "category": "Food", "amount": 250, "merchant": "Cafe", "payment_method": "UPI"}
	]`))
	if err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	return lookup.NewHandler(store, zerolog.Nop())
}

func TestInvoke(t *testing.T) {
	h := NewInvokeHandler(newLookupHandler(t), zerolog.Nop())

	event := `{"actionGroup":"G","function":"get_transactions","parameters":[{"name":"user_id","value":"Sam"}]}`
	req := httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(event))
	rec := httptest.NewRecorder()
	h.Invoke(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		MessageVersion string `json:"messageVersion"`
		Response       struct {
			ActionGroup      string `json:"actionGroup"`
			FunctionResponse struct {
				ResponseBody struct {
					Text struct {
						Body string `json:"body"`
					} `json:"TEXT"`
				} `json:"responseBody"`
			} `json:"functionResponse"`
		} `json:"response"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Decoding response: %v", err)
	}
	if resp.MessageVersion != "1.0" || resp.Response.ActionGroup != "G" {
		t.Errorf("Unexpected envelope: %+v", resp)
	}
	want := "Here are the last 1 transactions for Sam:\n- 2024-01-01 | Food | ₹250 | Cafe (UPI)"
	if resp.Response.FunctionResponse.ResponseBody.Text.Body != want {
		t.Errorf("Body = %q, want %q", resp.Response.FunctionResponse.ResponseBody.Text.Body, want)
	}
}

func TestInvoke_TooLarge(t *testing.T) {
	var buf bytes.Buffer
	h := NewInvokeHandler(newLookupHandler(t), zerolog.New(&buf))

	big := strings.Repeat("x", maxEventBytes+1)
	rec := httptest.NewRecorder()
	h.Invoke(rec, httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(big)))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "Rejected oversized event") {
		t.Errorf("expected rejection to be logged, got: %s", buf.String())
	}
}

// errReader fails every read.
type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestInvoke_ReadError(t *testing.T) {
	var buf bytes.Buffer
	h := NewInvokeHandler(newLookupHandler(t), zerolog.New(&buf))

	rec := httptest.NewRecorder()
	h.Invoke(rec, httptest.NewRequest(http.MethodPost, "/invoke", errReader{}))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "connection reset") {
		t.Errorf("expected read error to be logged, got: %s", buf.String())
	}
}

func TestListTransactions(t *testing.T) {
	tests := []struct {
		name       string
		handler    Responder
		query      string
		wantStatus int
		wantText   string
	}{
		{"found", newLookupHandler(t), "?user_id=Sam", http.StatusOK, "Here are the last 1 transactions for Sam:"},
		{"not found", newLookupHandler(t), "?user_id=Ghost", http.StatusOK, "No transactions found for Ghost."},
		{"missing user", newLookupHandler(t), "", http.StatusBadRequest, "user_id is required"},
		{"store down", lookup.NewHandler(failingStore{err: errors.New("down")}, zerolog.Nop()), "?user_id=Sam", http.StatusBadGateway, "Failed to query transactions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTransactionsHandler(tt.handler, zerolog.Nop())
			rec := httptest.NewRecorder()
			h.ListTransactions(rec, httptest.NewRequest(http.MethodGet, "/api/transactions"+tt.query, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.wantText) {
				t.Errorf("Body %q does not contain %q", rec.Body.String(), tt.wantText)
			}
		})
	}
}
