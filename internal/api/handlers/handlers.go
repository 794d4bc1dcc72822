package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-agent/internal/agent"
	"github.com/dvloznov/finance-agent/internal/api/middleware"
	"github.com/dvloznov/finance-agent/internal/lookup"
)

// maxEventBytes caps POST /invoke bodies; real agent events are a few KB.
const maxEventBytes = 1 << 20

// Responder is the part of lookup.Handler the HTTP layer needs.
type Responder interface {
	Respond(ctx context.Context, raw []byte) agent.Response
	Lookup(ctx context.Context, userID string) (string, error)
}

// InvokeHandler exposes the Lambda handler over HTTP for local development.
type InvokeHandler struct {
	handler Responder
	log     zerolog.Logger
}

// NewInvokeHandler creates a new invoke handler.
func NewInvokeHandler(handler Responder, log zerolog.Logger) *InvokeHandler {
	return &InvokeHandler{
		handler: handler,
		log:     log,
	}
}

// Invoke handles POST /invoke. The body is an invocation event and the
// response is the envelope, exactly as the Lambda would return it.
func (h *InvokeHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.Warn().Int64("limit", tooLarge.Limit).Msg("Rejected oversized event")
			middleware.WriteError(w, http.StatusRequestEntityTooLarge, "Event too large")
			return
		}
		h.log.Error().Err(err).Msg("Failed to read request body")
		middleware.WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, h.handler.Respond(r.Context(), body))
}

// TransactionsHandler serves the lookup text without the agent envelope.
type TransactionsHandler struct {
	handler Responder
	log     zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(handler Responder, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		handler: handler,
		log:     log,
	}
}

// ListTransactions handles GET /api/transactions?user_id=NAME
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.URL.Query().Get("user_id")

	text, err := h.handler.Lookup(ctx, userID)
	switch {
	case errors.Is(err, lookup.ErrMissingIdentifier):
		middleware.WriteError(w, http.StatusBadRequest, "user_id is required")
		return
	case errors.Is(err, lookup.ErrStore):
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to query transactions")
		middleware.WriteError(w, http.StatusBadGateway, "Failed to query transactions")
		return
	case err != nil:
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to format transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to format transactions")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"user_id": userID,
		"text":    text,
	})
}
