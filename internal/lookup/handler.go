// Package lookup answers "show my transactions" invocations from the agent platform.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-agent/internal/agent"
	"github.com/dvloznov/finance-agent/internal/domain"
	"github.com/dvloznov/finance-agent/internal/logger"
)

// Handler turns invocation events into response envelopes.
type Handler struct {
	store domain.TransactionStore
	log   zerolog.Logger
}

// NewHandler creates a handler reading from store.
func NewHandler(store domain.TransactionStore, log zerolog.Logger) *Handler {
	return &Handler{
		store: store,
		log:   log,
	}
}

// Handle is the Lambda entry point. It always returns a valid envelope and a nil error.
func (h *Handler) Handle(ctx context.Context, raw json.RawMessage) (agent.Response, error) {
	return h.Respond(ctx, raw), nil
}

// Respond decodes the event, runs the lookup and wraps the outcome in an
// envelope. Failures become response text instead of errors.
func (h *Handler) Respond(ctx context.Context, raw []byte) agent.Response {
	log := h.log.With().Str("request_id", requestID(ctx)).Logger()
	if json.Valid(raw) {
		log.Debug().RawJSON("event", raw).Msg("Event received")
	} else {
		log.Debug().Bytes("event", raw).Msg("Event received (invalid JSON)")
	}

	ev, decodeErr := agent.Decode(raw)
	if decodeErr != nil {
		ev = agent.Salvage(raw)
	}

	// Captured before anything can fail so the error envelope can reuse them.
	actionGroup := ev.ActionGroupOrDefault()
	function := ev.FunctionOrDefault()
	log = log.With().
		Str("action_group", actionGroup).
		Str("function", function).
		Str("agent", ev.AgentName()).
		Logger()

	var body string
	if decodeErr != nil {
		err := wrap(ErrMalformedEvent, decodeErr)
		log.Error().Err(err).Msg("Could not decode event")
		body = Body(err)
	} else {
		log.Debug().Interface("parameters", ev.Parameters).Msg("Extracted parameters")
		text, err := h.safeLookup(ctx, ev.UserIdentifier())
		if err != nil {
			logFailure(log, err)
			text = Body(err)
		}
		body = text
	}

	resp := agent.NewTextResponse(actionGroup, function, body, ev.SessionAttributes, ev.PromptSessionAttributes)
	log.Info().Interface("response", resp).Msg("Returning response")
	return resp
}

// Lookup returns the response text for userID: the formatted transaction
// list, or the no-transactions message. Errors carry one of the Err* kinds.
func (h *Handler) Lookup(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrMissingIdentifier
	}

	log := h.log.With().Str("user_id", userID).Logger()

	items, err := h.store.QueryByUser(ctx, userID)
	if err != nil {
		return "", wrap(ErrStore, err)
	}
	log.Debug().Int("count", len(items)).Msg("Retrieved transactions")

	if len(items) == 0 {
		return noTransactionsText(userID), nil
	}

	txns, err := Transactions(items)
	if err != nil {
		return "", wrap(ErrInvalidRecord, err)
	}
	return FormatTransactions(userID, txns), nil
}

// safeLookup keeps a panicking store or formatter from escaping the handler.
func (h *Handler) safeLookup(ctx context.Context, userID string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = wrap(ErrInternal, fmt.Errorf("%v", r))
		}
	}()
	return h.Lookup(ctx, userID)
}

func logFailure(log zerolog.Logger, err error) {
	if errors.Is(err, ErrMissingIdentifier) {
		log.Warn().Msg("No user identifier in parameters")
		return
	}
	log.Error().Err(err).Msg("Transaction lookup failed")
}

func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	if id := logger.RequestIDFromContext(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
