// Package agent models the action-group invocation event sent by the agent
// platform and the response envelope it expects back.
package agent

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

const (
	DefaultActionGroup = "Unknown Action Group"
	DefaultFunction    = "Unknown Function"
	DefaultAgent       = "Unknown Agent"
)

// Parameter is one user-supplied input of a function invocation.
type Parameter struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Value string `json:"value"`
}

// Event is the invocation payload of a function-details action group.
// Pointer fields distinguish "absent" from "empty" so defaults only apply to
// values the platform did not send.
type Event struct {
	MessageVersion string          `json:"messageVersion,omitempty"`
	Agent          json.RawMessage `json:"agent,omitempty"`
	ActionGroup    *string         `json:"actionGroup,omitempty"`
	Function       *string         `json:"function,omitempty"`
	SessionID      string          `json:"sessionId,omitempty"`
	InputText      string          `json:"inputText,omitempty"`
	Parameters     []Parameter     `json:"parameters,omitempty"`

	// Echoed back untouched.
	SessionAttributes       json.RawMessage `json:"sessionAttributes,omitempty"`
	PromptSessionAttributes json.RawMessage `json:"promptSessionAttributes,omitempty"`
}

// Decode strictly parses an invocation payload.
func Decode(raw []byte) (Event, error) {
	var ev Event
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ev, fmt.Errorf("Decode: event is not a JSON object")
	}
	if err := json.Unmarshal(trimmed, &ev); err != nil {
		return Event{}, fmt.Errorf("Decode: %w", err)
	}
	return ev, nil
}

// Salvage recovers whatever envelope fields it can from a payload that failed
// Decode. Fields with the wrong type are skipped rather than rejected.
func Salvage(raw []byte) Event {
	var ev Event
	if !gjson.ValidBytes(raw) {
		return ev
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return ev
	}

	if r := root.Get("actionGroup"); r.Type == gjson.String {
		s := r.String()
		ev.ActionGroup = &s
	}
	if r := root.Get("function"); r.Type == gjson.String {
		s := r.String()
		ev.Function = &s
	}
	if r := root.Get("agent"); r.Exists() {
		ev.Agent = json.RawMessage(r.Raw)
	}
	if r := root.Get("sessionAttributes"); r.IsObject() {
		ev.SessionAttributes = json.RawMessage(r.Raw)
	}
	if r := root.Get("promptSessionAttributes"); r.IsObject() {
		ev.PromptSessionAttributes = json.RawMessage(r.Raw)
	}
	return ev
}

// ActionGroupOrDefault returns the action group, or DefaultActionGroup when absent.
func (e Event) ActionGroupOrDefault() string {
	if e.ActionGroup == nil {
		return DefaultActionGroup
	}
	return *e.ActionGroup
}

// FunctionOrDefault returns the function name, or DefaultFunction when absent.
func (e Event) FunctionOrDefault() string {
	if e.Function == nil {
		return DefaultFunction
	}
	return *e.Function
}

// AgentName accepts both the plain string form and the {name,id,alias,version}
// object form of the agent field.
func (e Event) AgentName() string {
	if len(e.Agent) == 0 {
		return DefaultAgent
	}
	r := gjson.ParseBytes(e.Agent)
	switch {
	case r.Type == gjson.String:
		return r.String()
	case r.IsObject() && r.Get("name").Type == gjson.String:
		return r.Get("name").String()
	case r.Type == gjson.Null:
		return DefaultAgent
	default:
		return r.Raw
	}
}

// UserIdentifier returns the value of the last parameter named "user_id" or
// "name". Every match overwrites the previous one.
func (e Event) UserIdentifier() string {
	var id string
	for _, p := range e.Parameters {
		if p.Name == "user_id" || p.Name == "name" {
			id = p.Value
		}
	}
	return id
}
