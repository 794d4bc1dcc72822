package agent

import (
	"encoding/json"
	"testing"
)

func TestNewTextResponse_WireShape(t *testing.T) {
	resp := NewTextResponse("G", "get_transactions", "hello", json.RawMessage(`{"a":"1"}`), nil)

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"messageVersion":"1.0","response":{"actionGroup":"G","function":"get_transactions",` +
		`"functionResponse":{"responseBody":{"TEXT":{"body":"hello"}}}},` +
		`"sessionAttributes":{"a":"1"},"promptSessionAttributes":{}}`
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}
	if resp.Body() != "hello" {
		t.Errorf("Body() = %q", resp.Body())
	}
}

func TestNewTextResponse_NullAttributes(t *testing.T) {
	resp := NewTextResponse("G", "F", "", json.RawMessage(`null`), json.RawMessage(` null `))
	if string(resp.SessionAttributes) != `{}` || string(resp.PromptSessionAttributes) != `{}` {
		t.Errorf("attributes = %s / %s, want {} / {}", resp.SessionAttributes, resp.PromptSessionAttributes)
	}
}

func TestNewTextResponse_UnicodeBody(t *testing.T) {
	resp := NewTextResponse("G", "F", "₹250", nil, nil)
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	body := decoded["response"].(map[string]any)["functionResponse"].(map[string]any)["responseBody"].(map[string]any)["TEXT"].(map[string]any)["body"]
	if body != "₹250" {
		t.Errorf("body = %v, want ₹250", body)
	}
}
