package agent

import (
	"bytes"
	"encoding/json"
)

// MessageVersion is the only envelope version the platform accepts.
const MessageVersion = "1.0"

var emptyAttributes = json.RawMessage(`{}`)

// Response is the envelope returned to the agent platform. Field names and
// nesting are part of the wire contract.
type Response struct {
	MessageVersion          string          `json:"messageVersion"`
	Response                ActionResponse  `json:"response"`
	SessionAttributes       json.RawMessage `json:"sessionAttributes"`
	PromptSessionAttributes json.RawMessage `json:"promptSessionAttributes"`
}

type ActionResponse struct {
	ActionGroup      string           `json:"actionGroup"`
	Function         string           `json:"function"`
	FunctionResponse FunctionResponse `json:"functionResponse"`
}

type FunctionResponse struct {
	ResponseBody ResponseBody `json:"responseBody"`
}

type ResponseBody struct {
	Text TextBody `json:"TEXT"`
}

type TextBody struct {
	Body string `json:"body"`
}

// NewTextResponse builds a TEXT envelope. Absent or null attribute mappings
// are returned as {}.
func NewTextResponse(actionGroup, function, body string, sessionAttrs, promptAttrs json.RawMessage) Response {
	return Response{
		MessageVersion: MessageVersion,
		Response: ActionResponse{
			ActionGroup: actionGroup,
			Function:    function,
			FunctionResponse: FunctionResponse{
				ResponseBody: ResponseBody{Text: TextBody{Body: body}},
			},
		},
		SessionAttributes:       attributesOrEmpty(sessionAttrs),
		PromptSessionAttributes: attributesOrEmpty(promptAttrs),
	}
}

// Body is a shortcut for the TEXT body of the response.
func (r Response) Body() string {
	return r.Response.FunctionResponse.ResponseBody.Text.Body
}

func attributesOrEmpty(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return emptyAttributes
	}
	return raw
}
