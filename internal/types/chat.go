package types

// ChatRequest is the body accepted by the chat endpoint.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatReply is a conversational answer plus follow-up prompts.
type ChatReply struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
	SessionID   string   `json:"session_id,omitempty"`
}

// IntentType is the route the chat service picked for a message.
type IntentType string

const (
	IntentEmpty    IntentType = "empty"
	IntentGreeting IntentType = "greeting"
	IntentState    IntentType = "state"
	IntentPlace    IntentType = "place"
)
