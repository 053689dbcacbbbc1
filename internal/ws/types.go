package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// client -> server
	MessageTypeMove  MessageType = "move"
	MessageTypeReset MessageType = "reset"
	MessageTypeAbort MessageType = "abort"

	// server -> client
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeError      MessageType = "error"
	MessageTypeMatchFound MessageType = "matchFound"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage marshals payload into a message of type t.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

func ErrorMessage(text string) Message {
	raw, _ := json.Marshal(ErrorPayload{Error: text})
	return Message{Type: MessageTypeError, Payload: raw}
}
