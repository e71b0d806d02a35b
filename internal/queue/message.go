package queue

import (
	"encoding/json"
	"errors"
	"strings"
)

// TypeReportDeliver asks a worker to render, store and email a report.
const TypeReportDeliver = "report.deliver"

// CurrentVersion is stamped on every enqueued message.
const CurrentVersion = 1

// ErrMissingType is returned for messages without a job type.
var ErrMissingType = errors.New("missing message type")

// Message is the envelope sent to downstream queue consumers. Payload is
// interpreted according to Type.
type Message struct {
	Type       string          `json:"type"`
	JobID      string          `json:"jobId"`
	RequestID  string          `json:"requestId,omitempty"`
	EnqueuedAt string          `json:"enqueuedAt"`
	Version    int             `json:"version"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	if strings.TrimSpace(msg.Type) == "" {
		return msg, ErrMissingType
	}
	return msg, nil
}
