package kafka

import (
	"encoding/json"
	"time"
)

// Message is a produced Kafka message. Value is the JSON-encoded payload,
// Key routes all events for one booking to the same partition.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// Header keys shared by every producer in this codebase.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
)

func NewMessage(key string, payload any) (Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Key:       key,
		Value:     value,
		Headers:   make(map[string]string),
		Timestamp: time.Now(),
	}, nil
}

func (m Message) WithHeader(key, value string) Message {
	if m.Headers == nil {
		m.Headers = make(map[string]string)
	}
	m.Headers[key] = value
	return m
}
