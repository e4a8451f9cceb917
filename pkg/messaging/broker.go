package messaging

import (
	"context"
)

// Broker publishes JSON encodable messages to named channels.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}

// Message is the envelope published on every channel.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// NopBroker drops every message. Used when no broker is configured.
type NopBroker struct{}

func (NopBroker) Publish(context.Context, string, interface{}) error { return nil }

func (NopBroker) Close() error { return nil }
