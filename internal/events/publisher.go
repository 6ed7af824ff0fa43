// Package events announces newly created records to other systems.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RecordCreated is published after a submit is stored.
type RecordCreated struct {
	Module     string          `json:"module"`
	Collection string          `json:"collection"`
	RecordID   int             `json:"record_id"`
	Record     json.RawMessage `json:"record"`
	CreatedAt  time.Time       `json:"created_at"`
}

type Publisher interface {
	RecordCreated(ctx context.Context, e RecordCreated) error
}

// Broker is the slice of an MQTT client the publisher needs.
type Broker interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
}

// MQTTPublisher publishes to {prefix}/{module}/{collection}/created.
type MQTTPublisher struct {
	broker Broker
	prefix string
	qos    byte
}

func NewMQTTPublisher(broker Broker, prefix string, qos byte) *MQTTPublisher {
	return &MQTTPublisher{broker: broker, prefix: prefix, qos: qos}
}

func (p *MQTTPublisher) RecordCreated(ctx context.Context, e RecordCreated) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	return p.broker.Publish(Topic(p.prefix, e.Module, e.Collection), p.qos, false, payload)
}

// Topic builds the created-event topic for a collection.
func Topic(prefix, module, collection string) string {
	return fmt.Sprintf("%s/%s/%s/created", prefix, module, collection)
}

// Nop discards events; used when MQTT is disabled.
type Nop struct{}

func (Nop) RecordCreated(context.Context, RecordCreated) error { return nil }
