//go:build e2e

package helper

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type PublishedMessage struct {
	Topic     string
	MessageID uuid.UUID
	Payload   []byte
}

// RecordingPublisher stands in for the broker and keeps every published message.
type RecordingPublisher struct {
	mu       sync.Mutex
	messages []PublishedMessage
}

func (p *RecordingPublisher) Publish(_ context.Context, topic string, messageID uuid.UUID, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, PublishedMessage{Topic: topic, MessageID: messageID, Payload: payload})
	return nil
}

func (p *RecordingPublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.messages))
	for i, m := range p.messages {
		out[i] = m.Topic
	}
	return out
}
