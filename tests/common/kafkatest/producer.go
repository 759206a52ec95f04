//go:build unit || e2e

// Package kafkatest stands in for the broker: messages written by a producer are kept so a
// test can hand them to consumers itself.
package kafkatest

import (
	"context"
	"sync"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	mu       sync.Mutex
	messages []kafka.Message
	failKey  string
}

func NewProducer() *Producer {
	return &Producer{}
}

func (p *Producer) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range msgs {
		if p.failKey != "" && string(m.Key) == p.failKey {
			return kafka.LeaderNotAvailable
		}
	}
	p.messages = append(p.messages, msgs...)
	return nil
}

// FailKey makes writes of messages with this key fail until cleared with "".
func (p *Producer) FailKey(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failKey = key
}

func (p *Producer) Messages() []kafka.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]kafka.Message(nil), p.messages...)
}

// Take removes and returns the messages written to topic, oldest first.
func (p *Producer) Take(topic string) []kafka.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	var taken, kept []kafka.Message
	for _, m := range p.messages {
		if m.Topic == topic {
			taken = append(taken, m)
		} else {
			kept = append(kept, m)
		}
	}
	p.messages = kept
	return taken
}

func (p *Producer) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = nil
	p.failKey = ""
}
