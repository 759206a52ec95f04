// Package retrytopic implements bounded retry with escalation for Kafka handlers. A failed
// message is republished to a retry topic with a not-before timestamp. Once the attempts run
// out, or the message can never succeed, it goes to a dead-letter topic.
package retrytopic

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"order-saga/internal/infra/messaging"
	"order-saga/internal/pkg/clock"
	"order-saga/internal/pkg/config"
	"order-saga/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

const (
	HeaderAttempt       = "x-attempt"
	HeaderOriginalTopic = "x-original-topic"
	HeaderNotBefore     = "x-not-before"
	HeaderException     = "x-exception-message"
)

// ErrPoison marks failures that retrying cannot fix, such as undecodable payloads.
var ErrPoison = errs.New("poison message")

func Poison(err error) error {
	return errs.Mark(err, ErrPoison)
}

type Policy struct {
	// Attempts counts the first delivery, so 3 means two retries.
	Attempts    int
	Backoff     time.Duration
	RetrySuffix string
	DLTSuffix   string
}

func DefaultPolicy() Policy {
	return Policy{Attempts: 3, Backoff: 2 * time.Second, RetrySuffix: "-retry", DLTSuffix: ".dlt"}
}

func PolicyFromConfig(cfg config.RetryConfig) Policy {
	p := Policy{
		Attempts:    cfg.Attempts,
		Backoff:     cfg.Backoff,
		RetrySuffix: cfg.RetrySuffix,
		DLTSuffix:   cfg.DLTSuffix,
	}
	def := DefaultPolicy()
	if p.Attempts < 1 {
		p.Attempts = def.Attempts
	}
	if p.RetrySuffix == "" {
		p.RetrySuffix = def.RetrySuffix
	}
	if p.DLTSuffix == "" {
		p.DLTSuffix = def.DLTSuffix
	}
	return p
}

func (p Policy) RetryTopic(topic string) string { return topic + p.RetrySuffix }
func (p Policy) DLTTopic(topic string) string   { return topic + p.DLTSuffix }

// Attempt returns the 1-based delivery attempt recorded on msg.
func Attempt(msg kafka.Message) int {
	n, err := strconv.Atoi(messaging.Header(msg, HeaderAttempt))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func OriginalTopic(msg kafka.Message) string {
	if t := messaging.Header(msg, HeaderOriginalTopic); t != "" {
		return t
	}
	return msg.Topic
}

func Exception(msg kafka.Message) string {
	return messaging.Header(msg, HeaderException)
}

type Handler func(ctx context.Context, msg kafka.Message) error

type Processor struct {
	policy   Policy
	producer messaging.Producer
	clock    clock.Clock
	log      *slog.Logger
}

func NewProcessor(policy Policy, producer messaging.Producer, clk clock.Clock, log *slog.Logger) *Processor {
	return &Processor{policy: policy, producer: producer, clock: clk, log: log}
}

func (p *Processor) Policy() Policy { return p.policy }

// Topics lists what a consumer of topic must subscribe to: the topic and its retry topic.
func (p *Processor) Topics(topic string) []string {
	return []string{topic, p.policy.RetryTopic(topic)}
}

// Process runs h for a message read from the original topic or its retry topic. A handler
// failure is absorbed by rescheduling; Process only returns an error when the message could
// not be handed on, in which case the caller must not commit it.
func (p *Processor) Process(ctx context.Context, msg kafka.Message, h Handler) error {
	if err := p.waitNotBefore(ctx, msg); err != nil {
		return err
	}

	herr := h(ctx, msg)
	if herr == nil {
		return nil
	}

	attempt := Attempt(msg)
	origin := OriginalTopic(msg)
	log := p.log.With("topic", origin, "attempt", attempt, "key", string(msg.Key), "error", herr)

	if errs.Is(herr, ErrPoison) || attempt >= p.policy.Attempts {
		log.Error("message dead-lettered")
		return p.forward(ctx, msg, p.policy.DLTTopic(origin), origin, attempt, time.Time{}, herr)
	}

	log.Warn("message scheduled for retry")
	notBefore := p.clock.Now().Add(p.policy.Backoff)
	return p.forward(ctx, msg, p.policy.RetryTopic(origin), origin, attempt+1, notBefore, herr)
}

func (p *Processor) waitNotBefore(ctx context.Context, msg kafka.Message) error {
	raw := messaging.Header(msg, HeaderNotBefore)
	if raw == "" {
		return nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	wait := time.UnixMilli(ms).Sub(p.clock.Now())
	if wait <= 0 {
		return nil
	}
	return p.clock.Sleep(ctx, wait)
}

func (p *Processor) forward(ctx context.Context, msg kafka.Message, topic, origin string, attempt int, notBefore time.Time, cause error) error {
	headers := messaging.SetHeader(msg.Headers, HeaderAttempt, strconv.Itoa(attempt))
	headers = messaging.SetHeader(headers, HeaderOriginalTopic, origin)
	headers = messaging.SetHeader(headers, HeaderException, cause.Error())
	if notBefore.IsZero() {
		headers = dropHeader(headers, HeaderNotBefore)
	} else {
		headers = messaging.SetHeader(headers, HeaderNotBefore, strconv.FormatInt(notBefore.UnixMilli(), 10))
	}

	out := kafka.Message{
		Topic:   topic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
	}
	if err := p.producer.WriteMessages(ctx, out); err != nil {
		return errs.Wrapf(err, "forward message to %s", topic)
	}
	return nil
}

func dropHeader(headers []kafka.Header, key string) []kafka.Header {
	out := headers[:0:0]
	for _, h := range headers {
		if h.Key != key {
			out = append(out, h)
		}
	}
	return out
}
