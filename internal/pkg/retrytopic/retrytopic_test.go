//go:build unit

package retrytopic_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"order-saga/internal/infra/messaging"
	"order-saga/internal/pkg/clock"
	"order-saga/internal/pkg/config"
	"order-saga/internal/pkg/retrytopic"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProducer struct {
	written []kafka.Message
	err     error
}

func (p *recordingProducer) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if p.err != nil {
		return p.err
	}
	p.written = append(p.written, msgs...)
	return nil
}

var start = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newProcessor(p *recordingProducer, clk *clock.MockClock) *retrytopic.Processor {
	return retrytopic.NewProcessor(retrytopic.DefaultPolicy(), p, clk, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func requestMessage(headers ...kafka.Header) kafka.Message {
	return kafka.Message{
		Topic:     "stock-reserve-requested",
		Partition: 2,
		Offset:    41,
		Key:       []byte("7"),
		Value:     []byte(`{"orderId":7,"items":[{"productId":1,"quantity":3}]}`),
		Headers:   append([]kafka.Header{{Key: "traceparent", Value: []byte("00-trace")}}, headers...),
	}
}

func TestProcessor_SuccessPublishesNothing(t *testing.T) {
	p := &recordingProducer{}
	calls := 0

	err := newProcessor(p, clock.NewMockClock(start)).Process(context.Background(), requestMessage(),
		func(context.Context, kafka.Message) error { calls++; return nil })

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, p.written)
}

func TestProcessor_FailureGoesToRetryTopic(t *testing.T) {
	p := &recordingProducer{}

	err := newProcessor(p, clock.NewMockClock(start)).Process(context.Background(), requestMessage(),
		func(context.Context, kafka.Message) error { return errors.New("insufficient stock for product 1") })

	require.NoError(t, err)
	require.Len(t, p.written, 1)
	out := p.written[0]
	assert.Equal(t, "stock-reserve-requested-retry", out.Topic)
	assert.Equal(t, "7", string(out.Key))
	assert.Equal(t, requestMessage().Value, out.Value)
	assert.Equal(t, "2", messaging.Header(out, retrytopic.HeaderAttempt))
	assert.Equal(t, "stock-reserve-requested", messaging.Header(out, retrytopic.HeaderOriginalTopic))
	assert.Equal(t, "insufficient stock for product 1", messaging.Header(out, retrytopic.HeaderException))
	assert.Equal(t, strconv.FormatInt(start.Add(2*time.Second).UnixMilli(), 10), messaging.Header(out, retrytopic.HeaderNotBefore))
	assert.Equal(t, "00-trace", messaging.Header(out, "traceparent"))
}

func TestProcessor_RetryWaitsUntilNotBefore(t *testing.T) {
	p := &recordingProducer{}
	clk := clock.NewMockClock(start)
	msg := requestMessage(
		kafka.Header{Key: retrytopic.HeaderAttempt, Value: []byte("2")},
		kafka.Header{Key: retrytopic.HeaderOriginalTopic, Value: []byte("stock-reserve-requested")},
		kafka.Header{Key: retrytopic.HeaderNotBefore, Value: []byte(strconv.FormatInt(start.Add(1500*time.Millisecond).UnixMilli(), 10))},
	)
	msg.Topic = "stock-reserve-requested-retry"

	var handledAt time.Time
	err := newProcessor(p, clk).Process(context.Background(), msg, func(context.Context, kafka.Message) error {
		handledAt = clk.Now()
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, clk.Slept())
	assert.Equal(t, start.Add(1500*time.Millisecond), handledAt)
}

func TestProcessor_WaitHonoursCancellation(t *testing.T) {
	p := &recordingProducer{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	msg := requestMessage(kafka.Header{Key: retrytopic.HeaderNotBefore, Value: []byte(strconv.FormatInt(start.Add(time.Minute).UnixMilli(), 10))})

	called := false
	err := newProcessor(p, clock.NewMockClock(start)).Process(ctx, msg, func(context.Context, kafka.Message) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestProcessor_ExhaustedAttemptsGoToDLT(t *testing.T) {
	p := &recordingProducer{}
	msg := requestMessage(
		kafka.Header{Key: retrytopic.HeaderAttempt, Value: []byte("3")},
		kafka.Header{Key: retrytopic.HeaderOriginalTopic, Value: []byte("stock-reserve-requested")},
		kafka.Header{Key: retrytopic.HeaderNotBefore, Value: []byte(strconv.FormatInt(start.UnixMilli(), 10))},
	)
	msg.Topic = "stock-reserve-requested-retry"

	err := newProcessor(p, clock.NewMockClock(start)).Process(context.Background(), msg,
		func(context.Context, kafka.Message) error { return errors.New("insufficient stock for product 1") })

	require.NoError(t, err)
	require.Len(t, p.written, 1)
	out := p.written[0]
	assert.Equal(t, "stock-reserve-requested.dlt", out.Topic)
	assert.Equal(t, "3", messaging.Header(out, retrytopic.HeaderAttempt))
	assert.Empty(t, messaging.Header(out, retrytopic.HeaderNotBefore))
	assert.Equal(t, "insufficient stock for product 1", retrytopic.Exception(out))
}

func TestProcessor_PoisonSkipsRetries(t *testing.T) {
	p := &recordingProducer{}

	err := newProcessor(p, clock.NewMockClock(start)).Process(context.Background(), requestMessage(),
		func(context.Context, kafka.Message) error { return retrytopic.Poison(errors.New("bad json")) })

	require.NoError(t, err)
	require.Len(t, p.written, 1)
	assert.Equal(t, "stock-reserve-requested.dlt", p.written[0].Topic)
	assert.Equal(t, "1", messaging.Header(p.written[0], retrytopic.HeaderAttempt))
}

func TestProcessor_ForwardFailureIsReturned(t *testing.T) {
	p := &recordingProducer{err: errors.New("broker down")}

	err := newProcessor(p, clock.NewMockClock(start)).Process(context.Background(), requestMessage(),
		func(context.Context, kafka.Message) error { return errors.New("db down") })

	require.Error(t, err)
	assert.Contains(t, err.Error(), "stock-reserve-requested-retry")
}

func TestPolicyFromConfig(t *testing.T) {
	testCases := []struct {
		name string
		cfg  config.RetryConfig
		want retrytopic.Policy
	}{
		{
			name: "configured values are kept",
			cfg:  config.RetryConfig{Attempts: 5, Backoff: time.Second, RetrySuffix: "-again", DLTSuffix: "-dead"},
			want: retrytopic.Policy{Attempts: 5, Backoff: time.Second, RetrySuffix: "-again", DLTSuffix: "-dead"},
		},
		{
			name: "blank values fall back to defaults",
			cfg:  config.RetryConfig{Backoff: 2 * time.Second},
			want: retrytopic.DefaultPolicy(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, retrytopic.PolicyFromConfig(tc.cfg))
		})
	}
}

func TestAttempt_DefaultsToFirst(t *testing.T) {
	assert.Equal(t, 1, retrytopic.Attempt(kafka.Message{}))
	assert.Equal(t, 1, retrytopic.Attempt(kafka.Message{Headers: []kafka.Header{{Key: retrytopic.HeaderAttempt, Value: []byte("x")}}}))
}
