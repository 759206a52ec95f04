//go:build unit

package consumer_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"order-saga/internal/consumer"
	"order-saga/internal/infra/messaging"
	"order-saga/internal/pkg/clock"
	"order-saga/internal/pkg/config"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup_CommitsAfterHandlerSucceeds(t *testing.T) {
	reader := &queueReader{pending: []kafka.Message{
		{Topic: "order-created", Offset: 1, Key: []byte("1")},
		{Topic: "order-created", Offset: 2, Key: []byte("2")},
	}}
	clk := clock.NewMockClock(time.Now())
	group := consumer.NewGroup(discardLogger(), func(string) messaging.Consumer { return reader },
		config.KafkaConfig{Readers: 1, HandlerBackoff: time.Second}, clk)

	var mu sync.Mutex
	calls := map[int64]int{}
	handler := func(_ context.Context, msg kafka.Message) error {
		mu.Lock()
		defer mu.Unlock()
		calls[msg.Offset]++
		if msg.Offset == 1 && calls[msg.Offset] < 3 {
			return errors.New("database unavailable")
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- group.Run(ctx, consumer.Route{Topic: "order-created", Handle: handler}) }()

	require.Eventually(t, func() bool { return len(reader.commits()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	commits := reader.commits()
	assert.Equal(t, int64(1), commits[0].Offset)
	assert.Equal(t, int64(2), commits[1].Offset)
	mu.Lock()
	assert.Equal(t, 3, calls[1])
	assert.Equal(t, 1, calls[2])
	mu.Unlock()
	assert.Equal(t, []time.Duration{time.Second, time.Second}, clk.Slept())
	assert.True(t, reader.closed)
}

func TestGroup_StartsReadersPerRoute(t *testing.T) {
	var mu sync.Mutex
	opened := map[string]int{}
	factory := func(topic string) messaging.Consumer {
		mu.Lock()
		defer mu.Unlock()
		opened[topic]++
		return &queueReader{}
	}
	group := consumer.NewGroup(discardLogger(), factory, config.KafkaConfig{Readers: 3}, clock.NewMockClock(time.Now()))
	noop := func(context.Context, kafka.Message) error { return nil }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := group.Run(ctx,
		consumer.Route{Topic: "a", Handle: noop},
		consumer.Route{Topic: "b", Handle: noop},
	)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 3, "b": 3}, opened)
}
