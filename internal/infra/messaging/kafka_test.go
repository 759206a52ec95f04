//go:build unit

package messaging_test

import (
	"testing"

	"order-saga/internal/infra/messaging"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestSetHeader(t *testing.T) {
	headers := []kafka.Header{
		{Key: "x-attempt", Value: []byte("1")},
		{Key: "traceparent", Value: []byte("00-abc")},
		{Key: "x-attempt", Value: []byte("2")},
	}

	got := messaging.SetHeader(headers, "x-attempt", "3")

	assert.Len(t, got, 2)
	msg := kafka.Message{Headers: got}
	assert.Equal(t, "3", messaging.Header(msg, "x-attempt"))
	assert.Equal(t, "00-abc", messaging.Header(msg, "traceparent"))
	assert.Len(t, headers, 3, "input is not modified")
}

func TestHeader_Missing(t *testing.T) {
	assert.Empty(t, messaging.Header(kafka.Message{}, messaging.HeaderEventType))
}
