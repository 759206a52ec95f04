//go:build unit

package queries_test

import (
	"testing"
	"time"

	"order-saga/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterCursor(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)

	got, id, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(createdAt, 1001))

	require.NoError(t, err)
	assert.True(t, createdAt.Truncate(time.Microsecond).Equal(got))
	assert.Equal(t, int64(1001), id)
}

func TestDecodeAfterCursor_Rejects(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"not base64":   "!!!",
		"wrong layout": "bm9wZQ",
		"zero id":      queries.EncodeAfterCursor(time.Now(), 0),
	}
	for name, cursor := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := queries.DecodeAfterCursor(cursor)
			assert.Error(t, err)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, 5, queries.ValidateLimit(5))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(1000))
}
