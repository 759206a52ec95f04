//go:build unit || e2e

// Package testutil builds request bodies that a typed DTO cannot express, such as a body
// with a required field missing.
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// BodyEdit changes one key of a JSON object body.
type BodyEdit func(m map[string]any)

// DtoMap round-trips v through JSON and applies edits to the resulting object.
func DtoMap(t *testing.T, v any, edits ...BodyEdit) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, edit := range edits {
		edit(m)
	}
	return m
}

// Field sets key to value, or removes it when value is nil.
func Field(key string, value any) BodyEdit {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
