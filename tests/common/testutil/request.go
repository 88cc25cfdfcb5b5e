//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits a request body after it has been flattened to JSON keys.
type Mutation func(body map[string]any)

// DtoMap flattens a request DTO to its JSON form so table tests can break single fields.
func DtoMap(t *testing.T, dto any, muts ...Mutation) map[string]any {
	t.Helper()

	raw, err := json.Marshal(dto)
	require.NoError(t, err, "marshal request dto")
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), "flatten request dto")

	for _, mutate := range muts {
		mutate(body)
	}
	return body
}

// Field sets key to value, a nil value removes the key.
func Field(key string, value any) Mutation {
	return func(body map[string]any) {
		if value == nil {
			delete(body, key)
			return
		}
		body[key] = value
	}
}
