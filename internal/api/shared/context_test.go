package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID in original context")

	ctxWithTrace := SetTraceID(ctx)
	traceID := GetTraceID(ctxWithTrace)
	require.NotEmpty(t, traceID)

	_, err := uuid.Parse(traceID)
	assert.NoError(t, err, "trace ID should be a UUID")
	assert.Empty(t, GetTraceID(ctx), "Expected original context to remain unchanged")
}

func TestWithTraceID(t *testing.T) {
	t.Parallel()

	ctx := WithTraceID(context.Background(), "7d0f6a7e-9f11-4f4e-9b7c-0b6f5c3f7c11")
	assert.Equal(t, "7d0f6a7e-9f11-4f4e-9b7c-0b6f5c3f7c11", GetTraceID(ctx))
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), TraceIDKey, 123) // Not a string
	assert.Empty(t, GetTraceID(ctx))
}

func TestNewTraceIDUniqueness(t *testing.T) {
	t.Parallel()

	const iterations = 1000
	seen := make(map[string]struct{}, iterations)
	for i := 0; i < iterations; i++ {
		id := NewTraceID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate trace ID %s", id)
		seen[id] = struct{}{}
	}
}

func TestValidTraceID(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidTraceID(NewTraceID()))
	assert.False(t, ValidTraceID(""))
	assert.False(t, ValidTraceID("abc"))
	assert.False(t, ValidTraceID("{7d0f6a7e-9f11-4f4e-9b7c-0b6f5c3f7c11}"))
	assert.False(t, ValidTraceID("zzzzzzzz-9f11-4f4e-9b7c-0b6f5c3f7c11"))
}
