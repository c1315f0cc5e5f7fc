package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUnconfiguredSkipsLive(t *testing.T) {
	liveCalled := false

	result := Resolve(context.Background(), false, "stats", nil,
		func(context.Context) ([]string, error) {
			liveCalled = true
			return []string{"live"}, nil
		},
		func() []string { return []string{"demo"} },
	)

	assert.False(t, liveCalled, "no query may be attempted without configuration")
	assert.Equal(t, SourceDemo, result.Source)
	assert.True(t, result.Demo())
	assert.Equal(t, ReasonUnconfigured, result.Reason)
	assert.Equal(t, []string{"demo"}, result.Data)
}

func TestResolveLiveErrorFallsBack(t *testing.T) {
	result := Resolve(context.Background(), true, "stats", nil,
		func(context.Context) (int, error) {
			return 0, errors.New("connection refused")
		},
		func() int { return 42 },
	)

	assert.Equal(t, SourceDemo, result.Source)
	assert.Equal(t, "connection refused", result.Reason)
	assert.Equal(t, 42, result.Data)
}

func TestResolveLiveSuccess(t *testing.T) {
	result := Resolve(context.Background(), true, "stats", nil,
		func(context.Context) (string, error) { return "live data", nil },
		func() string { return "demo data" },
	)

	require.Equal(t, SourceLive, result.Source)
	assert.False(t, result.Demo())
	assert.Empty(t, result.Reason)
	assert.Equal(t, "live data", result.Data)
}

func TestResolveSingleAttempt(t *testing.T) {
	attempts := 0

	Resolve(context.Background(), true, "flats", nil,
		func(context.Context) (struct{}, error) {
			attempts++
			return struct{}{}, errors.New("transient")
		},
		func() struct{} { return struct{}{} },
	)

	assert.Equal(t, 1, attempts, "a failed fetch must not be retried within the request")
}
