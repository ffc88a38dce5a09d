package axfr

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subgather/internal/apperr"
	"subgather/internal/testutil"
)

// stubResolver implements nsResolver with a fixed answer.
type stubResolver struct {
	servers []*net.NS
	err     error
}

func (s *stubResolver) LookupNS(context.Context, string) ([]*net.NS, error) {
	return s.servers, s.err
}

func TestRun_NSLookupFailure(t *testing.T) {
	src := &Source{
		resolver: &stubResolver{err: errors.New("no such host")},
		logger:   testutil.NopLogger(),
	}

	_, err := src.Run(context.Background(), "example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrRequestFailed)
}

func TestRun_NoNameServersIsNoResults(t *testing.T) {
	src := &Source{
		resolver: &stubResolver{},
		logger:   testutil.NopLogger(),
	}

	_, err := src.Run(context.Background(), "example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNoResults)
}

func TestRun_FallsBackToNextServer(t *testing.T) {
	src := NewSource(nil, testutil.NopLogger())
	src.resolver = &stubResolver{servers: []*net.NS{
		{Host: "ns1.example.com."},
		{Host: "ns2.example.com."},
	}}

	var attempts []string
	src.attempt = func(_ context.Context, _, addr string) ([]string, error) {
		attempts = append(attempts, addr)
		if len(attempts) == 1 {
			return nil, errors.New("connection refused")
		}
		return []string{"www.example.com"}, nil
	}

	names, err := src.Run(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"www.example.com"}, names)
	assert.Equal(t, []string{"ns1.example.com:53", "ns2.example.com:53"}, attempts,
		"second server contacted after the first fails")
}

func TestRun_CancellationStopsRemainingServers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	src := NewSource(nil, testutil.NopLogger())
	src.resolver = &stubResolver{servers: []*net.NS{
		{Host: "ns1.example.com."},
		{Host: "ns2.example.com."},
	}}

	var attempts int
	src.attempt = func(context.Context, string, string) ([]string, error) {
		attempts++
		cancel()
		return nil, errors.New("read timeout")
	}

	_, err := src.Run(ctx, "example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrRequestFailed)
	assert.Equal(t, 1, attempts, "no further servers after cancellation")
}

func TestName(t *testing.T) {
	src := NewSource(nil, testutil.NopLogger())
	assert.Equal(t, "axfr", src.Name())
}
