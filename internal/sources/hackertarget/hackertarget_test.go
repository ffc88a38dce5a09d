package hackertarget_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subgather/internal/apperr"
	"subgather/internal/sources/hackertarget"
	"subgather/internal/testutil"
)

const endpoint = "https://api.hackertarget.com/hostsearch/?q=example.com"

func TestRun_ParsesCSVLines(t *testing.T) {
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusOK,
			"www.example.com,93.184.216.34\napi.example.com,93.184.216.35\n"),
	)

	src := hackertarget.NewSource(client, testutil.NopLogger())
	names, err := src.Run(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"www.example.com", "api.example.com"}, names)
}

func TestRun_APIErrorSentinelIsNoResults(t *testing.T) {
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusOK, "error check your search parameter"),
	)

	src := hackertarget.NewSource(client, testutil.NopLogger())
	_, err := src.Run(context.Background(), "example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNoResults)
}

func TestRun_EmptyBodyIsNoResults(t *testing.T) {
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusOK, "\n"),
	)

	src := hackertarget.NewSource(client, testutil.NopLogger())
	_, err := src.Run(context.Background(), "example.com")
	assert.ErrorIs(t, err, apperr.ErrNoResults)
}

func TestRun_HTTPFailure(t *testing.T) {
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusTooManyRequests, ""),
	)

	src := hackertarget.NewSource(client, testutil.NopLogger())
	_, err := src.Run(context.Background(), "example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrRequestFailed)
	assert.Contains(t, err.Error(), "429")
}

func TestRun_NetworkError(t *testing.T) {
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewErrorResponder(fmt.Errorf("connection refused")),
	)

	src := hackertarget.NewSource(client, testutil.NopLogger())
	_, err := src.Run(context.Background(), "example.com")
	assert.ErrorIs(t, err, apperr.ErrRequestFailed)
}

func TestName(t *testing.T) {
	src := hackertarget.NewSource(nil, testutil.NopLogger())
	assert.Equal(t, "hackertarget", src.Name())
}
