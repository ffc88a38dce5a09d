package threatminer_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subgather/internal/apperr"
	"subgather/internal/sources/threatminer"
	"subgather/internal/testutil"
)

const endpoint = "https://api.threatminer.org/v2/domain.php?q=example.com&rt=5"

func TestRun_ParsesResults(t *testing.T) {
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusOK,
			`{"status_code":"200","status_message":"Results found.","results":["www.example.com","dev.example.com"]}`),
	)

	src := threatminer.NewSource(client, testutil.NopLogger())
	names, err := src.Run(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"www.example.com", "dev.example.com"}, names)
}

func TestRun_Status404IsNoResults(t *testing.T) {
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusOK,
			`{"status_code":"404","status_message":"No results found.","results":[]}`),
	)

	src := threatminer.NewSource(client, testutil.NopLogger())
	_, err := src.Run(context.Background(), "example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNoResults)
}

func TestRun_EmptyResultsIsNoResults(t *testing.T) {
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusOK,
			`{"status_code":"200","status_message":"Results found.","results":[]}`),
	)

	src := threatminer.NewSource(client, testutil.NopLogger())
	_, err := src.Run(context.Background(), "example.com")
	assert.ErrorIs(t, err, apperr.ErrNoResults)
}

func TestRun_MalformedResultsIsFailure(t *testing.T) {
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusOK,
			`{"status_code":"200","results":{"unexpected":"object"}}`),
	)

	src := threatminer.NewSource(client, testutil.NopLogger())
	_, err := src.Run(context.Background(), "example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrRequestFailed)
}

func TestRun_HTTPFailure(t *testing.T) {
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusBadGateway, ""),
	)

	src := threatminer.NewSource(client, testutil.NopLogger())
	_, err := src.Run(context.Background(), "example.com")
	assert.ErrorIs(t, err, apperr.ErrRequestFailed)
}
