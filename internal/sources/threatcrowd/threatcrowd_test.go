package threatcrowd_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subgather/internal/apperr"
	"subgather/internal/sources/threatcrowd"
	"subgather/internal/testutil"
)

const endpoint = "https://www.threatcrowd.org/searchApi/v2/domain/report/?domain=example.com"

func TestRun_ParsesSubdomains(t *testing.T) {
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusOK,
			`{"response_code":"1","subdomains":["www.example.com","mail.example.com"]}`),
	)

	src := threatcrowd.NewSource(client, testutil.NopLogger())
	names, err := src.Run(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"www.example.com", "mail.example.com"}, names)
}

func TestRun_NullSubdomainsIsNoResults(t *testing.T) {
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusOK, `{"response_code":"0","subdomains":null}`),
	)

	src := threatcrowd.NewSource(client, testutil.NopLogger())
	_, err := src.Run(context.Background(), "example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNoResults)
}

func TestRun_EmptyListIsNoResults(t *testing.T) {
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusOK, `{"subdomains":[]}`),
	)

	src := threatcrowd.NewSource(client, testutil.NopLogger())
	_, err := src.Run(context.Background(), "example.com")
	assert.ErrorIs(t, err, apperr.ErrNoResults)
}

func TestRun_HTTPFailure(t *testing.T) {
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusServiceUnavailable, ""),
	)

	src := threatcrowd.NewSource(client, testutil.NopLogger())
	_, err := src.Run(context.Background(), "example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrRequestFailed)
}
