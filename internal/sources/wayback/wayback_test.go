package wayback_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subgather/internal/apperr"
	"subgather/internal/sources/wayback"
	"subgather/internal/testutil"
)

const endpoint = "https://web.archive.org/cdx/search/cdx?url=*.example.com/*&output=text&fl=original&collapse=urlkey"

func TestRun_ExtractsUniqueHostnames(t *testing.T) {
	body := "https://www.example.com/index.html\n" +
		"https://www.example.com/about\n" +
		"http://blog.example.com:8080/post/1\n" +
		"https://cdn.example.com./asset.js\n"
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusOK, body),
	)

	src := wayback.NewSource(client, testutil.NopLogger())
	names, err := src.Run(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"www.example.com", "blog.example.com", "cdn.example.com"}, names)
}

func TestRun_EmptyIndexIsNoResults(t *testing.T) {
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusOK, ""),
	)

	src := wayback.NewSource(client, testutil.NopLogger())
	_, err := src.Run(context.Background(), "example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNoResults)
}

func TestRun_HTTPFailure(t *testing.T) {
	client := testutil.NewReqClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusForbidden, ""),
	)

	src := wayback.NewSource(client, testutil.NopLogger())
	_, err := src.Run(context.Background(), "example.com")
	assert.ErrorIs(t, err, apperr.ErrRequestFailed)
}
