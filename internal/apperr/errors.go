package apperr

import "errors"

// ErrInvalidInput is returned when a provided host or flag value fails validation.
// Use errors.Is(err, apperr.ErrInvalidInput) to detect validation failures uniformly
// across all sources.
var ErrInvalidInput = errors.New("invalid input")

// ErrRequestFailed is returned by any HTTP-based source when the request fails at the
// transport level or the server responds with a non-2xx status code.
// Use errors.Is(err, apperr.ErrRequestFailed) to detect request failures uniformly
// across all sources.
var ErrRequestFailed = errors.New("request failed")

// ErrNoResults is returned when a provider answered with a well-formed but empty
// result set. The scheduler treats it exactly like a transport failure: the task is
// logged and dropped, so callers cannot distinguish "provider has nothing" from
// "provider is down" without reading the logs.
var ErrNoResults = errors.New("no results")

// ErrMissingCredential is returned by a keyed source whose credential could not be
// resolved at invocation time. Recoverable and scoped to the single task that
// needed the credential.
var ErrMissingCredential = errors.New("missing credential")
