package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/", WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestNewClientRejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "127.0.0.1:8000", "ftp://host", "http://"} {
		_, err := NewClient(u)
		assert.Error(t, err, u)
	}
}

func TestSearchSendsEncodedQuery(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		_, _ = w.Write([]byte(`{"results": [{"price": 1}]}`))
	})

	out := c.Search(context.Background(), "3 bed & 2 bath")
	require.False(t, out.Failed())
	assert.Len(t, out.Records, 1)
	assert.Equal(t, "/search", gotPath)
	assert.Equal(t, "3 bed & 2 bath", gotQuery)
}

func TestSearchNon2xxIsTransportFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "stack trace here"}`))
	})

	out := c.Search(context.Background(), "anything")
	require.True(t, out.Failed())
	assert.Equal(t, TransportFailure, out.Err.Kind)
	assert.Equal(t, http.StatusInternalServerError, out.Err.Status)
	assert.Equal(t, "search: status 500", out.Err.Message)
	assert.Equal(t, GenericMessage, out.Err.UserMessage())
}

func TestSearchApplicationError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "index unavailable"}`))
	})

	out := c.Search(context.Background(), "q")
	require.True(t, out.Failed())
	assert.Equal(t, ApplicationFailure, out.Err.Kind)
	assert.Equal(t, "index unavailable", out.Err.Message)
}

func TestSearchDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{bad json"))
	})

	out := c.Search(context.Background(), "q")
	require.True(t, out.Failed())
	assert.Equal(t, TransportFailure, out.Err.Kind)
	assert.Equal(t, http.StatusOK, out.Err.Status)
}

func TestSearchRejectsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [{"price": 1}, {"price": 2}]}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, WithHTTPClient(srv.Client()), WithMaxBodyBytes(16))
	require.NoError(t, err)
	out := c.Search(context.Background(), "q")
	require.True(t, out.Failed())
	assert.Equal(t, TransportFailure, out.Err.Kind)
	assert.Equal(t, http.StatusOK, out.Err.Status)
	assert.Equal(t, "response too large: over 16 bytes", out.Err.Message)

	c, err = NewClient(srv.URL, WithHTTPClient(srv.Client()), WithMaxBodyBytes(41))
	require.NoError(t, err)
	out = c.Search(context.Background(), "q")
	require.False(t, out.Failed(), "a body of exactly the limit is accepted")
	assert.Len(t, out.Records, 2)
}

func TestSearchNetworkError(t *testing.T) {
	boom := errors.New("connection refused")
	hc := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	})}
	c, err := NewClient("http://example.com", WithHTTPClient(hc))
	require.NoError(t, err)

	out := c.Search(context.Background(), "q")
	require.True(t, out.Failed())
	assert.Equal(t, TransportFailure, out.Err.Kind)
	assert.Zero(t, out.Err.Status)
	assert.ErrorIs(t, out.Err, boom)
}

func TestSearchCanceledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := c.Search(ctx, "q")
	require.True(t, out.Failed())
	assert.ErrorIs(t, out.Err, context.Canceled)
}
