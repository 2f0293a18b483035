package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/", 2*time.Second, nil)
	require.NoError(t, err)
	t.Cleanup(c.httpClient.CloseIdleConnections)
	return c
}

func TestNewClientRejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "localhost:8000", "ftp://example.com", "http://"} {
		_, err := NewClient(u, 0, nil)
		assert.Error(t, err, u)
	}
}

func TestAnalyze(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, analyzePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req analyzeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Can you review the API docs?", req.Message)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"classification":  "request",
			"summary":         "Review API docs.",
			"tasks":           []string{"Review docs"},
			"suggested_reply": "Sure, will do.",
		})
	})

	res, err := c.Analyze(context.Background(), "  Can you review the API docs?\n")
	require.NoError(t, err)
	assert.Equal(t, "Can you review the API docs?", res.Message)
	assert.Equal(t, Request, res.Classification)
	assert.Equal(t, "Review API docs.", res.Summary)
	assert.Equal(t, []string{"Review docs"}, res.Tasks)
	assert.Equal(t, "Sure, will do.", res.SuggestedReply)
}

func TestAnalyzeDefaultsMissingFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"summary":"FYI"}`))
	})

	res, err := c.Analyze(context.Background(), "status update")
	require.NoError(t, err)
	assert.Equal(t, Informational, res.Classification)
	assert.NotNil(t, res.Tasks)
	assert.Empty(t, res.Tasks)
}

func TestAnalyzeEmptyMessageSkipsRequest(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := c.Analyze(context.Background(), " \t\n")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Zero(t, calls.Load())
}

func TestAnalyzeStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"Error analyzing message"}`))
	})

	_, err := c.Analyze(context.Background(), "hello")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "Error analyzing message", statusErr.Detail)
}

func TestAnalyzePlainTextErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := c.Analyze(context.Background(), "hello")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "bad gateway", statusErr.Detail)
}

func TestAnalyzeMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"classification":`))
	})

	_, err := c.Analyze(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestRewrite(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, rewritePath, r.URL.Path)

		var req RewriteRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Please send the report.", req.OriginalMessage)
		assert.Equal(t, "Will send it.", req.BaseReply)
		assert.Equal(t, StyleFriendly, req.Style)

		_, _ = w.Write([]byte(`{"rewritten_reply":"Happy to send it over!"}`))
	})

	got, err := c.Rewrite(context.Background(), RewriteRequest{
		OriginalMessage: "Please send the report.",
		BaseReply:       "Will send it.",
		Style:           StyleFriendly,
	})
	require.NoError(t, err)
	assert.Equal(t, "Happy to send it over!", got)
}

func TestRewriteEmptyAnswerKeepsBaseReply(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	got, err := c.Rewrite(context.Background(), RewriteRequest{BaseReply: "Ok.", Style: StyleShort})
	require.NoError(t, err)
	assert.Equal(t, "Ok.", got)
}

func TestRewriteValidatesInput(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := c.Rewrite(context.Background(), RewriteRequest{Style: StylePolished})
	assert.ErrorIs(t, err, ErrNoAnalysis)

	_, err = c.Rewrite(context.Background(), RewriteRequest{BaseReply: "Ok.", Style: "loud"})
	assert.Error(t, err)
	assert.Zero(t, calls.Load())
}

func TestRewriteContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rewritten_reply":"late"}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Rewrite(ctx, RewriteRequest{BaseReply: "Ok.", Style: StyleShort})
	assert.ErrorIs(t, err, context.Canceled)
}
