package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/skillquest-backend/internal/provider"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func messageBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"id":            "msg_test",
		"type":          "message",
		"role":          "assistant",
		"model":         "claude-test",
		"content":       []any{map[string]any{"type": "text", "text": text}},
		"stop_reason":   "end_turn",
		"stop_sequence": nil,
		"usage":         map[string]any{"input_tokens": 10, "output_tokens": 20},
	})
	return string(b)
}

func newServer(t *testing.T, status int, body string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "sk-test" {
			t.Errorf("X-Api-Key = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GenerateRoadmap_ExtractsObjectFromProse(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newServer(t, http.StatusOK,
		messageBody("Here you go:\n```json\n{\"slug\":\"go\",\"title\":\"Go\",\"levels\":[]}\n```"), &calls)

	c := NewClientWithURL(srv.URL, "sk-test", "claude-test", time.Second, newTestLogger())
	got, err := c.GenerateRoadmap(context.Background(), "Go")
	require.NoError(t, err)
	assert.JSONEq(t, `{"slug":"go","title":"Go","levels":[]}`, string(got))
	assert.EqualValues(t, 1, calls.Load())
}

func TestClient_GenerateRoadmap_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"overloaded is not retried", 529, `{"type":"error","error":{"type":"overloaded_error","message":"busy"}}`, provider.ErrUnexpectedStatus},
		{"server error is not retried", http.StatusInternalServerError, `{"type":"error","error":{"type":"api_error","message":"x"}}`, provider.ErrUnexpectedStatus},
		{"empty text", http.StatusOK, messageBody(""), provider.ErrEmptyResponse},
		{"no object", http.StatusOK, messageBody("I cannot help with that."), provider.ErrMalformedJSON},
		{"broken object", http.StatusOK, messageBody(`{"slug": }`), provider.ErrMalformedJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			srv := newServer(t, tt.status, tt.body, &calls)

			c := NewClientWithURL(srv.URL, "sk-test", "claude-test", time.Second, newTestLogger())
			got, err := c.GenerateRoadmap(context.Background(), "Go")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "err = %v, want %v", err, tt.wantErr)
			assert.Nil(t, got)
			assert.EqualValues(t, 1, calls.Load())
		})
	}
}
