package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/skillquest-backend/pkg/ctxutil"
)

func serveWithRequestID(t *testing.T, incoming string) (ctxID, headerID string) {
	t.Helper()

	h := RequestID().ThenFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = ctxutil.RequestIDFromCtx(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/api/translate", nil)
	if incoming != "" {
		req.Header.Set(RequestIDHeader, incoming)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return ctxID, rec.Header().Get(RequestIDHeader)
}

func TestRequestID_ReusesIncoming(t *testing.T) {
	t.Parallel()

	for _, in := range []string{uuid.New().String(), "frontend-42", "a.b_c"} {
		ctxID, headerID := serveWithRequestID(t, in)
		assert.Equal(t, in, ctxID)
		assert.Equal(t, in, headerID)
	}
}

func TestRequestID_GeneratesWhenMissingOrUnsafe(t *testing.T) {
	t.Parallel()

	for name, in := range map[string]string{
		"missing":   "",
		"too long":  strings.Repeat("x", maxRequestIDLen+1),
		"spaces":    "id with spaces",
		"newline":   "abc\ninjected=1",
		"non-ascii": "идентификатор",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctxID, headerID := serveWithRequestID(t, in)
			require.NotEqual(t, in, ctxID)
			_, err := uuid.Parse(ctxID)
			assert.NoError(t, err)
			assert.Equal(t, ctxID, headerID)
		})
	}
}
