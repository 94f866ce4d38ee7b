package httpjson

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/echo":
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "k-1", r.Header.Get("X-Test"))
			_, _ = w.Write([]byte(`{"ok":true}`))
		case "/broken":
			_, _ = w.Write([]byte(`{`))
		default:
			http.Error(w, "nope", http.StatusTeapot)
		}
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second)
	ctx := context.Background()

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.Do(ctx, http.MethodPost, "/echo", map[string]string{"X-Test": "k-1"}, map[string]string{"a": "b"}, &out))
	assert.True(t, out.OK)

	err := c.Do(ctx, http.MethodGet, "/missing", nil, nil, nil)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTeapot, se.StatusCode)
	assert.Equal(t, "nope", se.Body)

	assert.ErrorContains(t, c.Do(ctx, http.MethodGet, "/broken", nil, nil, &out), "decode response")
}
