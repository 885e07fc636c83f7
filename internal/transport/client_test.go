package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("accepts http backend", func(t *testing.T) {
		c, err := New("http://example.test/events", 0)
		require.NoError(t, err)
		assert.Equal(t, "http://example.test/events", c.Backend())
	})

	t.Run("accepts https backend", func(t *testing.T) {
		_, err := New("https://example.test/events", 5*time.Second)
		require.NoError(t, err)
	})

	t.Run("rejects non-http scheme", func(t *testing.T) {
		_, err := New("ftp://example.test/events", 0)
		assert.Error(t, err)
	})

	t.Run("rejects scheme-less value", func(t *testing.T) {
		_, err := New("example.test/events", 0)
		assert.Error(t, err)
	})

	t.Run("rejects empty value", func(t *testing.T) {
		_, err := New("", 0)
		assert.Error(t, err)
	})
}

func TestClient_Post(t *testing.T) {
	t.Run("sets content headers and sends the body", func(t *testing.T) {
		var gotBody []byte
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json; charset=utf-8", r.Header.Get("Content-Type"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			gotBody, _ = io.ReadAll(r.Body)
			w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		c, err := New(srv.URL, 0)
		require.NoError(t, err)

		err = c.Post(context.Background(), []byte(`{"type":"test"}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"test"}`, string(gotBody))
	})

	t.Run("discards a large response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(make([]byte, 1<<20))
		}))
		defer srv.Close()

		c, err := New(srv.URL, 0)
		require.NoError(t, err)
		assert.NoError(t, c.Post(context.Background(), []byte(`{}`)))
	})

	t.Run("error status is a failed delivery", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadGateway)
		}))
		defer srv.Close()

		c, err := New(srv.URL, 0)
		require.NoError(t, err)

		err = c.Post(context.Background(), []byte(`{}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("non-200 success status is still a success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		c, err := New(srv.URL, 0)
		require.NoError(t, err)
		assert.NoError(t, c.Post(context.Background(), []byte(`{}`)))
	})

	t.Run("connection refused surfaces a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		c, err := New(url, time.Second)
		require.NoError(t, err)
		assert.Error(t, c.Post(context.Background(), []byte(`{}`)))
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(time.Second)
		}))
		defer srv.Close()

		c, err := New(srv.URL, 0)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.Error(t, c.Post(ctx, []byte(`{}`)))
	})
}
