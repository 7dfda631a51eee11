package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_AppliesDefaultTimeout(t *testing.T) {
	t.Parallel()

	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-blocked:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(blocked)

	c := New(&Config{DefaultTimeout: 50 * time.Millisecond})
	defer c.Close()

	resp, err := c.Get(context.Background(), srv.URL)
	if resp != nil {
		_ = resp.Body.Close()
	}
	require.Error(t, err)
}

func TestDo_RespectsContextDeadline(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(nil)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	resp, err := c.Get(ctx, srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDo_InjectsUserAgent(t *testing.T) {
	t.Parallel()

	var gotUA atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(&Config{UserAgent: "focal-test"})
	defer c.Close()

	resp, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "focal-test", gotUA.Load())
}

func TestHooks_CalledAroundRequest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	c := New(nil)
	defer c.Close()

	var before, after atomic.Int32
	var status atomic.Int32
	c.SetBeforeRequestHook(func(r *http.Request) { before.Add(1) })
	c.SetAfterResponseHook(func(r *http.Request, resp *http.Response, d time.Duration, err error) {
		after.Add(1)
		if resp != nil {
			status.Store(int32(resp.StatusCode))
		}
	})

	resp, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, int32(1), before.Load())
	assert.Equal(t, int32(1), after.Load())
	assert.Equal(t, int32(http.StatusTeapot), status.Load())
}

func TestPost_MarshalsJSONBody(t *testing.T) {
	t.Parallel()

	var gotContentType atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType.Store(r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(nil)
	defer c.Close()

	resp, err := c.Post(context.Background(), srv.URL, "", map[string]string{"name": "S1"})
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "application/json", gotContentType.Load())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestDo_NilRequest(t *testing.T) {
	t.Parallel()

	c := New(nil)
	defer c.Close()

	_, err := c.Do(context.Background(), nil)
	require.Error(t, err)
}
