package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow_BurstThenDeny(t *testing.T) {
	krl := New(1, 3)
	defer krl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, krl.Allow("a"), "request %d should pass", i)
	}
	assert.False(t, krl.Allow("a"))
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	krl := New(1, 1)
	defer krl.Stop()

	assert.True(t, krl.Allow("a"))
	assert.False(t, krl.Allow("a"))
	assert.True(t, krl.Allow("b"))
	assert.Equal(t, 2, krl.Len())
}

func TestSweep_EvictsIdleKeys(t *testing.T) {
	krl := New(1, 1)
	defer krl.Stop()

	now := time.Now()
	krl.now = func() time.Time { return now }

	krl.Allow("old")
	now = now.Add(DefaultIdleTTL + time.Second)
	krl.Allow("fresh")

	krl.Sweep()

	assert.Equal(t, 1, krl.Len())
	krl.mu.RLock()
	_, ok := krl.entries["fresh"]
	krl.mu.RUnlock()
	assert.True(t, ok)
}

func TestMiddleware(t *testing.T) {
	krl := New(0.5, 2)
	defer krl.Stop()

	handler := krl.Middleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1001").Code)

	limited := do("10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "2", limited.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000").Code, "other clients are unaffected")
}

func TestMiddleware_CustomRejection(t *testing.T) {
	krl := New(1, 0)
	defer krl.Stop()

	called := false
	handler := krl.Middleware(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})(http.NotFoundHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, w.Code)
}
