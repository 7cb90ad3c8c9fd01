package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggingMiddlewareDelegates(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})
	mw := &LoggingMiddleware{Next: next}

	req := httptest.NewRequest(http.MethodGet, "/decompress", nil)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if !called {
		t.Fatal("next handler was not called")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusTeapot)
	}
}
