package httputil

import (
	"net/http"

	"github.com/go-forensics/deflate/capnslog"
)

var plog = capnslog.NewPackageLogger("github.com/go-forensics/deflate", "httputil")

// LoggingMiddleware logs each request's method and URL before delegating to
// Next.
type LoggingMiddleware struct {
	Next http.Handler
}

func (l *LoggingMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	plog.Infof("HTTP %s %v", r.Method, r.URL)
	l.Next.ServeHTTP(w, r)
}
