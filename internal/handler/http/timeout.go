package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"guidepedia/internal/handler/http/respond"
)

// Timeout cancels the request context after d and answers 504 if the handler
// has not started its response by then. Writes the handler makes after the
// deadline are dropped.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			tw := &timeoutWriter{w: w, header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case p := <-panicked:
				panic(p)
			case <-done:
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.flush()
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				if !tw.wroteHeader {
					respond.JSON(w, http.StatusGatewayTimeout, respond.ErrorBody{
						Error: "request timeout",
						Code:  "timeout",
					})
				}
			}
		})
	}
}

// timeoutWriter keeps its own header map so the handler goroutine never
// touches the real writer's headers after the deadline fired.
type timeoutWriter struct {
	w      http.ResponseWriter
	header http.Header

	mu          sync.Mutex
	timedOut    bool
	wroteHeader bool
	flushed     bool
}

func (tw *timeoutWriter) Header() http.Header { return tw.header }

// Unwrap exposes the real writer to responsewriter.Find.
func (tw *timeoutWriter) Unwrap() http.ResponseWriter { return tw.w }

// flush copies headers to the real writer once. Callers hold mu.
func (tw *timeoutWriter) flush() {
	if tw.flushed {
		return
	}
	tw.flushed = true
	dst := tw.w.Header()
	for k, v := range tw.header {
		dst[k] = v
	}
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || tw.wroteHeader {
		return
	}
	tw.wroteHeader = true
	tw.flush()
	tw.w.WriteHeader(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wroteHeader {
		tw.wroteHeader = true
		tw.flush()
		tw.w.WriteHeader(http.StatusOK)
	}
	return tw.w.Write(b)
}
