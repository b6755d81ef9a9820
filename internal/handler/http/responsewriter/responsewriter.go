// Package responsewriter wraps http.ResponseWriter to record the status code,
// body size and matched route for logging, metrics and tracing middleware.
package responsewriter

import (
	"net/http"
	"sync/atomic"
)

// ResponseWriter wraps http.ResponseWriter to record response metrics.
type ResponseWriter struct {
	http.ResponseWriter
	statusCode    int
	bytesWritten  int
	headerWritten bool
	route         atomic.Value
}

// Wrap returns w wrapped for recording. Wrapping an already wrapped writer
// returns it unchanged so stacked middleware share one recorder.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader records the first status code and forwards it.
func (w *ResponseWriter) WriteHeader(statusCode int) {
	if w.headerWritten {
		return
	}
	w.statusCode = statusCode
	w.headerWritten = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write writes the response body and records the size.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += n
	return n, err
}

// StatusCode returns the recorded HTTP status code.
func (w *ResponseWriter) StatusCode() int {
	return w.statusCode
}

// BytesWritten returns the number of bytes written to the response.
func (w *ResponseWriter) BytesWritten() int {
	return w.bytesWritten
}

// HeaderWritten reports whether the status line has been sent.
func (w *ResponseWriter) HeaderWritten() bool {
	return w.headerWritten
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// SetRoute records the route pattern the mux matched.
func (w *ResponseWriter) SetRoute(pattern string) {
	w.route.Store(pattern)
}

// Route returns the recorded route pattern, or "".
func (w *ResponseWriter) Route() string {
	p, _ := w.route.Load().(string)
	return p
}

// Find walks a chain of writers that expose Unwrap and returns the recorder,
// if one is part of it.
func Find(w http.ResponseWriter) (*ResponseWriter, bool) {
	for w != nil {
		if rw, ok := w.(*ResponseWriter); ok {
			return rw, true
		}
		u, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			return nil, false
		}
		w = u.Unwrap()
	}
	return nil, false
}
