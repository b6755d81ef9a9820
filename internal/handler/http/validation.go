package http

import (
	"net/http"

	"guidepedia/internal/handler/http/respond"
)

// InputLimits bounds the parts of a request that are read before any
// handler runs.
type InputLimits struct {
	MaxAuthHeaderBytes int
	MaxPathBytes       int
	MaxBodyBytes       int64
}

// DefaultInputLimits allows 8KB of Authorization header, a 2KB path and a
// 1MB body. Article text is the largest payload and stays far below that.
func DefaultInputLimits() InputLimits {
	return InputLimits{
		MaxAuthHeaderBytes: 8 << 10,
		MaxPathBytes:       2 << 10,
		MaxBodyBytes:       1 << 20,
	}
}

// InputValidation rejects oversized headers and paths and caps the body.
func InputValidation(limits InputLimits) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > limits.MaxAuthHeaderBytes {
				respond.JSON(w, http.StatusBadRequest, respond.ErrorBody{
					Error: "authorization header too large",
					Code:  "invalid_input",
				})
				return
			}
			if len(r.URL.Path) > limits.MaxPathBytes {
				respond.JSON(w, http.StatusRequestURITooLong, respond.ErrorBody{
					Error: "URI too long",
					Code:  "invalid_input",
				})
				return
			}
			if limits.MaxBodyBytes > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, limits.MaxBodyBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
