package pathutil

import (
	"net/http"

	"guidepedia/internal/handler/http/responsewriter"
)

// RecordRoute wraps the mux so the pattern it matched reaches outer
// middleware. Middleware that calls r.WithContext hands the mux a copy of
// the request, so the outer r.Pattern stays empty; the shared recorder
// does not have that problem.
func RecordRoute(mux http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r)
		if r.Pattern == "" {
			return
		}
		if rw, ok := responsewriter.Find(w); ok {
			rw.SetRoute(r.Pattern)
		}
	})
}

// Label returns the route label for a request served through rw.
func Label(rw *responsewriter.ResponseWriter, r *http.Request) string {
	pattern := rw.Route()
	if pattern == "" {
		pattern = r.Pattern
	}
	return RouteLabel(pattern, r.URL.Path)
}
