package auth

import "strings"

// PublicEndpoints are reachable without a token: orchestration probes and
// Prometheus scraping, plus the category catalogue which shows no user data.
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/categories",
}

// IsPublicEndpoint reports whether path is public. Only an exact match, a
// trailing slash or a query string counts, so /health does not open
// /health/detail and /categories does not open /categories/1/articles.
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if path == endpoint || path == endpoint+"/" || strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}
