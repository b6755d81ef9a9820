package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns are evaluated in order. Only paths that missed the router
// (404s, wrong methods) need them; matched requests carry their route pattern.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/articles/\d+$`), Template: "/articles/{id}"},
	{Pattern: regexp.MustCompile(`^/articles/\d+/comments$`), Template: "/articles/{id}/comments"},
	{Pattern: regexp.MustCompile(`^/articles/\d+/reaction$`), Template: "/articles/{id}/reaction"},
	{Pattern: regexp.MustCompile(`^/articles/\d+/reactions/count$`), Template: "/articles/{id}/reactions/count"},
	{Pattern: regexp.MustCompile(`^/articles/\d+/saved$`), Template: "/articles/{id}/saved"},

	{Pattern: regexp.MustCompile(`^/categories/\d+/articles$`), Template: "/categories/{id}/articles"},

	{Pattern: regexp.MustCompile(`^/users/\d+$`), Template: "/users/{id}"},
	{Pattern: regexp.MustCompile(`^/users/\d+/subscription$`), Template: "/users/{id}/subscription"},
	{Pattern: regexp.MustCompile(`^/users/\d+/subscribers$`), Template: "/users/{id}/subscribers"},
	{Pattern: regexp.MustCompile(`^/users/\d+/subscriptions$`), Template: "/users/{id}/subscriptions"},
}

// NormalizePath converts paths with IDs (e.g. /articles/123) to their route
// template (/articles/{id}) so metric labels stay bounded. Query strings and
// trailing slashes are dropped. Unknown paths are returned unchanged.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}

// RouteLabel returns the label for a request: the route pattern the mux
// matched without its method prefix, or the normalized raw path.
func RouteLabel(pattern, path string) string {
	if pattern != "" {
		if i := strings.IndexByte(pattern, ' '); i != -1 {
			pattern = pattern[i+1:]
		}
		return pattern
	}
	return NormalizePath(path)
}
