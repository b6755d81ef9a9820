// Package pathutil extracts identifiers from request paths and normalizes
// paths into metric labels.
package pathutil

import (
	"errors"
	"net/http"
	"strconv"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a positive int64 identifier.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// PathID reads the named wildcard of the matched route, e.g. {id} in
// "GET /articles/{id}", and parses it as an identifier.
func PathID(r *http.Request, name string) (int64, error) {
	return ParseID(r.PathValue(name))
}
