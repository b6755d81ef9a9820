package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidepedia/internal/domain/entity"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		data         any
		expectedBody string
	}{
		{"success with map", http.StatusOK, map[string]string{"message": "success"}, `{"message":"success"}`},
		{"success with struct", http.StatusCreated, struct{ ID int }{ID: 123}, `{"ID":123}`},
		{"success with nil", http.StatusNoContent, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSON(w, tt.code, tt.data)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectedBody, strings.TrimSpace(w.Body.String()))
		})
	}
}

func TestJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, make(chan int))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInvalidField(t *testing.T) {
	w := httptest.NewRecorder()
	InvalidField(w, "id", errors.New("invalid id"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrorBody{Error: "invalid id", Code: "invalid_input", Field: "id"}, body)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		kind string
	}{
		{"not found", fmt.Errorf("resolve: %w", entity.NewNotFound(entity.KindArticle, 3)), http.StatusNotFound, "not_found"},
		{"transition", &entity.TransitionError{Relation: entity.RelationReaction, Present: true}, http.StatusConflict, "invalid_transition"},
		{"self reference", fmt.Errorf("subscription of user 1: %w", entity.ErrSelfReference), http.StatusUnprocessableEntity, "self_reference"},
		{"conflict", fmt.Errorf("Save: %w", entity.ErrConcurrentModification), http.StatusConflict, "concurrent_modification"},
		{"validation", &entity.ValidationError{Field: "title", Message: "is required"}, http.StatusBadRequest, "invalid_input"},
		{"other", errors.New("connection reset"), http.StatusInternalServerError, "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, kind := StatusFor(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestDomainError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      int
		message   string
		field     string
		notInBody string
	}{
		{
			name:      "not found hides wrapping",
			err:       fmt.Errorf("resolve article 9: %w", entity.NewNotFound(entity.KindArticle, 9)),
			code:      http.StatusNotFound,
			message:   `article "9" not found`,
			notInBody: "resolve",
		},
		{
			name:    "validation carries field",
			err:     &entity.ValidationError{Field: "text", Message: "is required"},
			code:    http.StatusBadRequest,
			message: "validation error on field 'text': is required",
			field:   "text",
		},
		{
			name:    "self reference",
			err:     fmt.Errorf("subscription of user 4: %w", entity.ErrSelfReference),
			code:    http.StatusUnprocessableEntity,
			message: entity.ErrSelfReference.Error(),
		},
		{
			name:      "internal error is masked",
			err:       errors.New("dial postgres://app:hunter2@db:5432 failed"),
			code:      http.StatusInternalServerError,
			message:   "internal server error",
			notInBody: "hunter2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			DomainError(w, r, tt.err)

			assert.Equal(t, tt.code, w.Code)
			var body ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Error)
			assert.Equal(t, tt.field, body.Field)
			if tt.notInBody != "" {
				assert.NotContains(t, w.Body.String(), tt.notInBody)
			}
		})
	}
}

func TestDomainError_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	DomainError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Zero(t, w.Body.Len())
}

func TestSafeError_NilRequest(t *testing.T) {
	w := httptest.NewRecorder()
	SafeError(w, nil, http.StatusServiceUnavailable, errors.New("pool exhausted"))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.NotContains(t, w.Body.String(), "pool exhausted")
}
