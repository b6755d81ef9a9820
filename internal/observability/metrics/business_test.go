package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRelationToggle(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		result string
	}{
		{"applied reaction", "reaction", ResultApplied},
		{"rejected save", "save", ResultRejected},
		{"self subscription", "subscription", ResultSelfReference},
		{"missing target", "reaction", ResultNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := RelationTogglesTotal.WithLabelValues(tt.kind, tt.result)
			before := testutil.ToFloat64(counter)

			RecordRelationToggle(tt.kind, tt.result, 3*time.Millisecond)

			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestRecordArticleCreated(t *testing.T) {
	drafts := ArticlesCreatedTotal.WithLabelValues("true")
	published := ArticlesCreatedTotal.WithLabelValues("false")
	beforeDrafts := testutil.ToFloat64(drafts)
	beforePublished := testutil.ToFloat64(published)

	RecordArticleCreated(true)
	RecordArticleCreated(false)
	RecordArticleCreated(false)

	assert.Equal(t, beforeDrafts+1, testutil.ToFloat64(drafts))
	assert.Equal(t, beforePublished+2, testutil.ToFloat64(published))
}

func TestRecordCommentCreated(t *testing.T) {
	before := testutil.ToFloat64(CommentsCreatedTotal)
	RecordCommentCreated()
	assert.Equal(t, before+1, testutil.ToFloat64(CommentsCreatedTotal))
}

func TestUpdateDBConnectionStats(t *testing.T) {
	UpdateDBConnectionStats(7, 3)
	assert.Equal(t, float64(7), testutil.ToFloat64(DBConnectionsActive))
	assert.Equal(t, float64(3), testutil.ToFloat64(DBConnectionsIdle))
}

func TestRecordHTTPRequest(t *testing.T) {
	counter := HTTPRequestsTotal.WithLabelValues("GET", "/articles/:id", "200")
	before := testutil.ToFloat64(counter)

	RecordHTTPRequest("GET", "/articles/:id", "200", 10*time.Millisecond, 512)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
