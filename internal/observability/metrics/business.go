package metrics

import (
	"strconv"
	"time"
)

// Toggle results used as the "result" label of relation_toggles_total.
const (
	ResultApplied       = "applied"
	ResultRejected      = "rejected"
	ResultSelfReference = "self_reference"
	ResultNotFound      = "not_found"
	ResultConflict      = "conflict"
	ResultInvalid       = "invalid"
	ResultError         = "error"
)

// RecordRelationToggle records the outcome of one toggle request.
func RecordRelationToggle(kind, result string, duration time.Duration) {
	RelationTogglesTotal.WithLabelValues(kind, result).Inc()
	RelationToggleDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordArticleCreated counts a newly authored article.
func RecordArticleCreated(draft bool) {
	ArticlesCreatedTotal.WithLabelValues(strconv.FormatBool(draft)).Inc()
}

// RecordCommentCreated counts a newly posted comment.
func RecordCommentCreated() {
	CommentsCreatedTotal.Inc()
}
