package queries

import (
	"strings"

	"eventlens-backend/domain/events"
	"eventlens-backend/pkg/errors"
)

// AnswerQuery asks the pipeline to answer a natural-language question
// about world events.
type AnswerQuery struct {
	Text string
}

// Validate checks the query parameters
func (q AnswerQuery) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return errors.NewValidationError("query text is required")
	}
	if len(q.Text) > 2000 {
		return errors.NewValidationError("query text exceeds 2000 characters")
	}
	return nil
}

// AnswerResult is the full pipeline output for one question.
type AnswerResult struct {
	Query  string                  `json:"query"`
	Filter events.StructuredFilter `json:"processed_query"`
	Events []events.EventRecord    `json:"events"`
	Stats  events.StatsSummary     `json:"stats"`
}
