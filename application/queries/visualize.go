package queries

import "eventlens-backend/domain/events"

// VisualizeQuery asks for an interactive map of the events matching a
// natural-language question. It shares the answer pipeline and adds a
// rendering stage.
type VisualizeQuery struct {
	Text string
}

// Validate checks the query parameters
func (q VisualizeQuery) Validate() error {
	return AnswerQuery{Text: q.Text}.Validate()
}

// VisualizeResult carries the rendered map alongside the pipeline output
// it was built from.
type VisualizeResult struct {
	Query   string              `json:"query"`
	MapHTML string              `json:"map_html"`
	Stats   events.StatsSummary `json:"stats"`
}
