package queries

import (
	"strings"

	"eventlens-backend/domain/events"
	"eventlens-backend/pkg/errors"
)

// GetEventQuery retrieves one event with its linked actors and locations.
type GetEventQuery struct {
	EventID string
}

// Validate checks the query parameters
func (q GetEventQuery) Validate() error {
	if strings.TrimSpace(q.EventID) == "" {
		return errors.NewValidationError("event ID is required")
	}
	return nil
}

// GetEventResult is the event detail payload.
type GetEventResult struct {
	Event   events.EventRecord `json:"event"`
	Summary string             `json:"summary"`
}
