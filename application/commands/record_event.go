package commands

import (
	"time"

	"eventlens-backend/domain/events"
	"eventlens-backend/pkg/errors"
)

// RecordEventCommand stores one event with its actor and location links.
// An empty EventID means the store mints one.
type RecordEventCommand struct {
	Event events.EventRecord
}

// Validate checks the command parameters
func (c RecordEventCommand) Validate() error {
	if c.Event.Date == "" {
		return errors.NewValidationError("event date is required")
	}
	if _, err := time.Parse("2006-01-02", c.Event.Date); err != nil {
		return errors.NewValidationError("event date must be YYYY-MM-DD")
	}
	return nil
}
