package handlers

import (
	"context"

	"eventlens-backend/application/commands"
	"eventlens-backend/application/ports"

	"go.uber.org/zap"
)

// RecordEventHandler stores incoming events in the graph store.
type RecordEventHandler struct {
	writer ports.EventWriter
	logger *zap.Logger
}

// NewRecordEventHandler creates a new record event handler
func NewRecordEventHandler(writer ports.EventWriter, logger *zap.Logger) *RecordEventHandler {
	return &RecordEventHandler{
		writer: writer,
		logger: logger,
	}
}

// Handle executes the record event command
func (h *RecordEventHandler) Handle(ctx context.Context, cmd commands.RecordEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.writer.PutEvent(ctx, cmd.Event); err != nil {
		h.logger.Error("Failed to store event",
			zap.String("event_id", cmd.Event.EventID),
			zap.Error(err),
		)
		return err
	}

	h.logger.Debug("Recorded event",
		zap.String("event_id", cmd.Event.EventID),
		zap.String("date", cmd.Event.Date),
	)
	return nil
}
