// Command seed loads event records from a JSON file into the event store.
// Input is an array of event objects in the API's event shape.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"eventlens-backend/application/commands"
	"eventlens-backend/domain/events"
	"eventlens-backend/infrastructure/config"
	"eventlens-backend/infrastructure/di"

	"go.uber.org/zap"
)

func main() {
	inputPath := flag.String("input", "", "path to a JSON file with an array of events")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("usage: seed -input events.json")
	}

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Logger.Sync()

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		container.Logger.Fatal("Failed to read input file", zap.Error(err))
	}

	var records []events.EventRecord
	if err := json.Unmarshal(data, &records); err != nil {
		container.Logger.Fatal("Failed to parse input file", zap.Error(err))
	}

	stored := 0
	for _, record := range records {
		cmd := commands.RecordEventCommand{Event: record}
		if err := container.CommandBus.Send(ctx, cmd); err != nil {
			container.Logger.Error("Failed to store event",
				zap.String("event_id", record.EventID),
				zap.Error(err))
			continue
		}
		stored++
	}

	container.Logger.Info("Seed finished",
		zap.Int("stored", stored),
		zap.Int("total", len(records)))
}
