package dynamodb

import (
	"context"
	"strings"

	"eventlens-backend/domain/events"
	"eventlens-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// dynamodb batch writes accept at most 25 items per request
const batchWriteMax = 25

// PutEvent writes an event node with its actor and location edges. An
// event without an ID gets one minted. Existing items for the same keys
// are overwritten, so re-ingesting a feed is idempotent.
func (s *EventStore) PutEvent(ctx context.Context, record events.EventRecord) error {
	if record.EventID == "" {
		record.EventID = uuid.NewString()
	}

	items, err := buildEventItems(record)
	if err != nil {
		return errors.NewDatabaseError("marshal event", err)
	}

	for start := 0; start < len(items); start += batchWriteMax {
		end := start + batchWriteMax
		if end > len(items) {
			end = len(items)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, item := range items[start:end] {
			requests = append(requests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		out, err := s.client.BatchWriteItem(ctx, &awsdynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				s.tableName: requests,
			},
		})
		if err != nil {
			return errors.NewDatabaseError("put event", err)
		}
		// Retry once for throttled leftovers; a second rejection is an error.
		if leftover := out.UnprocessedItems[s.tableName]; len(leftover) > 0 {
			retry, err := s.client.BatchWriteItem(ctx, &awsdynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					s.tableName: leftover,
				},
			})
			if err != nil {
				return errors.NewDatabaseError("put event", err)
			}
			if len(retry.UnprocessedItems[s.tableName]) > 0 {
				return errors.NewDatabaseError("put event",
					errors.NewInternalError("unprocessed items after retry"))
			}
		}
	}

	s.logger.Debug("stored event",
		zap.String("event_id", record.EventID),
		zap.Int("items", len(items)))
	return nil
}

// buildEventItems flattens a record into its metadata and edge items.
func buildEventItems(record events.EventRecord) ([]map[string]types.AttributeValue, error) {
	pk := BuildEventPK(record.EventID)

	actorNames := make([]string, 0, len(record.Actors))
	items := make([]interface{}, 0, 1+len(record.Actors)+len(record.Locations))

	for _, actor := range record.Actors {
		if actor == "" {
			continue
		}
		actorNames = append(actorNames, actor)
		items = append(items, actorEdgeItem{
			PK:         pk,
			SK:         skActorPrefix + edgeID(actor),
			EntityType: entityTypeActor,
			ActorID:    edgeID(actor),
			Name:       actor,
		})
	}

	locationNames := make([]string, 0, len(record.Locations))
	for _, loc := range record.Locations {
		if loc.Name == "" {
			continue
		}
		locationNames = append(locationNames, loc.Name)
		items = append(items, locationEdgeItem{
			PK:         pk,
			SK:         skLocationPrefix + edgeID(loc.Name),
			EntityType: entityTypeLocation,
			LocationID: edgeID(loc.Name),
			Name:       loc.Name,
			Country:    loc.Country,
			Lat:        loc.Lat,
			Lon:        loc.Lon,
		})
	}

	metadata := eventItem{
		PK:            pk,
		SK:            skMetadata,
		GSI1PK:        gsi1AllEvents,
		GSI1SK:        BuildDateSK(record.Date),
		EntityType:    entityTypeEvent,
		EventID:       record.EventID,
		Date:          record.Date,
		Description:   record.Description,
		SearchText:    strings.ToLower(record.Description),
		ActorNames:    strings.ToLower(strings.Join(actorNames, " ")),
		LocationNames: strings.ToLower(strings.Join(locationNames, " ")),
		Label:         record.Label,
		Geo:           record.Geo,
		Fatalities:    record.Fatalities,
		Tone:          record.Tone,
	}
	items = append([]interface{}{metadata}, items...)

	marshaled := make([]map[string]types.AttributeValue, 0, len(items))
	for _, item := range items {
		av, err := attributevalue.MarshalMap(item)
		if err != nil {
			return nil, err
		}
		marshaled = append(marshaled, av)
	}
	return marshaled, nil
}

// edgeID derives a stable sort-key suffix from a linked entity's name so
// re-ingesting the same event overwrites instead of duplicating edges.
func edgeID(name string) string {
	id := strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(id, " ", "_")
}
