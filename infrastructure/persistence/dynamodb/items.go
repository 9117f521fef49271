package dynamodb

import (
	"fmt"
	"strings"
)

// Single-table layout. Events and their outbound edges share a partition
// so one query loads an event's whole neighborhood:
//
//	PK=EVENT#<id> SK=METADATA      event node (GSI1 projects all events
//	                               by date for recency-ordered queries)
//	PK=EVENT#<id> SK=ACTOR#<id>    actor edge
//	PK=EVENT#<id> SK=LOCATION#<id> location edge
const (
	entityTypeEvent    = "EVENT"
	entityTypeActor    = "ACTOR_EDGE"
	entityTypeLocation = "LOCATION_EDGE"

	skMetadata       = "METADATA"
	skActorPrefix    = "ACTOR#"
	skLocationPrefix = "LOCATION#"

	gsi1AllEvents  = "EVENT"
	gsi1DatePrefix = "DATE#"
)

// eventItem is the metadata item of an event node. SearchText, ActorNames
// and LocationNames are denormalized lowercase copies of the linked data
// so filter expressions can match without traversing edges first.
type eventItem struct {
	PK            string                 `dynamodbav:"PK"`
	SK            string                 `dynamodbav:"SK"`
	GSI1PK        string                 `dynamodbav:"GSI1PK"`
	GSI1SK        string                 `dynamodbav:"GSI1SK"`
	EntityType    string                 `dynamodbav:"EntityType"`
	EventID       string                 `dynamodbav:"EventID"`
	Date          string                 `dynamodbav:"Date"`
	Description   string                 `dynamodbav:"Description"`
	SearchText    string                 `dynamodbav:"SearchText"`
	ActorNames    string                 `dynamodbav:"ActorNames"`
	LocationNames string                 `dynamodbav:"LocationNames"`
	Label         string                 `dynamodbav:"Label"`
	Geo           map[string]interface{} `dynamodbav:"Geo,omitempty"`
	Fatalities    int                    `dynamodbav:"Fatalities"`
	Tone          float64                `dynamodbav:"Tone"`
}

// actorEdgeItem is an outbound event->actor edge.
type actorEdgeItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	ActorID    string `dynamodbav:"ActorID"`
	Name       string `dynamodbav:"Name"`
}

// locationEdgeItem is an outbound event->location edge. Coordinates are
// optional and stay nil when the source data has none.
type locationEdgeItem struct {
	PK         string   `dynamodbav:"PK"`
	SK         string   `dynamodbav:"SK"`
	EntityType string   `dynamodbav:"EntityType"`
	LocationID string   `dynamodbav:"LocationID"`
	Name       string   `dynamodbav:"Name"`
	Country    string   `dynamodbav:"Country"`
	Lat        *float64 `dynamodbav:"Lat,omitempty"`
	Lon        *float64 `dynamodbav:"Lon,omitempty"`
}

// BuildEventPK builds the partition key for an event
func BuildEventPK(eventID string) string {
	return fmt.Sprintf("EVENT#%s", eventID)
}

// BuildDateSK builds the GSI1 sort key for an event date
func BuildDateSK(date string) string {
	return gsi1DatePrefix + date
}

// eventIDFromPK recovers the event ID from a partition key.
func eventIDFromPK(pk string) string {
	return strings.TrimPrefix(pk, "EVENT#")
}
