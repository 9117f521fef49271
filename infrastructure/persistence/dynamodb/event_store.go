package dynamodb

import (
	"context"
	"strings"

	"eventlens-backend/domain/events"
	"eventlens-backend/domain/graph"
	pkgerrors "eventlens-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// DynamoAPI is the subset of the DynamoDB client the store uses.
type DynamoAPI interface {
	Query(ctx context.Context, params *awsdynamodb.QueryInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.QueryOutput, error)
	BatchWriteItem(ctx context.Context, params *awsdynamodb.BatchWriteItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.BatchWriteItemOutput, error)
}

// EventStore implements ports.EventStore on the single-table layout.
type EventStore struct {
	client    DynamoAPI
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewEventStore creates a new event store
func NewEventStore(client DynamoAPI, tableName, indexName string, logger *zap.Logger) *EventStore {
	return &EventStore{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// QueryEvents runs the translated filter and returns the matching
// subgraph, newest first, capped at MaxResults. The index is walked in
// descending date order and pages are consumed until the cap is reached,
// so the cap keeps the most recent matches even when the filter
// expression discards most of a page.
func (s *EventStore) QueryEvents(ctx context.Context, filter events.StructuredFilter) (graph.Result, error) {
	expr, err := BuildQueryExpression(filter)
	if err != nil {
		return graph.Result{}, pkgerrors.NewDatabaseError("build query", err)
	}

	var items []eventItem
	var lastKey map[string]types.AttributeValue

	for {
		input := &awsdynamodb.QueryInput{
			TableName:                 aws.String(s.tableName),
			IndexName:                 aws.String(s.indexName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ScanIndexForward:          aws.Bool(false),
			ExclusiveStartKey:         lastKey,
		}

		page, err := s.client.Query(ctx, input)
		if err != nil {
			return graph.Result{}, pkgerrors.NewDatabaseError("query events", err)
		}

		for _, raw := range page.Items {
			var item eventItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				s.logger.Warn("Skipping unreadable event item", zap.Error(err))
				continue
			}
			items = append(items, item)
			if len(items) >= MaxResults {
				break
			}
		}

		if len(items) >= MaxResults || page.LastEvaluatedKey == nil {
			break
		}
		lastKey = page.LastEvaluatedKey
	}

	s.logger.Info("Retrieved base events",
		zap.Int("count", len(items)),
		zap.String("topic", filter.Topic),
	)

	result := graph.Result{}
	for _, item := range items {
		result.Nodes = append(result.Nodes, eventNode(item))
	}

	// Load each matched event's outbound edges. A failed edge load only
	// narrows that event's neighborhood, never fails the query.
	for _, item := range items {
		if err := s.loadEdges(ctx, item.EventID, &result); err != nil {
			s.logger.Warn("Failed to load edges for event",
				zap.String("eventID", item.EventID),
				zap.Error(err),
			)
		}
	}

	return result, nil
}

// GetEvent retrieves one event with its edges.
func (s *EventStore) GetEvent(ctx context.Context, eventID string) (graph.Result, error) {
	partition, err := s.queryPartition(ctx, eventID)
	if err != nil {
		return graph.Result{}, pkgerrors.NewDatabaseError("get event", err)
	}

	result := graph.Result{}
	found := false
	for _, raw := range partition {
		entityType := itemEntityType(raw)
		if entityType == entityTypeEvent {
			var item eventItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				continue
			}
			result.Nodes = append(result.Nodes, eventNode(item))
			found = true
			continue
		}
		s.appendEdge(eventID, entityType, raw, &result)
	}

	if !found {
		return graph.Result{}, pkgerrors.NewNotFoundError("event")
	}

	return result, nil
}

// loadEdges queries the event's partition and appends its actor and
// location neighborhoods to the result.
func (s *EventStore) loadEdges(ctx context.Context, eventID string, result *graph.Result) error {
	partition, err := s.queryPartition(ctx, eventID)
	if err != nil {
		return err
	}

	for _, raw := range partition {
		s.appendEdge(eventID, itemEntityType(raw), raw, result)
	}
	return nil
}

// queryPartition loads every item sharing an event's partition key: the
// metadata item plus all edge items.
func (s *EventStore) queryPartition(ctx context.Context, eventID string) ([]map[string]types.AttributeValue, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(BuildEventPK(eventID)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, err
	}

	var items []map[string]types.AttributeValue
	var lastKey map[string]types.AttributeValue
	for {
		page, err := s.client.Query(ctx, &awsdynamodb.QueryInput{
			TableName:                 aws.String(s.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		if page.LastEvaluatedKey == nil {
			break
		}
		lastKey = page.LastEvaluatedKey
	}
	return items, nil
}

// appendEdge converts one edge item into its node and edge and appends
// both to the result. Unknown entity types are ignored.
func (s *EventStore) appendEdge(eventID, entityType string, raw map[string]types.AttributeValue, result *graph.Result) {
	switch entityType {
	case entityTypeActor:
		var edge actorEdgeItem
		if err := attributevalue.UnmarshalMap(raw, &edge); err != nil {
			s.logger.Warn("Skipping unreadable actor edge", zap.Error(err))
			return
		}
		actorID := strings.TrimPrefix(edge.SK, skActorPrefix)
		result.Nodes = append(result.Nodes, graph.Node{
			ID:   actorID,
			Type: graph.NodeTypeActor,
			Name: edge.Name,
		})
		result.Edges = append(result.Edges, graph.Edge{
			From: eventID,
			To:   actorID,
			Type: graph.EdgeTypeActor,
		})
	case entityTypeLocation:
		var edge locationEdgeItem
		if err := attributevalue.UnmarshalMap(raw, &edge); err != nil {
			s.logger.Warn("Skipping unreadable location edge", zap.Error(err))
			return
		}
		locationID := strings.TrimPrefix(edge.SK, skLocationPrefix)
		result.Nodes = append(result.Nodes, graph.Node{
			ID:      locationID,
			Type:    graph.NodeTypeLocation,
			Name:    edge.Name,
			Country: edge.Country,
			Lat:     edge.Lat,
			Lon:     edge.Lon,
		})
		result.Edges = append(result.Edges, graph.Edge{
			From: eventID,
			To:   locationID,
			Type: graph.EdgeTypeLocation,
		})
	}
}

func eventNode(item eventItem) graph.Node {
	return graph.Node{
		ID:          item.EventID,
		Type:        graph.NodeTypeEvent,
		Date:        item.Date,
		Description: item.Description,
		Label:       item.Label,
		Geo:         item.Geo,
		Fatalities:  item.Fatalities,
		Tone:        item.Tone,
	}
}

func itemEntityType(raw map[string]types.AttributeValue) string {
	if av, ok := raw["EntityType"].(*types.AttributeValueMemberS); ok {
		return av.Value
	}
	return ""
}
