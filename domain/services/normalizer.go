package services

import (
	"strings"

	"eventlens-backend/domain/events"
	"eventlens-backend/domain/graph"
)

// ResultNormalizer flattens raw graph query results into EventRecords.
// It is the single point where sentiment enters a record.
type ResultNormalizer struct{}

// NewResultNormalizer creates a new result normalizer
func NewResultNormalizer() *ResultNormalizer {
	return &ResultNormalizer{}
}

// Normalize converts a raw result into an ordered list of event records.
// A record missing its event ID is skipped; one bad record never aborts
// the batch. Missing optional fields stay empty instead of failing.
func (n *ResultNormalizer) Normalize(result graph.Result) []events.EventRecord {
	if result.IsFlat() {
		return n.normalizeRows(result.Rows)
	}
	return n.normalizeGraph(result)
}

func (n *ResultNormalizer) normalizeRows(rows []graph.Row) []events.EventRecord {
	records := make([]events.EventRecord, 0, len(rows))
	for _, row := range rows {
		if row.EventID == "" {
			continue
		}

		locations := make([]events.Location, 0, len(row.Locations))
		for _, loc := range row.Locations {
			locations = append(locations, events.Location{
				Name:    loc.Name,
				Country: loc.Country,
				Lat:     loc.Lat,
				Lon:     loc.Lon,
			})
		}

		actors := row.Actors
		if actors == nil {
			actors = []string{}
		}

		records = append(records, events.EventRecord{
			EventID:     row.EventID,
			Date:        row.Date,
			Description: row.Description,
			Label:       events.EventCodeLabel(row.Label),
			Geo:         row.Geo,
			Fatalities:  row.Fatalities,
			Tone:        row.Tone,
			Actors:      actors,
			Locations:   locations,
			Sentiment:   events.Classify(row.Tone),
		})
	}
	return records
}

// nodeKey identifies a node by type as well as ID. Actor and location
// IDs are name slugs, so an actor and a location can legally share an ID
// (actor "FRANCE", location "France" both slug to "france").
type nodeKey struct {
	typ graph.NodeType
	id  string
}

func (n *ResultNormalizer) normalizeGraph(result graph.Result) []events.EventRecord {
	nodesByID := make(map[nodeKey]graph.Node, len(result.Nodes))
	for _, node := range result.Nodes {
		nodesByID[nodeKey{node.Type, node.ID}] = node
	}

	// Group outbound edges per event, preserving edge order.
	actorEdges := make(map[string][]string)
	locationEdges := make(map[string][]string)
	for _, edge := range result.Edges {
		switch edge.Type {
		case graph.EdgeTypeActor:
			actorEdges[edge.From] = append(actorEdges[edge.From], edge.To)
		case graph.EdgeTypeLocation:
			locationEdges[edge.From] = append(locationEdges[edge.From], edge.To)
		}
	}

	records := make([]events.EventRecord, 0, len(result.Nodes))
	for _, node := range result.Nodes {
		if node.Type != graph.NodeTypeEvent {
			continue
		}
		if node.ID == "" {
			continue
		}

		actors := []string{}
		for _, actorID := range actorEdges[node.ID] {
			if actor, ok := nodesByID[nodeKey{graph.NodeTypeActor, actorID}]; ok {
				actors = append(actors, actor.Name)
			}
		}

		// An event may link zero or more locations.
		locations := []events.Location{}
		for _, locID := range locationEdges[node.ID] {
			if loc, ok := nodesByID[nodeKey{graph.NodeTypeLocation, locID}]; ok {
				locations = append(locations, events.Location{
					Name:    loc.Name,
					Country: loc.Country,
					Lat:     loc.Lat,
					Lon:     loc.Lon,
				})
			}
		}

		records = append(records, events.EventRecord{
			EventID:     node.ID,
			Date:        node.Date,
			Description: node.Description,
			Label:       events.EventCodeLabel(node.Label),
			Geo:         node.Geo,
			Fatalities:  node.Fatalities,
			Tone:        node.Tone,
			Actors:      actors,
			Locations:   locations,
			Sentiment:   events.Classify(node.Tone),
		})
	}
	return records
}

// FilterBySentiment drops records whose computed sentiment does not match
// the requested category. "all" (or anything unrecognized) keeps everything.
func (n *ResultNormalizer) FilterBySentiment(records []events.EventRecord, sentiment string) []events.EventRecord {
	want := events.ParseSentiment(sentiment)
	if want == events.SentimentAll {
		return records
	}

	filtered := make([]events.EventRecord, 0, len(records))
	for _, record := range records {
		if strings.EqualFold(string(record.Sentiment), want) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}
