// Package graph defines the raw, store-shaped result types produced by a
// graph query before normalization. Two shapes are supported: node/edge
// collections (the native output of the graph store) and pre-joined flat
// rows (the output of row-oriented exports and of tests).
package graph

// NodeType discriminates the vertices of a query result.
type NodeType string

const (
	NodeTypeEvent    NodeType = "event"
	NodeTypeActor    NodeType = "actor"
	NodeTypeLocation NodeType = "location"
)

// EdgeType discriminates outbound edges from an event vertex.
type EdgeType string

const (
	EdgeTypeActor    EdgeType = "event_actor"
	EdgeTypeLocation EdgeType = "has_location"
)

// Node is one vertex of a raw query result. Only the fields relevant to
// the node's type are populated; everything else stays zero.
type Node struct {
	ID   string
	Type NodeType

	// Event fields.
	Date        string
	Description string
	Label       string
	Geo         map[string]interface{}
	Fatalities  int
	Tone        float64

	// Actor / location fields.
	Name    string
	Country string
	Lat     *float64
	Lon     *float64
}

// Edge is a directed edge from an event node to an actor or location node.
type Edge struct {
	From string
	To   string
	Type EdgeType
}

// Row is one pre-joined record: the event with its actor and location
// names already collected.
type Row struct {
	EventID     string
	Date        string
	Description string
	Label       string
	Geo         map[string]interface{}
	Fatalities  int
	Tone        float64
	Actors      []string
	Locations   []RowLocation
}

// RowLocation is a location column of a pre-joined row.
type RowLocation struct {
	Name    string
	Country string
	Lat     *float64
	Lon     *float64
}

// Result is the raw output of a graph query. Exactly one of the two
// shapes is populated; an empty Result is a valid empty result set.
type Result struct {
	Nodes []Node
	Edges []Edge
	Rows  []Row
}

// IsFlat reports whether the result uses the pre-joined row shape.
func (r Result) IsFlat() bool {
	return len(r.Rows) > 0
}
