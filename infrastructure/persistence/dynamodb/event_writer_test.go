package dynamodb

import (
	"testing"

	"eventlens-backend/domain/events"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringAttr(t *testing.T, item map[string]types.AttributeValue, name string) string {
	t.Helper()
	attr, ok := item[name].(*types.AttributeValueMemberS)
	require.True(t, ok, "attribute %s is not a string", name)
	return attr.Value
}

func TestBuildEventItems(t *testing.T) {
	lat, lon := 48.85, 2.35
	record := events.EventRecord{
		EventID:     "ev-77",
		Date:        "2020-05-01",
		Description: "Protesters clashed with Police in Paris",
		Label:       "PROTEST",
		Fatalities:  2,
		Tone:        -4.5,
		Actors:      []string{"POLICE", "PROTESTERS"},
		Locations: []events.Location{
			{Name: "Paris", Country: "France", Lat: &lat, Lon: &lon},
		},
	}

	items, err := buildEventItems(record)
	require.NoError(t, err)
	require.Len(t, items, 4)

	metadata := items[0]
	assert.Equal(t, "EVENT#ev-77", stringAttr(t, metadata, "PK"))
	assert.Equal(t, "METADATA", stringAttr(t, metadata, "SK"))
	assert.Equal(t, "EVENT", stringAttr(t, metadata, "GSI1PK"))
	assert.Equal(t, "DATE#2020-05-01", stringAttr(t, metadata, "GSI1SK"))
	assert.Equal(t, "protesters clashed with police in paris", stringAttr(t, metadata, "SearchText"))
	assert.Equal(t, "police protesters", stringAttr(t, metadata, "ActorNames"))
	assert.Equal(t, "paris", stringAttr(t, metadata, "LocationNames"))

	actor := items[1]
	assert.Equal(t, "EVENT#ev-77", stringAttr(t, actor, "PK"))
	assert.Equal(t, "ACTOR#police", stringAttr(t, actor, "SK"))

	location := items[3]
	assert.Equal(t, "LOCATION#paris", stringAttr(t, location, "SK"))
	assert.Equal(t, "France", stringAttr(t, location, "Country"))
}

func TestBuildEventItems_SkipsBlankLinks(t *testing.T) {
	record := events.EventRecord{
		EventID: "ev-1",
		Date:    "2020-01-01",
		Actors:  []string{"", "ARMY"},
		Locations: []events.Location{
			{Name: ""},
		},
	}

	items, err := buildEventItems(record)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "ACTOR#army", stringAttr(t, items[1], "SK"))
}

func TestEdgeID(t *testing.T) {
	assert.Equal(t, "united_states", edgeID(" United States "))
	assert.Equal(t, "paris", edgeID("Paris"))
}
