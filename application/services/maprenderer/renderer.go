// Package maprenderer builds standalone Leaflet HTML documents that plot
// event records as sentiment-colored markers.
package maprenderer

import (
	"context"
	"html/template"
	"strings"

	"eventlens-backend/application/ports"
	"eventlens-backend/domain/events"

	"go.uber.org/zap"
)

const (
	worldCenterLat = 20.0
	worldCenterLon = 0.0
	worldZoom      = 2
	focusedZoom    = 4
)

var sentimentColors = map[events.Sentiment]string{
	events.SentimentPositive: "green",
	events.SentimentNegative: "red",
	events.SentimentNeutral:  "gray",
}

// Marker is one plotted event.
type Marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Color string  `json:"color"`
	Popup string  `json:"popup"`
}

type mapData struct {
	CenterLat float64
	CenterLon float64
	Zoom      int
	Markers   []Marker
}

// Renderer turns event records into an embeddable Leaflet map. Events
// without stored coordinates are resolved through the geocoder; events
// that still cannot be placed are simply left off the map.
type Renderer struct {
	geocoder ports.Geocoder
	logger   *zap.Logger
}

func NewRenderer(geocoder ports.Geocoder, logger *zap.Logger) *Renderer {
	return &Renderer{geocoder: geocoder, logger: logger}
}

// Render produces a complete HTML document plotting the given events.
func (r *Renderer) Render(ctx context.Context, records []events.EventRecord) (string, error) {
	markers := make([]Marker, 0, len(records))
	for _, rec := range records {
		lat, lon, ok := r.locate(ctx, rec)
		if !ok {
			continue
		}
		markers = append(markers, Marker{
			Lat:   lat,
			Lon:   lon,
			Color: markerColor(rec.Sentiment),
			Popup: popupText(rec),
		})
	}

	data := mapData{
		CenterLat: worldCenterLat,
		CenterLon: worldCenterLon,
		Zoom:      worldZoom,
		Markers:   markers,
	}
	if len(markers) > 0 {
		var sumLat, sumLon float64
		for _, m := range markers {
			sumLat += m.Lat
			sumLon += m.Lon
		}
		data.CenterLat = sumLat / float64(len(markers))
		data.CenterLon = sumLon / float64(len(markers))
		data.Zoom = focusedZoom
	}

	var sb strings.Builder
	if err := mapTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// locate picks the first plottable location of an event, geocoding names
// that carry no stored coordinates.
func (r *Renderer) locate(ctx context.Context, rec events.EventRecord) (float64, float64, bool) {
	for _, loc := range rec.Locations {
		if loc.HasCoordinates() {
			return *loc.Lat, *loc.Lon, true
		}
	}
	for _, loc := range rec.Locations {
		if loc.Name == "" {
			continue
		}
		if lat, lon, ok := r.geocoder.Geocode(ctx, loc.Name, loc.Country); ok {
			return lat, lon, true
		}
	}
	if len(rec.Locations) > 0 {
		r.logger.Debug("event could not be placed on the map",
			zap.String("event_id", rec.EventID))
	}
	return 0, 0, false
}

func markerColor(s events.Sentiment) string {
	if color, ok := sentimentColors[s]; ok {
		return color
	}
	return "gray"
}

func popupText(rec events.EventRecord) string {
	var parts []string
	if rec.Label != "" {
		parts = append(parts, "<b>"+template.HTMLEscapeString(rec.Label)+"</b>")
	}
	if rec.Date != "" {
		parts = append(parts, "Date: "+template.HTMLEscapeString(rec.Date))
	}
	if len(rec.Locations) > 0 && rec.Locations[0].Name != "" {
		parts = append(parts, "Location: "+template.HTMLEscapeString(rec.Locations[0].Name))
	}
	if len(rec.Actors) > 0 {
		parts = append(parts, "Actors: "+template.HTMLEscapeString(strings.Join(rec.Actors, ", ")))
	}
	if rec.Sentiment != "" {
		parts = append(parts, "Sentiment: "+template.HTMLEscapeString(string(rec.Sentiment)))
	}
	return strings.Join(parts, "<br>")
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Event Map</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);
var markers = {{.Markers}};
markers.forEach(function (m) {
  L.circleMarker([m.lat, m.lon], {
    radius: 8,
    color: m.color,
    fillColor: m.color,
    fillOpacity: 0.7
  }).addTo(map).bindPopup(m.popup);
});
</script>
</body>
</html>
`))
