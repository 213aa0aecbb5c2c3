// Package render turns filtered schools into the map, its markers and the dashboard page.
package render

import (
	"fmt"

	"escolas-map/colorize"
	"escolas-map/filter"
	"escolas-map/models"

	geojson "github.com/paulmach/go.geojson"
)

// Map view and marker style
const (
	DefaultZoom       = 8
	MarkerRadius      = 5
	MarkerFillOpacity = 0.8
	PopupMaxWidth     = 300
	TileURL           = "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png"
	TileAttribution   = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors &copy; <a href="https://carto.com/attributions">CARTO</a>`
	TileSubdomains    = "abcd"
	TileMaxZoom       = 20
	legendSwatchCount = 5
)

// Marker is one circle on the map
type Marker struct {
	Lat, Lon    float64
	Radius      int
	Color       string
	FillOpacity float64
	Popup       string
	School      models.School
	Score       float64 // Score of the selected subject
}

// Map is the composed map view for one filter selection
type Map struct {
	CenterLat, CenterLon float64
	Zoom                 int
	Subject              models.Subject
	Markers              []Marker
}

// BuildMap places one marker per school, colored by the subject's score.
// The view is centered on the mean coordinate of schools; an empty list uses the fallback center.
func BuildMap(schools []models.School, subject models.Subject, palette colorize.Palette, fallbackLat, fallbackLon float64) (*Map, error) {
	m := &Map{
		Zoom:    DefaultZoom,
		Subject: subject,
		Markers: make([]Marker, 0, len(schools)),
	}
	if lat, lon, ok := filter.Center(schools); ok {
		m.CenterLat, m.CenterLon = lat, lon
	} else {
		m.CenterLat, m.CenterLon = fallbackLat, fallbackLon
	}

	for _, s := range schools {
		score, ok := s.Score(subject.Column)
		if !ok {
			return nil, fmt.Errorf("unknown subject column %q", subject.Column)
		}
		popup, err := Popup(s)
		if err != nil {
			return nil, err
		}
		m.Markers = append(m.Markers, Marker{
			Lat:         s.Latitude,
			Lon:         s.Longitude,
			Radius:      MarkerRadius,
			Color:       palette.Color(score),
			FillOpacity: MarkerFillOpacity,
			Popup:       popup,
			School:      s,
			Score:       score,
		})
	}
	return m, nil
}

// FeatureCollection converts the markers to GeoJSON points; coordinates are [lon, lat]
func (m *Map) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, mk := range m.Markers {
		f := geojson.NewPointFeature([]float64{mk.Lon, mk.Lat})
		f.SetProperty("color", mk.Color)
		f.SetProperty("radius", mk.Radius)
		f.SetProperty("fillOpacity", mk.FillOpacity)
		f.SetProperty("popup", mk.Popup)
		f.SetProperty("popupMaxWidth", PopupMaxWidth)
		f.SetProperty("school", mk.School.Name)
		f.SetProperty("uf", mk.School.UF)
		f.SetProperty("regional", mk.School.Regional)
		f.SetProperty("subject", m.Subject.Label)
		f.SetProperty("score", mk.Score)
		fc.AddFeature(f)
	}
	return fc
}

// MarkersJSON is the marshaled FeatureCollection
func (m *Map) MarkersJSON() ([]byte, error) {
	b, err := m.FeatureCollection().MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal markers: %w", err)
	}
	return b, nil
}
