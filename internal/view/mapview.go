package view

import (
	"github.com/Makepad-fr/wegive/internal/model"
)

const (
	DefaultZoom       = 12
	DefaultSingleZoom = 14
)

// DefaultCenter is central Singapore.
var DefaultCenter = model.Coordinate{Lat: 1.2966, Lng: 103.8521}

// Marker is a pin for one available item.
type Marker struct {
	ID       string
	Title    string
	Position model.Coordinate
}

// Bounds is the rectangle spanned by SW and NE.
type Bounds struct {
	SW model.Coordinate
	NE model.Coordinate
}

func (b Bounds) Center() model.Coordinate {
	return model.Coordinate{Lat: (b.SW.Lat + b.NE.Lat) / 2, Lng: (b.SW.Lng + b.NE.Lng) / 2}
}

// BoundsOf returns the smallest bounds holding every marker.
func BoundsOf(markers []Marker) Bounds {
	if len(markers) == 0 {
		return Bounds{}
	}
	b := Bounds{SW: markers[0].Position, NE: markers[0].Position}
	for _, m := range markers[1:] {
		p := m.Position
		b.SW.Lat = min(b.SW.Lat, p.Lat)
		b.SW.Lng = min(b.SW.Lng, p.Lng)
		b.NE.Lat = max(b.NE.Lat, p.Lat)
		b.NE.Lng = max(b.NE.Lng, p.Lng)
	}
	return b
}

// MapWidget is the map the markers are drawn on.
type MapWidget interface {
	Resize()
	ClearMarkers()
	AddMarker(Marker)
	SetCenter(model.Coordinate)
	SetZoom(int)
	FitBounds(Bounds)
}

// MapView keeps a widget's markers in sync with the catalog.
type MapView struct {
	widget     MapWidget
	singleZoom int
	last       []model.SurplusItem
	markers    []Marker
}

// NewMapView wraps w. A nil widget turns every refresh into a no-op.
func NewMapView(w MapWidget, singleZoom int) *MapView {
	if singleZoom <= 0 {
		singleZoom = DefaultSingleZoom
	}
	return &MapView{widget: w, singleZoom: singleZoom}
}

// Attach sets the widget once it exists and redraws the last snapshot.
func (m *MapView) Attach(w MapWidget) {
	m.widget = w
	m.Refresh(m.last)
}

// MarkersFor keeps the items that have a location and are still Available.
func MarkersFor(items []model.SurplusItem) []Marker {
	var out []Marker
	for _, it := range items {
		if !it.HasLocation() || it.Status != model.StatusAvailable {
			continue
		}
		out = append(out, Marker{ID: it.ID, Title: it.Description, Position: *it.Location})
	}
	return out
}

// Refresh tears down every marker and rebuilds them from items.
func (m *MapView) Refresh(items []model.SurplusItem) {
	m.last = items
	m.markers = MarkersFor(items)
	if m.widget == nil {
		log.Debug("map widget not ready, skipping refresh")
		return
	}
	m.widget.ClearMarkers()
	for _, mk := range m.markers {
		m.widget.AddMarker(mk)
	}
	switch len(m.markers) {
	case 0:
	case 1:
		m.widget.SetCenter(m.markers[0].Position)
		m.widget.SetZoom(m.singleZoom)
	default:
		m.widget.FitBounds(BoundsOf(m.markers))
	}
}

// Activate is called when the map section becomes visible: the widget was
// laid out while hidden, so it is resized before markers are redrawn.
func (m *MapView) Activate() {
	if m.widget == nil {
		return
	}
	m.widget.Resize()
	m.Refresh(m.last)
}

func (m *MapView) Markers() []Marker {
	return append([]Marker(nil), m.markers...)
}

// Marker reports the marker for id, if the item is currently pinned.
func (m *MapView) Marker(id string) (Marker, bool) {
	for _, mk := range m.markers {
		if mk.ID == id {
			return mk, true
		}
	}
	return Marker{}, false
}
