package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/wegive/internal/model"
)

type fakeWidget struct {
	calls   []string
	markers []Marker
	center  model.Coordinate
	zoom    int
	bounds  Bounds
}

func (f *fakeWidget) Resize()       { f.calls = append(f.calls, "resize") }
func (f *fakeWidget) ClearMarkers() { f.calls = append(f.calls, "clear"); f.markers = nil }
func (f *fakeWidget) AddMarker(m Marker) {
	f.calls = append(f.calls, "add")
	f.markers = append(f.markers, m)
}
func (f *fakeWidget) SetCenter(c model.Coordinate) { f.calls = append(f.calls, "center"); f.center = c }
func (f *fakeWidget) SetZoom(z int)                { f.calls = append(f.calls, "zoom"); f.zoom = z }
func (f *fakeWidget) FitBounds(b Bounds)           { f.calls = append(f.calls, "fit"); f.bounds = b }

type finder map[string]model.SurplusItem

func (f finder) FindByID(id string) (model.SurplusItem, bool) {
	it, ok := f[id]
	return it, ok
}

func at(lat, lng float64) *model.Coordinate { return &model.Coordinate{Lat: lat, Lng: lng} }

func sample() []model.SurplusItem {
	return []model.SurplusItem{
		{ID: "a", Description: "Rice", Quantity: 10, ExpiryDate: "2026-10-19", DonorName: "Hotel", Status: model.StatusAvailable, Location: at(1.30, 103.80)},
		{ID: "b", Description: "Bread", Status: model.StatusClaimed, Location: at(1.31, 103.90)},
		{ID: "c", Description: "Soup", Status: model.StatusAvailable},
		{ID: "d", Description: "Fruit", Status: model.StatusAvailable, Location: at(1.28, 103.85)},
	}
}

func TestMarketplace(t *testing.T) {
	m := Marketplace(sample())
	require.False(t, m.Empty)
	require.Len(t, m.Cards, 4)
	assert.Equal(t, Card{ID: "a", Description: "Rice", Quantity: 10, Expiry: "19 Oct 2026", Donor: "Hotel", Status: model.StatusAvailable}, m.Cards[0])
	assert.Equal(t, "c", m.Cards[2].ID, "items without a location stay listed")

	empty := Marketplace(nil)
	assert.True(t, empty.Empty)
	assert.Empty(t, empty.Cards)
}

func TestMapMarkersMatchAvailableWithLocation(t *testing.T) {
	w := &fakeWidget{}
	mv := NewMapView(w, 0)
	items := sample()

	mv.Refresh(items)
	require.Len(t, w.markers, 2)
	assert.Equal(t, []string{"a", "d"}, []string{w.markers[0].ID, w.markers[1].ID})
	assert.Equal(t, "Rice", w.markers[0].Title)
	assert.Equal(t, Bounds{SW: model.Coordinate{Lat: 1.28, Lng: 103.80}, NE: model.Coordinate{Lat: 1.30, Lng: 103.85}}, w.bounds)

	items[0].Status = model.StatusClaimed
	mv.Refresh(items)
	require.Len(t, w.markers, 1)
	assert.Equal(t, "d", w.markers[0].ID)
	assert.Equal(t, model.Coordinate{Lat: 1.28, Lng: 103.85}, w.center)
	assert.Equal(t, DefaultSingleZoom, w.zoom)

	_, ok := mv.Marker("a")
	assert.False(t, ok)
}

func TestMapNoMarkersKeepsViewport(t *testing.T) {
	w := &fakeWidget{}
	NewMapView(w, 15).Refresh([]model.SurplusItem{{ID: "x", Status: model.StatusAvailable}})
	assert.Equal(t, []string{"clear"}, w.calls)
}

func TestMapActivateResizesFirst(t *testing.T) {
	w := &fakeWidget{}
	mv := NewMapView(w, 0)
	mv.Refresh(sample()[:1])
	w.calls = nil

	mv.Activate()
	assert.Equal(t, []string{"resize", "clear", "add", "center", "zoom"}, w.calls)
}

func TestMapWithoutWidget(t *testing.T) {
	mv := NewMapView(nil, 0)
	assert.NotPanics(t, func() {
		mv.Refresh(sample())
		mv.Activate()
	})
	assert.Len(t, mv.Markers(), 2)

	w := &fakeWidget{}
	mv.Attach(w)
	assert.Len(t, w.markers, 2)
}

func TestDetail(t *testing.T) {
	f := finder{}
	for _, it := range sample() {
		f[it.ID] = it
	}
	var d Detail
	_, ok := d.Render(f)
	assert.False(t, ok)

	assert.False(t, d.Open(f, "missing"))
	assert.False(t, d.IsOpen())

	require.True(t, d.Open(f, "a"))
	m, ok := d.Render(f)
	require.True(t, ok)
	assert.True(t, m.CanAccept)
	assert.False(t, m.CanCollect)

	it := f["a"]
	it.Status = model.StatusClaimed
	f["a"] = it
	m, _ = d.Render(f)
	assert.False(t, m.CanAccept, "re-renders in place with the new status")
	assert.True(t, m.CanCollect)

	d.Close()
	assert.False(t, d.IsOpen())
}
