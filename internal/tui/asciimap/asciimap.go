// Package asciimap draws map markers on a character grid.
//
// The projection is plain equirectangular around the current center, which
// is accurate enough at city scale. One column spans as many degrees as
// eight pixels of a 256px web map tile at the same zoom level; rows are
// twice as tall as columns to match terminal cells.
package asciimap

import (
	"fmt"
	"math"
	"strings"

	"github.com/Makepad-fr/wegive/internal/model"
	"github.com/Makepad-fr/wegive/internal/view"
)

const (
	MinZoom = 1
	MaxZoom = 19

	markerGlyph   = '●'
	selectedGlyph = '◉'
	centerGlyph   = '+'
	fitPadding    = 2
)

// Widget implements view.MapWidget.
type Widget struct {
	width, height int
	center        model.Coordinate
	zoom          int
	markers       []view.Marker
	selected      int

	// pending size, applied by Resize
	nextWidth, nextHeight int
}

func New(center model.Coordinate, zoom int) *Widget {
	return &Widget{
		width: 60, height: 16,
		nextWidth: 60, nextHeight: 16,
		center: center, zoom: clampZoom(zoom),
	}
}

// SetSize records the space the widget may draw in. It takes effect on the
// next Resize, as a real map would on layout.
func (w *Widget) SetSize(width, height int) {
	if width > 4 {
		w.nextWidth = width
	}
	if height > 2 {
		w.nextHeight = height
	}
}

// Resize applies the size given to SetSize.
func (w *Widget) Resize() {
	w.width, w.height = w.nextWidth, w.nextHeight
}

func (w *Widget) Size() (width, height int) { return w.width, w.height }

func (w *Widget) ClearMarkers() {
	w.markers = nil
	w.selected = 0
}

func (w *Widget) AddMarker(m view.Marker) { w.markers = append(w.markers, m) }

func (w *Widget) SetCenter(c model.Coordinate) { w.center = c }

func (w *Widget) SetZoom(z int) { w.zoom = clampZoom(z) }

// FitBounds centers on b and picks the closest zoom that still shows all of it.
func (w *Widget) FitBounds(b view.Bounds) {
	w.center = b.Center()
	cols := float64(max(w.width-2*fitPadding, 1))
	rows := float64(max(w.height-2*fitPadding, 1))
	for z := MaxZoom; z >= MinZoom; z-- {
		if (b.NE.Lng-b.SW.Lng)/degPerCol(z) <= cols && (b.NE.Lat-b.SW.Lat)/degPerRow(z) <= rows {
			w.zoom = z
			return
		}
	}
	w.zoom = MinZoom
}

func (w *Widget) Center() model.Coordinate { return w.center }
func (w *Widget) Zoom() int                { return w.zoom }
func (w *Widget) Markers() []view.Marker   { return append([]view.Marker(nil), w.markers...) }

// Select moves the selection by delta markers, wrapping around.
func (w *Widget) Select(delta int) {
	n := len(w.markers)
	if n == 0 {
		return
	}
	w.selected = ((w.selected+delta)%n + n) % n
}

func (w *Widget) Selected() (view.Marker, bool) {
	if len(w.markers) == 0 {
		return view.Marker{}, false
	}
	return w.markers[w.selected], true
}

func degPerCol(z int) float64 { return 360 / (256 * math.Exp2(float64(z))) * 8 }
func degPerRow(z int) float64 { return degPerCol(z) * 2 }

func clampZoom(z int) int { return min(max(z, MinZoom), MaxZoom) }

// Project returns the cell of c, or false when it falls outside the grid.
func (w *Widget) Project(c model.Coordinate) (x, y int, ok bool) {
	x = w.width/2 + int(math.Round((c.Lng-w.center.Lng)/degPerCol(w.zoom)))
	y = w.height/2 - int(math.Round((c.Lat-w.center.Lat)/degPerRow(w.zoom)))
	return x, y, x >= 0 && x < w.width && y >= 0 && y < w.height
}

// Render draws the grid. Markers outside it are summarised on a footer line.
func (w *Widget) Render() string {
	grid := make([][]rune, w.height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", w.width))
	}
	grid[w.height/2][w.width/2] = centerGlyph

	off := 0
	for i, m := range w.markers {
		x, y, ok := w.Project(m.Position)
		if !ok {
			off++
			continue
		}
		g := markerGlyph
		if i == w.selected {
			g = selectedGlyph
		}
		grid[y][x] = g
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "zoom %d  center %s", w.zoom, w.center)
	if off > 0 {
		fmt.Fprintf(&b, "  (%d off-screen)", off)
	}
	return b.String()
}
