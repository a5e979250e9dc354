// Package cmap provides diverging colormaps with a movable midpoint for
// correlation heatmaps. The maps implement gonum/plot's palette.ColorMap
// so they plug directly into plotter.HeatMap and plotter.ColorBar.
package cmap

import (
	"image/color"

	"gonum.org/v1/plot/palette"
)

// Map is a piecewise-linear colormap over a fixed anchor table. Values in
// [Min, midpoint] cover the first half of the table and values in
// [midpoint, Max] the second half, so the middle anchor lands exactly on
// the midpoint regardless of where it sits inside the data range.
type Map struct {
	anchors []color.NRGBA
	min     float64
	max     float64
	mid     float64
	alpha   float64
}

var _ palette.ColorMap = (*Map)(nil)

// PiYG returns the pink-white-green diverging map used for correlation and
// slope matrices (ColorBrewer 11-class PiYG).
func PiYG() *Map {
	return &Map{
		anchors: []color.NRGBA{
			{0x8E, 0x01, 0x52, 0xFF},
			{0xC5, 0x1B, 0x7D, 0xFF},
			{0xDE, 0x77, 0xAE, 0xFF},
			{0xF1, 0xB6, 0xDA, 0xFF},
			{0xFD, 0xE0, 0xEF, 0xFF},
			{0xF7, 0xF7, 0xF7, 0xFF},
			{0xE6, 0xF5, 0xD0, 0xFF},
			{0xB8, 0xE1, 0x86, 0xFF},
			{0x7F, 0xBC, 0x41, 0xFF},
			{0x4D, 0x92, 0x21, 0xFF},
			{0x27, 0x64, 0x19, 0xFF},
		},
		min: 0, max: 1, mid: 0.5, alpha: 1,
	}
}

// BuPuR returns the reversed blue-purple sequential map used for p-value
// matrices, dark at zero so significant cells stand out (ColorBrewer
// 9-class BuPu, reversed).
func BuPuR() *Map {
	return &Map{
		anchors: []color.NRGBA{
			{0x4D, 0x00, 0x4B, 0xFF},
			{0x81, 0x0F, 0x7C, 0xFF},
			{0x88, 0x41, 0x9D, 0xFF},
			{0x8C, 0x6B, 0xB1, 0xFF},
			{0x8C, 0x96, 0xC6, 0xFF},
			{0x9E, 0xBC, 0xDA, 0xFF},
			{0xBF, 0xD3, 0xE6, 0xFF},
			{0xE0, 0xEC, 0xF4, 0xFF},
			{0xF7, 0xFC, 0xFD, 0xFF},
		},
		min: 0, max: 1, mid: 0.5, alpha: 1,
	}
}

// Alpha returns the opacity applied to every color in the map.
func (m *Map) Alpha() float64 { return m.alpha }

// SetAlpha sets the opacity applied to every color in the map. Values are
// clamped into [0, 1].
func (m *Map) SetAlpha(a float64) {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	m.alpha = a
}

// SetMidpoint pins the data value that maps to the center of the anchor
// table. It is clamped into the current [Min, Max] range at lookup time.
func (m *Map) SetMidpoint(v float64) { m.mid = v }

// Min returns the data value mapped to the first anchor.
func (m *Map) Min() float64 { return m.min }

// Max returns the data value mapped to the last anchor.
func (m *Map) Max() float64 { return m.max }

// SetMin sets the data value mapped to the first anchor.
func (m *Map) SetMin(v float64) { m.min = v }

// SetMax sets the data value mapped to the last anchor.
func (m *Map) SetMax(v float64) { m.max = v }

// At returns the color for data value v. Values outside [Min, Max] clamp
// to the nearest end rather than erroring; the heatmap always sets the
// range to the data extrema so clamping only absorbs float round-off.
func (m *Map) At(v float64) (color.Color, error) {
	return m.lerp(m.normalize(v)), nil
}

// Palette discretizes the map into n colors, evenly sampled over the data
// range. plotter.HeatMap consumes this form.
func (m *Map) Palette(n int) palette.Palette {
	if n < 2 {
		n = 2
	}
	cs := make([]color.Color, n)
	for i := range cs {
		v := m.min + (m.max-m.min)*float64(i)/float64(n-1)
		cs[i] = m.lerp(m.normalize(v))
	}
	return slicePalette(cs)
}

// normalize maps v into [0, 1] with the midpoint landing on 0.5.
func (m *Map) normalize(v float64) float64 {
	if m.max <= m.min {
		return 0.5
	}
	mid := m.mid
	if mid < m.min {
		mid = m.min
	}
	if mid > m.max {
		mid = m.max
	}
	switch {
	case v <= m.min:
		return 0
	case v >= m.max:
		return 1
	case v < mid:
		return 0.5 * (v - m.min) / (mid - m.min)
	case v > mid:
		return 0.5 + 0.5*(v-mid)/(m.max-mid)
	default:
		return 0.5
	}
}

func (m *Map) lerp(t float64) color.Color {
	segs := len(m.anchors) - 1
	pos := t * float64(segs)
	i := int(pos)
	if i >= segs {
		last := m.anchors[segs]
		last.A = uint8(m.alpha * 0xFF)
		return last
	}
	f := pos - float64(i)
	a, b := m.anchors[i], m.anchors[i+1]
	return color.NRGBA{
		R: uint8(float64(a.R) + f*(float64(b.R)-float64(a.R))),
		G: uint8(float64(a.G) + f*(float64(b.G)-float64(a.G))),
		B: uint8(float64(a.B) + f*(float64(b.B)-float64(a.B))),
		A: uint8(m.alpha * 0xFF),
	}
}

type slicePalette []color.Color

func (p slicePalette) Colors() []color.Color { return p }
