// Package render assembles corrplot figures on gonum/plot: annotated
// correlation heatmaps with a labeled colorbar, and scatter plots with
// fitted lines and shaded interval bands. Figure creation is serialized by
// a package mutex since the plotting layer is not documented thread-safe.
package render

import (
	"image/color"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/corrplot/style"
)

var mu sync.Mutex

// okabeIto is the 8-color qualitative palette used for regression series;
// colorblind-safe and stable across calls.
var okabeIto = [8]color.NRGBA{
	{0x00, 0x00, 0x00, 0xFF},
	{0xE6, 0x9F, 0x00, 0xFF},
	{0x56, 0xB4, 0xE9, 0xFF},
	{0x00, 0x9E, 0x73, 0xFF},
	{0xF0, 0xE4, 0x42, 0xFF},
	{0x00, 0x72, 0xB2, 0xFF},
	{0xD5, 0x5E, 0x00, 0xFF},
	{0xCC, 0x79, 0xA7, 0xFF},
}

// SeriesColor returns the fixed color for the i-th data series. Indexes
// beyond the palette wrap around instead of going out of range.
func SeriesColor(i int) color.NRGBA {
	if i < 0 {
		i = -i
	}
	return okabeIto[i%len(okabeIto)]
}

// applyStyle pushes the shared font configuration onto a plot.
func applyStyle(p *plot.Plot, c style.Config) {
	p.Title.TextStyle.Font.Size = vg.Points(c.FontSize)
	p.Legend.TextStyle.Font.Size = vg.Points(c.FontSize)
	p.X.Label.TextStyle.Font.Size = vg.Points(c.LabelFontSize)
	p.Y.Label.TextStyle.Font.Size = vg.Points(c.LabelFontSize)
	p.X.Tick.Label.Font.Size = vg.Points(c.TickFontSize)
	p.Y.Tick.Label.Font.Size = vg.Points(c.TickFontSize)
}

func background(c style.Config) color.Color {
	if c.Transparent {
		return color.Transparent
	}
	return color.White
}
