package render

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/KaramelBytes/corrplot/internal/cmap"
	"github.com/KaramelBytes/corrplot/style"
)

// HeatmapOptions parameterizes a correlation-matrix heatmap.
type HeatmapOptions struct {
	// RowLabels and ColLabels annotate the axes; they must match the
	// matrix dimensions. Row 0 renders at the top, matching the matrix
	// orientation.
	RowLabels []string
	ColLabels []string
	// CBarLabel is the colorbar axis label.
	CBarLabel string
	// Midpoint is the data value pinned to the center of the diverging
	// colormap (0 for correlations and slopes, 0.05 for p-values).
	Midpoint float64
	// ColorMap supplies the diverging palette.
	ColorMap *cmap.Map
	// XLabelRotation rotates column tick labels, in degrees
	// counterclockwise; 90 is vertical.
	XLabelRotation float64
	// SaveAs is the output image path.
	SaveAs string
	// Style is the figure style to render with.
	Style style.Config
}

// matrixGrid adapts a dense matrix to plotter.GridXYZ with row 0 at the
// top of the figure.
type matrixGrid struct{ m *mat.Dense }

func (g matrixGrid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g matrixGrid) Z(c, r int) float64 {
	rows, _ := g.m.Dims()
	return g.m.At(rows-1-r, c)
}

func (g matrixGrid) X(c int) float64 { return float64(c) }
func (g matrixGrid) Y(r int) float64 { return float64(r) }

// Heatmap renders values as a colored matrix with axis tick labels at the
// cell centers and a labeled colorbar tile on the right, then writes the
// figure to opt.SaveAs.
func Heatmap(values *mat.Dense, opt HeatmapOptions) error {
	mu.Lock()
	defer mu.Unlock()

	rows, cols := values.Dims()
	if len(opt.RowLabels) != rows || len(opt.ColLabels) != cols {
		return fmt.Errorf("heatmap labels (%d×%d) do not match matrix (%d×%d)",
			len(opt.RowLabels), len(opt.ColLabels), rows, cols)
	}
	if opt.SaveAs == "" {
		return fmt.Errorf("heatmap requires an output path")
	}

	m := opt.ColorMap
	lo, hi := matExtrema(values)
	if lo == hi {
		// flat matrix; widen so the colormap still has a range
		lo, hi = lo-0.5, hi+0.5
	}
	m.SetMin(lo)
	m.SetMax(hi)
	m.SetMidpoint(opt.Midpoint)

	h := plotter.NewHeatMap(matrixGrid{values}, m.Palette(255))
	h.Min = lo
	h.Max = hi

	p := plot.New()
	applyStyle(p, opt.Style)
	p.Add(h)

	xticks := make([]plot.Tick, cols)
	for i, name := range opt.ColLabels {
		xticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	yticks := make([]plot.Tick, rows)
	for i, name := range opt.RowLabels {
		yticks[i] = plot.Tick{Value: float64(rows - 1 - i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xticks)
	p.Y.Tick.Marker = plot.ConstantTicks(yticks)
	p.X.Tick.Length = 0
	p.Y.Tick.Length = 0
	if opt.XLabelRotation != 0 {
		p.X.Tick.Label.Rotation = opt.XLabelRotation * math.Pi / 180
		if opt.XLabelRotation == 90 {
			// vertical labels end at the axis, centered under their tick
			p.X.Tick.Label.XAlign = text.XRight
			p.X.Tick.Label.YAlign = text.YCenter
		} else {
			// slanted labels start at their tick
			p.X.Tick.Label.XAlign = text.XLeft
			p.X.Tick.Label.YAlign = text.YTop
		}
	}

	bar := plot.New()
	applyStyle(bar, opt.Style)
	cb := &plotter.ColorBar{ColorMap: m}
	cb.Vertical = true
	bar.Add(cb)
	bar.HideX()
	bar.Y.Label.Text = opt.CBarLabel

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(opt.Style.FigureWidth)*vg.Inch, vg.Length(opt.Style.FigureHeight)*vg.Inch),
		vgimg.UseDPI(opt.Style.DPI),
		vgimg.UseBackgroundColor(background(opt.Style)),
	)
	dc := draw.New(c)
	barWidth := vg.Length(opt.Style.FigureWidth) * vg.Inch * 0.16
	p.Draw(draw.Crop(dc, 0, -barWidth, 0, 0))
	bar.Draw(draw.Crop(dc, vg.Length(opt.Style.FigureWidth)*vg.Inch-barWidth, 0, 0, 0))

	return writePNG(c, opt.SaveAs)
}

func matExtrema(m *mat.Dense) (lo, hi float64) {
	r, c := m.Dims()
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}
