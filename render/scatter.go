package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/KaramelBytes/corrplot/style"
)

// Series is one dependent variable on a regression scatter plot: the raw
// observations, the fitted line over a dense grid, and optional interval
// bands aligned with that grid.
type Series struct {
	Name  string
	Color color.NRGBA

	X, Y []float64

	GridX, GridY []float64

	// ConfLo/ConfHi and PredLo/PredHi are nil when the corresponding band
	// was not requested.
	ConfLo, ConfHi []float64
	PredLo, PredHi []float64
}

// ScatterPlotOptions parameterizes the regression figure.
type ScatterPlotOptions struct {
	XLabel string
	SaveAs string
	Style  style.Config
}

const (
	confBandAlpha = 0.3
	predBandAlpha = 0.08
)

// Scatter renders the given series as raw points, fitted lines, and
// shaded bands, with a legend keyed by series name, and writes the figure
// to opt.SaveAs.
func Scatter(series []Series, opt ScatterPlotOptions) error {
	mu.Lock()
	defer mu.Unlock()

	if opt.SaveAs == "" {
		return fmt.Errorf("scatter requires an output path")
	}

	p := plot.New()
	applyStyle(p, opt.Style)
	p.X.Label.Text = opt.XLabel
	p.X.Tick.Length = 0
	p.Y.Tick.Length = 0

	for _, s := range series {
		if s.PredLo != nil {
			if err := addBand(p, s.GridX, s.PredLo, s.PredHi, fade(s.Color, predBandAlpha)); err != nil {
				return err
			}
		}
		if s.ConfLo != nil {
			if err := addBand(p, s.GridX, s.ConfLo, s.ConfHi, fade(s.Color, confBandAlpha)); err != nil {
				return err
			}
		}

		pts := make(plotter.XYs, len(s.X))
		for i := range s.X {
			pts[i] = plotter.XY{X: s.X[i], Y: s.Y[i]}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("scatter %q: %w", s.Name, err)
		}
		sc.GlyphStyle.Color = s.Color
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(3)

		fit := make(plotter.XYs, len(s.GridX))
		for i := range s.GridX {
			fit[i] = plotter.XY{X: s.GridX[i], Y: s.GridY[i]}
		}
		ln, err := plotter.NewLine(fit)
		if err != nil {
			return fmt.Errorf("fit line %q: %w", s.Name, err)
		}
		ln.LineStyle.Color = s.Color
		ln.LineStyle.Width = vg.Points(2)

		p.Add(sc, ln)
		p.Legend.Add(s.Name, ln)
	}
	p.Legend.Top = true

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(opt.Style.FigureWidth)*vg.Inch, vg.Length(opt.Style.FigureHeight)*vg.Inch),
		vgimg.UseDPI(opt.Style.DPI),
		vgimg.UseBackgroundColor(background(opt.Style)),
	)
	p.Draw(draw.New(c))

	return writePNG(c, opt.SaveAs)
}

// addBand fills the area between lower and upper along grid.
func addBand(p *plot.Plot, grid, lower, upper []float64, fill color.Color) error {
	if len(lower) != len(grid) || len(upper) != len(grid) {
		return fmt.Errorf("band bounds do not match grid length %d", len(grid))
	}
	ring := make(plotter.XYs, 0, 2*len(grid))
	for i := range grid {
		ring = append(ring, plotter.XY{X: grid[i], Y: lower[i]})
	}
	for i := len(grid) - 1; i >= 0; i-- {
		ring = append(ring, plotter.XY{X: grid[i], Y: upper[i]})
	}
	poly, err := plotter.NewPolygon(ring)
	if err != nil {
		return fmt.Errorf("band polygon: %w", err)
	}
	poly.Color = fill
	poly.LineStyle.Width = 0
	poly.LineStyle.Color = color.Transparent
	p.Add(poly)
	return nil
}

// fade scales the color's alpha for band fills.
func fade(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(alpha * 255)
	return c
}
