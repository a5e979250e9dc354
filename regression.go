package corrplot

import (
	"log/slog"

	"github.com/KaramelBytes/corrplot/render"
	"github.com/KaramelBytes/corrplot/stats"
	"github.com/KaramelBytes/corrplot/style"
)

// bandAlpha is the significance level for confidence and prediction
// bands.
const bandAlpha = 0.05

// gridPoints is the number of evenly spaced x values the fitted line and
// bands are evaluated at.
const gridPoints = 50

// ScatterOptions parameterizes RegressionScatter.
type ScatterOptions struct {
	// YPath optionally names a second table concatenated column-wise onto
	// the first, as in MatrixOptions.
	YPath string

	// Rows restricts the combined table to these index labels, in order.
	Rows []string

	// Normalize divides the independent variable and every dependent
	// variable by its column mean before fitting.
	Normalize bool

	// ConfidenceBands overlays the interval around the mean prediction.
	ConfidenceBands bool

	// PredictionBands overlays the wider interval for individual
	// observations.
	PredictionBands bool

	// SaveAs is the figure output path. When empty no figure is written;
	// the data is still loaded and every fit is still computed, so the
	// call validates its inputs either way.
	SaveAs string

	// ApplyStyle installs the default shared style if none has been
	// applied yet.
	ApplyStyle bool
}

// DefaultScatterOptions returns the standard plotter configuration:
// normalization on, no bands, shared style applied.
func DefaultScatterOptions() ScatterOptions {
	return ScatterOptions{Normalize: true, ApplyStyle: true}
}

// RegressionScatter fits ordinary least squares of each dependent
// variable in yNames on the independent variable xName and renders the
// raw observations, fitted lines, and any requested bands, one fixed
// palette color per dependent variable in list order.
func RegressionScatter(xPath, xName string, yNames []string, opt ScatterOptions) error {
	if len(yNames) == 0 {
		return &InvalidArgumentError{Field: "y names", Reason: "need at least one dependent variable"}
	}
	if opt.ApplyStyle {
		style.Ensure()
	}

	logger := slog.Default()
	logger.Info("fitting regressions",
		"x_path", xPath, "x", xName, "n_y", len(yNames), "save_as", opt.SaveAs)

	tbl, _, _, err := loadCombined(xPath, opt.YPath, opt.Rows)
	if err != nil {
		return err
	}
	if err := tbl.Require(append([]string{xName}, yNames...)...); err != nil {
		return err
	}
	if opt.Normalize {
		if err := tbl.Normalize(union([]string{xName}, yNames)); err != nil {
			return err
		}
	}

	x, err := tbl.Column(xName)
	if err != nil {
		return err
	}

	series := make([]render.Series, 0, len(yNames))
	for i, yName := range yNames {
		y, err := tbl.Column(yName)
		if err != nil {
			return err
		}
		fit, err := stats.FitOLS(x, y)
		if err != nil {
			return err
		}
		gridX, gridY := fit.PredictGrid(gridPoints)

		s := render.Series{
			Name:  yName,
			Color: render.SeriesColor(i),
			X:     x,
			Y:     y,
			GridX: gridX,
			GridY: gridY,
		}
		if opt.ConfidenceBands {
			lo, hi, err := fit.ConfidenceBand(gridX, bandAlpha)
			if err != nil {
				return err
			}
			s.ConfLo, s.ConfHi = lo, hi
		}
		if opt.PredictionBands {
			lo, hi, err := fit.PredictionBand(gridX, bandAlpha)
			if err != nil {
				return err
			}
			s.PredLo, s.PredHi = lo, hi
		}
		series = append(series, s)
	}

	if opt.SaveAs == "" {
		return nil
	}
	if err := render.Scatter(series, render.ScatterPlotOptions{
		XLabel: xName,
		SaveAs: opt.SaveAs,
		Style:  style.Current(),
	}); err != nil {
		return err
	}
	logger.Info("regression figure written", "path", opt.SaveAs)
	return nil
}
