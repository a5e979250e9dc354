package corrplot

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/corrplot/dataset"
	"github.com/KaramelBytes/corrplot/internal/cmap"
	"github.com/KaramelBytes/corrplot/render"
	"github.com/KaramelBytes/corrplot/stats"
	"github.com/KaramelBytes/corrplot/style"
)

// MatrixOptions parameterizes CorrelationMatrix.
type MatrixOptions struct {
	// YPath optionally names a second table whose columns are concatenated
	// onto the first; its row index must align with the first table's.
	YPath string

	// XCols and YCols restrict which columns count as x and y variables.
	// Empty means all columns of the respective source (the first table
	// for XCols; the second table when YPath is set, otherwise the first).
	XCols []string
	YCols []string

	// XDict and YDict rename variables on the axis tick labels only; the
	// computation always runs on the original column names.
	XDict map[string]string
	YDict map[string]string

	// XNormalize and YNormalize divide each selected column by its mean
	// before any statistics are computed.
	XNormalize bool
	YNormalize bool

	// Rows restricts the combined table to these index labels, in order.
	Rows []string

	// Output selects the displayed quantity.
	Output Output

	// Correction and ErrorRate apply only when Output is PValueCorrected.
	Correction stats.Method
	ErrorRate  float64

	// SaveAs is the figure output path; empty computes the matrix without
	// rendering anything.
	SaveAs string

	// XLabelRotation rotates the column tick labels, in degrees; 90 is
	// vertical.
	XLabelRotation float64

	// ApplyStyle installs the default shared style if none has been
	// applied yet.
	ApplyStyle bool
}

// DefaultMatrixOptions returns the standard builder configuration:
// Pearson output, Benjamini-Hochberg correction at rate 0.05, vertical
// column labels, shared style applied.
func DefaultMatrixOptions() MatrixOptions {
	return MatrixOptions{
		Output:         Pearson,
		Correction:     stats.FDRBH,
		ErrorRate:      0.05,
		XLabelRotation: 90,
		ApplyStyle:     true,
	}
}

// CorrelationMatrix loads one or two tables, computes the pairwise
// statistic selected by opt.Output over the chosen columns, and returns
// it with rows keyed by y variables and columns by x variables. When
// opt.SaveAs is set it also renders the matrix as an annotated heatmap
// with a diverging colormap centered at 0 for correlations and slopes and
// at 0.05 for p-values.
//
// The matrix is always returned, whether or not a figure is written.
func CorrelationMatrix(xPath string, opt MatrixOptions) (*Matrix, error) {
	if !opt.Output.valid() {
		return nil, &InvalidArgumentError{
			Field:  "output",
			Reason: fmt.Sprintf("unrecognized output mode %d", int(opt.Output)),
		}
	}
	correction := opt.Correction
	if correction == "" {
		correction = stats.FDRBH
	}
	er := opt.ErrorRate
	if er == 0 {
		er = 0.05
	}
	if opt.Output == PValueCorrected {
		if !correction.Valid() {
			return nil, &InvalidArgumentError{
				Field:  "correction",
				Reason: fmt.Sprintf("unsupported method %q", string(correction)),
			}
		}
		if !(er > 0 && er < 1) {
			return nil, &InvalidArgumentError{
				Field:  "error rate",
				Reason: fmt.Sprintf("must be in (0, 1), got %g", er),
			}
		}
	}
	if opt.ApplyStyle {
		style.Ensure()
	}

	logger := slog.Default()
	logger.Info("building correlation matrix",
		"x_path", xPath, "y_path", opt.YPath, "output", opt.Output.String())

	tbl, xDefault, yDefault, err := loadCombined(xPath, opt.YPath, opt.Rows)
	if err != nil {
		return nil, err
	}
	xCols := opt.XCols
	if len(xCols) == 0 {
		xCols = xDefault
	}
	yCols := opt.YCols
	if len(yCols) == 0 {
		yCols = yDefault
	}
	if err := tbl.Require(append(append([]string(nil), xCols...), yCols...)...); err != nil {
		return nil, err
	}

	if opt.XNormalize {
		if err := tbl.Normalize(xCols); err != nil {
			return nil, err
		}
	}
	if opt.YNormalize {
		if err := tbl.Normalize(yCols); err != nil {
			return nil, err
		}
	}

	vars := union(xCols, yCols)
	if opt.Output == PValueCorrected {
		// the correction family is every pairwise test in the combined
		// table, not just the selected variables, so the full column set
		// enters the matrix before subsetting
		vars = union(tbl.Columns(), vars)
	}
	n := tbl.NumRows()

	cols := make(map[string][]float64, len(vars))
	sds := make(map[string]float64, len(vars))
	for _, v := range vars {
		c, err := tbl.Column(v)
		if err != nil {
			return nil, err
		}
		sd := stat.StdDev(c, nil)
		if sd == 0 || math.IsNaN(sd) {
			return nil, &dataset.DegenerateColumnError{
				Column: v,
				Reason: "zero or undefined variance under correlation",
			}
		}
		cols[v] = c
		sds[v] = sd
	}

	// Full symmetric Pearson matrix; the output is subset to
	// (yCols × xCols) only after any transform.
	full := mat.NewDense(len(vars), len(vars), nil)
	for i := range vars {
		full.Set(i, i, 1.0)
		for j := i + 1; j < len(vars); j++ {
			r := stat.Correlation(cols[vars[i]], cols[vars[j]], nil)
			r = math.Max(math.Min(r, 1.0), -1.0)
			full.Set(i, j, r)
			full.Set(j, i, r)
		}
	}

	switch opt.Output {
	case Pearson:
		// full already holds r
	case Slope:
		slopes := mat.NewDense(len(vars), len(vars), nil)
		for i := range vars {
			for j := range vars {
				slopes.Set(i, j, full.At(i, j)*sds[vars[j]]/sds[vars[i]])
			}
		}
		full = slopes
	case PValue, PValueCorrected:
		for i := range vars {
			for j := range vars {
				p, err := stats.PFromR(full.At(i, j), n)
				if err != nil {
					return nil, err
				}
				full.Set(i, j, p)
			}
		}
		if opt.Output == PValueCorrected {
			flat := make([]float64, 0, len(vars)*len(vars))
			for i := range vars {
				for j := range vars {
					flat = append(flat, full.At(i, j))
				}
			}
			adj, err := stats.Adjust(flat, correction, er)
			if err != nil {
				return nil, err
			}
			for i := range vars {
				for j := range vars {
					full.Set(i, j, adj[i*len(vars)+j])
				}
			}
		}
	}

	pos := make(map[string]int, len(vars))
	for i, v := range vars {
		pos[v] = i
	}
	out := newMatrix(yCols, xCols)
	for i, yv := range yCols {
		for j, xv := range xCols {
			out.data.Set(i, j, full.At(pos[yv], pos[xv]))
		}
	}

	if opt.SaveAs != "" {
		midpoint := 0.0
		cm := cmap.PiYG()
		label := "Pearson's r"
		switch opt.Output {
		case Slope:
			label = "Slope"
		case PValue:
			midpoint, cm = 0.05, cmap.BuPuR()
			label = "p-value (uncorrected)"
		case PValueCorrected:
			midpoint, cm = 0.05, cmap.BuPuR()
			if correction.IsFDR() {
				label = fmt.Sprintf("p-value (FDR=%g corrected)", er)
			} else {
				label = fmt.Sprintf("p-value (FWER=%g corrected)", er)
			}
		}
		err := render.Heatmap(out.Dense(), render.HeatmapOptions{
			RowLabels:      TranslateLabels(yCols, opt.YDict),
			ColLabels:      TranslateLabels(xCols, opt.XDict),
			CBarLabel:      label,
			Midpoint:       midpoint,
			ColorMap:       cm,
			XLabelRotation: opt.XLabelRotation,
			SaveAs:         opt.SaveAs,
			Style:          style.Current(),
		})
		if err != nil {
			return nil, err
		}
		logger.Info("correlation matrix figure written", "path", opt.SaveAs)
	}
	return out, nil
}

// loadCombined loads the x table, concatenates the optional y table, and
// applies the row subset. It returns the combined table plus the default
// x and y column lists (all columns of the respective source).
func loadCombined(xPath, yPath string, rows []string) (tbl *dataset.Table, xCols, yCols []string, err error) {
	tx, err := dataset.Load(xPath, dataset.Options{})
	if err != nil {
		return nil, nil, nil, err
	}
	xCols = tx.Columns()
	tbl = tx
	yCols = xCols
	if yPath != "" {
		ty, err := dataset.Load(yPath, dataset.Options{})
		if err != nil {
			return nil, nil, nil, err
		}
		yCols = ty.Columns()
		tbl, err = dataset.Concat(tx, ty)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	if len(rows) > 0 {
		if err := tbl.SelectRows(rows); err != nil {
			return nil, nil, nil, err
		}
	}
	return tbl, xCols, yCols, nil
}

// union concatenates a and b preserving order, dropping duplicates.
func union(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string(nil), a...), b...) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
