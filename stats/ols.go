package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// FitResult holds an ordinary least squares fit of y on x with an
// intercept term, plus the residual statistics needed for interval bands.
type FitResult struct {
	Intercept float64
	Slope     float64

	// X and Y are the observed samples the model was fitted on.
	X []float64
	Y []float64
	// Residuals are y - ŷ at each observation.
	Residuals []float64

	// N is the sample size, DF the residual degrees of freedom (N-2) and
	// MSE the residual mean squared error (RSS/DF).
	N   int
	DF  int
	MSE float64

	meanX float64
	sxx   float64
}

// FitOLS fits y = intercept + slope·x by least squares. It requires at
// least three paired observations and a predictor with nonzero variance.
func FitOLS(x, y []float64) (*FitResult, error) {
	if len(x) != len(y) {
		return nil, &InvalidArgumentError{
			Field:  "x/y",
			Reason: fmt.Sprintf("length mismatch: %d vs %d", len(x), len(y)),
		}
	}
	n := len(x)
	if n < 3 {
		return nil, &InvalidArgumentError{
			Field:  "x",
			Reason: fmt.Sprintf("need at least 3 observations to fit with residual variance, got %d", n),
		}
	}

	meanX := stat.Mean(x, nil)
	sxx := 0.0
	for _, v := range x {
		d := v - meanX
		sxx += d * d
	}
	if sxx == 0 {
		return nil, &DegenerateError{Input: "x", Reason: "zero variance, slope undefined"}
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)

	res := make([]float64, n)
	rss := 0.0
	for i := range x {
		res[i] = y[i] - (alpha + beta*x[i])
		rss += res[i] * res[i]
	}
	df := n - 2

	return &FitResult{
		Intercept: alpha,
		Slope:     beta,
		X:         append([]float64(nil), x...),
		Y:         append([]float64(nil), y...),
		Residuals: res,
		N:         n,
		DF:        df,
		MSE:       rss / float64(df),
		meanX:     meanX,
		sxx:       sxx,
	}, nil
}

// Predict returns the fitted mean response at x0.
func (f *FitResult) Predict(x0 float64) float64 {
	return f.Intercept + f.Slope*x0
}

// PredictGrid returns k evenly spaced x values spanning the observed x
// range together with the predicted y at each. k values below 2 are
// treated as 2.
func (f *FitResult) PredictGrid(k int) (xs, ys []float64) {
	if k < 2 {
		k = 2
	}
	lo, hi := f.X[0], f.X[0]
	for _, v := range f.X {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	xs = make([]float64, k)
	ys = make([]float64, k)
	step := (hi - lo) / float64(k-1)
	for i := range xs {
		xs[i] = lo + float64(i)*step
		ys[i] = f.Predict(xs[i])
	}
	return xs, ys
}

// ConfidenceBand returns the lower and upper bounds of the two-sided
// confidence interval for the mean prediction at each grid point, at
// significance level alpha.
func (f *FitResult) ConfidenceBand(grid []float64, alpha float64) (lower, upper []float64, err error) {
	return f.band(grid, alpha, false)
}

// PredictionBand returns the wider interval for an individual observation
// at each grid point, which also accounts for the residual variance of a
// single draw.
func (f *FitResult) PredictionBand(grid []float64, alpha float64) (lower, upper []float64, err error) {
	return f.band(grid, alpha, true)
}

func (f *FitResult) band(grid []float64, alpha float64, individual bool) (lower, upper []float64, err error) {
	if !(alpha > 0 && alpha < 1) {
		return nil, nil, &InvalidArgumentError{
			Field:  "alpha",
			Reason: fmt.Sprintf("significance level must be in (0, 1), got %g", alpha),
		}
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(f.DF)}
	crit := t.Quantile(1 - alpha/2)

	lower = make([]float64, len(grid))
	upper = make([]float64, len(grid))
	for i, x0 := range grid {
		v := 1.0/float64(f.N) + (x0-f.meanX)*(x0-f.meanX)/f.sxx
		if individual {
			v += 1.0
		}
		se := math.Sqrt(f.MSE * v)
		mean := f.Predict(x0)
		lower[i] = mean - crit*se
		upper[i] = mean + crit*se
	}
	return lower, upper, nil
}
