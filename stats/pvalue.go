// Package stats implements the statistical core of corrplot: significance
// of Pearson correlation coefficients, multiple-hypothesis-testing
// correction, and ordinary least squares fits with confidence and
// prediction bands.
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mathext"
)

// PFromR returns the two-tailed p-value for a Pearson correlation
// coefficient r observed on n samples, under the null hypothesis that the
// true correlation is zero.
//
// r is clamped to [-1, 1] before use. A perfect correlation (|r| == 1)
// returns 0 exactly. For everything else the p-value is the regularized
// incomplete beta function Ibeta(df/2, 1/2; df/(df+t²)) with df = n-2 and
// t² = r²·df/(1-r²), which is the two-sided Student-t survival function in
// closed form.
func PFromR(r float64, n int) (float64, error) {
	df := float64(n - 2)
	if df < 1 {
		return 0, &InvalidArgumentError{
			Field:  "n",
			Reason: fmt.Sprintf("need at least 3 samples for a correlation test, got %d", n),
		}
	}
	r = math.Max(math.Min(r, 1.0), -1.0)
	if math.Abs(r) == 1.0 {
		return 0, nil
	}
	t2 := r * r * (df / ((1.0 - r) * (1.0 + r)))
	return mathext.RegIncBeta(0.5*df, 0.5, df/(df+t2)), nil
}
