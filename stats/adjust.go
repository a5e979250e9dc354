package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Method names a multiple-testing correction procedure. The string values
// follow the statsmodels vocabulary so that figures produced here label
// themselves the same way as their Python counterparts.
type Method string

const (
	// Bonferroni controls the family-wise error rate by multiplying every
	// p-value by the number of tests.
	Bonferroni Method = "bonferroni"
	// Holm is the step-down FWER procedure; uniformly more powerful than
	// Bonferroni while keeping the same guarantee.
	Holm Method = "holm"
	// FDRBH is the Benjamini-Hochberg step-up false discovery rate
	// procedure for independent or positively dependent tests.
	FDRBH Method = "fdr_bh"
	// FDRBY is the Benjamini-Yekutieli procedure, valid under arbitrary
	// dependence.
	FDRBY Method = "fdr_by"
)

// IsFDR reports whether the method controls the false discovery rate
// rather than the family-wise error rate. Callers use this to pick the
// colorbar label wording.
func (m Method) IsFDR() bool { return strings.HasPrefix(string(m), "fdr_") }

// Valid reports whether the method is one of the supported corrections.
func (m Method) Valid() bool {
	switch m {
	case Bonferroni, Holm, FDRBH, FDRBY:
		return true
	}
	return false
}

// Adjust applies the named multiple-testing correction to a flat slice of
// p-values and returns the adjusted p-values in the same order. alpha is
// the target error rate (FWER or FDR depending on the method) and must lie
// in (0, 1); the adjusted values themselves do not depend on it for the
// supported methods, it is validated so that threshold-style callers fail
// early on nonsense rates.
//
// Adjusted values are clipped to [0, 1]. FWER methods never decrease a
// p-value.
func Adjust(p []float64, method Method, alpha float64) ([]float64, error) {
	if !method.Valid() {
		return nil, &InvalidArgumentError{
			Field:  "method",
			Reason: fmt.Sprintf("unsupported correction %q", string(method)),
		}
	}
	if !(alpha > 0 && alpha < 1) {
		return nil, &InvalidArgumentError{
			Field:  "alpha",
			Reason: fmt.Sprintf("error rate must be in (0, 1), got %g", alpha),
		}
	}
	m := len(p)
	if m == 0 {
		return []float64{}, nil
	}

	adj := make([]float64, m)
	switch method {
	case Bonferroni:
		for i, v := range p {
			adj[i] = clip01(v * float64(m))
		}
	case Holm:
		order := ascending(p)
		running := 0.0
		for rank, idx := range order {
			v := p[idx] * float64(m-rank)
			if v > running {
				running = v
			}
			adj[idx] = clip01(running)
		}
	case FDRBH, FDRBY:
		scale := 1.0
		if method == FDRBY {
			scale = harmonic(m)
		}
		order := ascending(p)
		running := math.Inf(1)
		for rank := m - 1; rank >= 0; rank-- {
			idx := order[rank]
			v := p[idx] * scale * float64(m) / float64(rank+1)
			if v < running {
				running = v
			}
			adj[idx] = clip01(running)
		}
	}
	return adj, nil
}

// ascending returns the permutation that sorts p ascending, with ties kept
// in input order so results are deterministic.
func ascending(p []float64) []int {
	order := make([]int, len(p))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return p[order[a]] < p[order[b]] })
	return order
}

func harmonic(m int) float64 {
	s := 0.0
	for k := 1; k <= m; k++ {
		s += 1.0 / float64(k)
	}
	return s
}

func clip01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
