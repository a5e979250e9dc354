package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rawP = []float64{0.01, 0.04, 0.03, 0.005}

func TestAdjustBonferroni(t *testing.T) {
	adj, err := Adjust(rawP, Bonferroni, 0.05)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.04, 0.16, 0.12, 0.02}, adj, 1e-12)
}

func TestAdjustHolm(t *testing.T) {
	adj, err := Adjust(rawP, Holm, 0.05)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.03, 0.06, 0.06, 0.02}, adj, 1e-12)
}

func TestAdjustFDRBH(t *testing.T) {
	adj, err := Adjust(rawP, FDRBH, 0.05)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.02, 0.04, 0.04, 0.02}, adj, 1e-12)
}

func TestAdjustFDRBY(t *testing.T) {
	// BY is BH scaled by the harmonic sum 1 + 1/2 + 1/3 + 1/4.
	adj, err := Adjust(rawP, FDRBY, 0.05)
	require.NoError(t, err)
	h := 1.0 + 0.5 + 1.0/3.0 + 0.25
	assert.InDeltaSlice(t, []float64{0.02 * h, 0.04 * h, 0.04 * h, 0.02 * h}, adj, 1e-12)
}

func TestAdjustClipsToOne(t *testing.T) {
	adj, err := Adjust([]float64{0.9, 0.8, 0.5}, Bonferroni, 0.05)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, adj)
}

func TestAdjustFWERNeverDecreases(t *testing.T) {
	p := []float64{0.001, 0.2, 0.04, 0.9, 0.5, 0.06}
	for _, m := range []Method{Bonferroni, Holm} {
		adj, err := Adjust(p, m, 0.05)
		require.NoError(t, err)
		for i := range p {
			assert.GreaterOrEqual(t, adj[i], p[i], "method=%s i=%d", m, i)
		}
	}
}

func TestAdjustUnknownMethod(t *testing.T) {
	_, err := Adjust(rawP, Method("sidak"), 0.05)
	var inv *InvalidArgumentError
	require.ErrorAs(t, err, &inv)
}

func TestAdjustBadAlpha(t *testing.T) {
	for _, a := range []float64{0, 1, -0.1, 1.5} {
		_, err := Adjust(rawP, Bonferroni, a)
		var inv *InvalidArgumentError
		require.ErrorAs(t, err, &inv, "alpha=%v", a)
	}
}

func TestAdjustEmpty(t *testing.T) {
	adj, err := Adjust(nil, Holm, 0.05)
	require.NoError(t, err)
	assert.Empty(t, adj)
}

func TestMethodIsFDR(t *testing.T) {
	assert.True(t, FDRBH.IsFDR())
	assert.True(t, FDRBY.IsFDR())
	assert.False(t, Bonferroni.IsFDR())
	assert.False(t, Holm.IsFDR())
}
