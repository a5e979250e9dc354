package corrplot

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/corrplot/dataset"
	"github.com/KaramelBytes/corrplot/stats"
)

func writeTable(t *testing.T, name string, rows []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(rows, "\n")+"\n"), 0o644))
	return path
}

func computeOnly() MatrixOptions {
	opt := DefaultMatrixOptions()
	opt.ApplyStyle = false
	return opt
}

func TestCorrelationMatrixSelfDiagonal(t *testing.T) {
	path := writeTable(t, "t.csv", []string{
		"subject,A,B,C",
		"s1,1,5,2",
		"s2,2,3,9",
		"s3,3,8,4",
		"s4,4,1,7",
		"s5,5,9,1",
	})
	m, err := CorrelationMatrix(path, computeOnly())
	require.NoError(t, err)

	r, c := m.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 3, c)
	assert.Equal(t, []string{"A", "B", "C"}, m.RowNames())
	assert.Equal(t, []string{"A", "B", "C"}, m.ColNames())
	for i := 0; i < 3; i++ {
		assert.Equal(t, 1.0, m.At(i, i), "diagonal %d", i)
	}
	// symmetric before subsetting
	assert.Equal(t, m.At(0, 1), m.At(1, 0))
}

func TestCorrelationMatrixTwoIdenticalSources(t *testing.T) {
	rows := []string{
		"subject,A,B",
		"s1,1,2",
		"s2,2,4",
		"s3,3,6",
		"s4,4,8",
	}
	xPath := writeTable(t, "x.csv", rows)
	yPath := writeTable(t, "y.csv", []string{
		"subject,A2,B2",
		"s1,1,2",
		"s2,2,4",
		"s3,3,6",
		"s4,4,8",
	})

	opt := computeOnly()
	opt.YPath = yPath
	opt.XCols = []string{"A", "B"}
	opt.YCols = []string{"A2", "B2"}
	m, err := CorrelationMatrix(xPath, opt)
	require.NoError(t, err)

	r, c := m.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, c)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, 1.0, m.At(i, j), 1e-12, "cell %d,%d", i, j)
		}
	}
}

func TestCorrelationMatrixSlope(t *testing.T) {
	path := writeTable(t, "t.csv", []string{
		"subject,A,B",
		"s1,1,2",
		"s2,2,4",
		"s3,3,6",
		"s4,4,8",
	})
	opt := computeOnly()
	opt.Output = Slope
	m, err := CorrelationMatrix(path, opt)
	require.NoError(t, err)

	// B = 2A exactly: entry (row A, col B) = r·sd(B)/sd(A) = 2.
	assert.InDelta(t, 1.0, m.At(0, 0), 1e-12)
	assert.InDelta(t, 2.0, m.At(0, 1), 1e-12)
	assert.InDelta(t, 0.5, m.At(1, 0), 1e-12)
	assert.InDelta(t, 1.0, m.At(1, 1), 1e-12)
}

func TestCorrelationMatrixPValues(t *testing.T) {
	path := writeTable(t, "t.csv", []string{
		"subject,A,B",
		"s1,1,2",
		"s2,2,4",
		"s3,3,6",
		"s4,4,8",
		"s5,5,10",
	})
	opt := computeOnly()
	opt.Output = PValue
	m, err := CorrelationMatrix(path, opt)
	require.NoError(t, err)

	// perfectly correlated synthetic columns are maximally significant
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.InDelta(t, 0.0, m.At(i, j), 1e-12, "cell %d,%d", i, j)
		}
	}
}

var noisyRows = []string{
	"subject,A,B,C",
	"s1,1.0,2.1,5.0",
	"s2,2.0,1.7,4.1",
	"s3,3.0,4.2,0.9",
	"s4,4.0,3.6,8.4",
	"s5,5.0,6.1,2.2",
	"s6,6.0,5.2,7.3",
	"s7,7.0,8.4,3.8",
	"s8,8.0,7.1,6.6",
}

func TestCorrectedNeverBelowUncorrected(t *testing.T) {
	for _, method := range []stats.Method{stats.Bonferroni, stats.Holm} {
		path := writeTable(t, "t.csv", noisyRows)

		opt := computeOnly()
		opt.Output = PValue
		raw, err := CorrelationMatrix(path, opt)
		require.NoError(t, err)

		opt.Output = PValueCorrected
		opt.Correction = method
		adj, err := CorrelationMatrix(path, opt)
		require.NoError(t, err)

		r, c := raw.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				assert.GreaterOrEqual(t, adj.At(i, j), raw.At(i, j),
					"method=%s cell %d,%d", method, i, j)
			}
		}
	}
}

func TestCorrectionFamilyCoversWholeTable(t *testing.T) {
	// restricting the displayed variables must not shrink the family of
	// tests the correction accounts for
	path := writeTable(t, "t.csv", noisyRows)

	opt := computeOnly()
	opt.XCols = []string{"A", "B"}
	opt.YCols = []string{"A", "B"}
	opt.Output = PValue
	raw, err := CorrelationMatrix(path, opt)
	require.NoError(t, err)

	opt.Output = PValueCorrected
	opt.Correction = stats.Bonferroni
	adj, err := CorrelationMatrix(path, opt)
	require.NoError(t, err)

	// three table columns make nine pairwise tests
	assert.InDelta(t, math.Min(1, 9*raw.At(0, 1)), adj.At(0, 1), 1e-12)
}

func TestCorrelationMatrixRowSubset(t *testing.T) {
	path := writeTable(t, "t.csv", []string{
		"subject,A,B",
		"s1,1,9",
		"s2,2,4",
		"s3,3,6",
		"s4,4,8",
		"s5,100,-3",
	})
	opt := computeOnly()
	opt.Rows = []string{"s2", "s3", "s4"}
	m, err := CorrelationMatrix(path, opt)
	require.NoError(t, err)
	// on the selected rows B = 2A exactly
	assert.InDelta(t, 1.0, m.At(0, 1), 1e-12)
}

func TestCorrelationMatrixRowSubsetMissing(t *testing.T) {
	path := writeTable(t, "t.csv", []string{"subject,A,B", "s1,1,2", "s2,2,5"})
	opt := computeOnly()
	opt.Rows = []string{"s1", "ghost"}
	_, err := CorrelationMatrix(path, opt)
	var missing *dataset.MissingKeyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "row", missing.Kind)
}

func TestCorrelationMatrixMissingColumn(t *testing.T) {
	path := writeTable(t, "t.csv", []string{"subject,A", "s1,1", "s2,2", "s3,3"})
	opt := computeOnly()
	opt.XCols = []string{"A", "ghost"}
	_, err := CorrelationMatrix(path, opt)
	var missing *dataset.MissingKeyError
	require.ErrorAs(t, err, &missing)
}

func TestCorrelationMatrixUnknownOutput(t *testing.T) {
	opt := computeOnly()
	opt.Output = Output(42)
	_, err := CorrelationMatrix("unused.csv", opt)
	var inv *InvalidArgumentError
	require.ErrorAs(t, err, &inv)
}

func TestCorrelationMatrixUnknownCorrection(t *testing.T) {
	opt := computeOnly()
	opt.Output = PValueCorrected
	opt.Correction = stats.Method("sidak")
	_, err := CorrelationMatrix("unused.csv", opt)
	var inv *InvalidArgumentError
	require.ErrorAs(t, err, &inv)
}

func TestCorrelationMatrixZeroVariance(t *testing.T) {
	path := writeTable(t, "t.csv", []string{
		"subject,A,B",
		"s1,1,7",
		"s2,2,7",
		"s3,3,7",
	})
	_, err := CorrelationMatrix(path, computeOnly())
	var deg *dataset.DegenerateColumnError
	require.ErrorAs(t, err, &deg)
	assert.Equal(t, "B", deg.Column)
}

func TestCorrelationMatrixNormalization(t *testing.T) {
	path := writeTable(t, "t.csv", []string{
		"subject,A,B",
		"s1,2,4",
		"s2,4,8",
		"s3,6,12",
	})
	opt := computeOnly()
	opt.XNormalize = true
	opt.YNormalize = true
	opt.Output = Slope
	m, err := CorrelationMatrix(path, opt)
	require.NoError(t, err)
	// normalization rescales both columns to the same mean, so the slope
	// between them becomes 1
	assert.InDelta(t, 1.0, m.At(0, 1), 1e-12)
}

func TestCorrelationMatrixRendersHeatmap(t *testing.T) {
	path := writeTable(t, "t.csv", noisyRows)
	out := filepath.Join(t.TempDir(), "corr.png")

	opt := DefaultMatrixOptions()
	opt.SaveAs = out
	opt.XDict = map[string]string{"A": "Amygdala"}
	m, err := CorrelationMatrix(path, opt)
	require.NoError(t, err)
	require.NotNil(t, m)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestOutputString(t *testing.T) {
	assert.Equal(t, "pearsonr", Pearson.String())
	assert.Equal(t, "slope", Slope.String())
	assert.Equal(t, "p", PValue.String())
	assert.Equal(t, "p_corrected", PValueCorrected.String())
}
