package corrplot

// Output selects the quantity displayed in a correlation matrix. It is a
// closed enumeration; CorrelationMatrix rejects any other value up front
// instead of silently producing nothing.
type Output int

const (
	// Pearson is the raw Pearson correlation coefficient.
	Pearson Output = iota
	// Slope rescales the correlation by the ratio of standard deviations,
	// i.e. the OLS slope estimate derivable from r.
	Slope
	// PValue is the uncorrected two-tailed significance of each cell.
	PValue
	// PValueCorrected applies a multiple-testing correction across the
	// flattened matrix of p-values.
	PValueCorrected
)

func (o Output) valid() bool { return o >= Pearson && o <= PValueCorrected }

func (o Output) String() string {
	switch o {
	case Pearson:
		return "pearsonr"
	case Slope:
		return "slope"
	case PValue:
		return "p"
	case PValueCorrected:
		return "p_corrected"
	default:
		return "unknown"
	}
}
