package corrplot

// TranslateLabels maps each name through dict, for axis tick display.
// Names absent from dict pass through unchanged, so the result always has
// the same length and order as names and tick labels stay aligned with
// matrix cells.
func TranslateLabels(names []string, dict map[string]string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		if t, ok := dict[n]; ok {
			out[i] = t
		} else {
			out[i] = n
		}
	}
	return out
}
