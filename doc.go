// Package corrplot computes and visualizes correlation matrices and
// simple linear regressions over tabular behavioral and neuroimaging data
// loaded from delimited files.
//
// The two entry points are CorrelationMatrix, which builds a matrix of
// Pearson correlation coefficients (or slopes, or raw/corrected p-values)
// across the columns of one or two tables and optionally renders it as an
// annotated heatmap, and RegressionScatter, which fits ordinary least
// squares per dependent variable and renders scatter points, fitted
// lines, and confidence or prediction bands.
//
// Both functions are synchronous and stateless apart from the shared
// figure style (see the style package); they can be called from scripts
// or batch jobs without any setup beyond the input files.
package corrplot
