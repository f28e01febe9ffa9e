// Package analysis summarizes per-frame series recorded from a run.
//
//   - [Summarize]: mean, spread and range of a series
//   - [PowerSpectrum]: magnitude spectrum of a series with its mean removed
//   - [DominantPeriod]: the strongest repeating period, in seconds
//
// Connection counts of the particle field drift without a period; the
// starfield and shooting stars repeat with their layer periods and fall
// durations, which shows up as a clear spectral peak:
//
//	period, ok := analysis.DominantPeriod(series, 60)
package analysis
