// Package analysis characterizes the long-run behavior of a generation
// history:
//
//   - [DetectCycle]: first generation that repeats, and the cycle length
//   - [PowerSpectrum]: spectrum of a scalar series such as density
//   - [DominantPeriod]: strongest oscillation period in a series
//
// # Classification
//
// Cycle detection separates fixed points (period 1) and oscillators from
// histories that never repeat within the observed window:
//
//	start, period, ok := analysis.DetectCycle(history)
//	if ok && period == 1 {
//	    // reached a fixed point at generation start
//	}
package analysis
