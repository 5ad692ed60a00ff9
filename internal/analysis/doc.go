// Package analysis summarizes decomposition results along the parameter
// axis.
//
//   - [Sweep]: attractor count sampled at evenly spaced parameter values
//   - [Bands]: the parameter intervals sharing one attractor count
//   - [Settle]: numeric integration of a one-variable flow, used to check
//     that a trajectory ends inside a reported attractor
//
// # Example
//
//	points := analysis.Sweep(result.Counts, 0, 10, 200)
//	for _, b := range analysis.Bands(sv, result.Counts) {
//	    fmt.Println(b.Attractors, b.Colors, b.Share)
//	}
package analysis
