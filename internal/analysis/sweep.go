package analysis

import "github.com/san-kum/paramsynth/internal/params/interval"

// SweepPoint is the attractor count at one parameter value. Zero means the
// value lies on a boundary that no count level covers.
type SweepPoint struct {
	Param      float64
	Attractors int
}

// Sweep samples counts (counts[i] = colors with exactly i+1 attractors) at
// steps evenly spaced values from low to high inclusive.
func Sweep(counts []interval.Set, low, high float64, steps int) []SweepPoint {
	if steps <= 1 {
		steps = 2 // Prevent division by zero
	}
	step := (high - low) / float64(steps-1)

	points := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		p := low + float64(i)*step
		points = append(points, SweepPoint{Param: p, Attractors: CountAt(counts, p)})
	}
	return points
}

// CountAt returns the number of attractors at p, or 0.
func CountAt(counts []interval.Set, p float64) int {
	for i, colors := range counts {
		if colors.Contains(p) {
			return i + 1
		}
	}
	return 0
}

// Band is one count level: the colors with exactly Attractors attractors and
// their share of the parameter domain.
type Band struct {
	Attractors int
	Colors     interval.Set
	Volume     float64
	Share      float64
}

// Bands lists the non-empty count levels in increasing order.
func Bands(sv *interval.Solver, counts []interval.Set) []Band {
	total := sv.Volume(sv.Full())
	bands := make([]Band, 0, len(counts))
	for i, colors := range counts {
		if sv.IsEmpty(colors) {
			continue
		}
		v := sv.Volume(colors)
		share := 0.0
		if total > 0 {
			share = v / total
		}
		bands = append(bands, Band{
			Attractors: i + 1,
			Colors:     colors,
			Volume:     v,
			Share:      share,
		})
	}
	return bands
}

// Series returns the attractor counts of points as float64 values, the form
// plotting libraries take.
func Series(points []SweepPoint) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = float64(p.Attractors)
	}
	return values
}
