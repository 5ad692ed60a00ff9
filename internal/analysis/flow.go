package analysis

import "sort"

// Stepper advances dx/dt = f(x) by one step of size dt.
type Stepper func(f func(x float64) float64, x, dt float64) float64

func Euler(f func(x float64) float64, x, dt float64) float64 {
	return x + dt*f(x)
}

// RK4 is the classic fourth-order Runge-Kutta step.
func RK4(f func(x float64) float64, x, dt float64) float64 {
	k1 := f(x)
	k2 := f(x + dt*0.5*k1)
	k3 := f(x + dt*0.5*k2)
	k4 := f(x + dt*k3)
	return x + dt/6.0*(k1+2*k2+2*k3+k4)
}

// Settle integrates dx/dt = f(x) from x0 for the given number of steps and
// returns the end point. The path is discarded; callers use it to find where
// a trajectory ends up.
func Settle(f func(x float64) float64, step Stepper, x0, dt float64, steps int) float64 {
	if step == nil {
		step = RK4
	}
	x := x0
	for i := 0; i < steps; i++ {
		x = step(f, x, dt)
	}
	return x
}

// Cell returns the index of the threshold interval holding x, or -1 when x
// lies outside the thresholds or exactly on one.
func Cell(thresholds []float64, x float64) int {
	i := sort.SearchFloat64s(thresholds, x)
	if i == 0 || i == len(thresholds) || thresholds[i] == x {
		return -1
	}
	return i - 1
}
