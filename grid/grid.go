// Package grid enumerates the parameter space swept over the benchmark
// binary. A grid is the Cartesian product of per-dimension value sets,
// iterated in nested-loop order with the rightmost dimension (tau)
// varying fastest.
package grid

import (
	"fmt"
	"strconv"
)

// Point is one parameter combination passed to the benchmark binary.
type Point struct {
	Lambda int
	Tau    int
}

// Args returns the positional argument list for the benchmark binary:
// lambda first, tau second.
func (p Point) Args() []string {
	return []string{strconv.Itoa(p.Lambda), strconv.Itoa(p.Tau)}
}

func (p Point) String() string {
	return fmt.Sprintf("lambda=%d tau=%d", p.Lambda, p.Tau)
}

// Config holds the value set for each grid dimension.
type Config struct {
	Lambdas []int
	Taus    []int
}

// DefaultConfig returns the built-in grid used when no grid file is
// given: a single point at lambda 40, tau 10.
func DefaultConfig() Config {
	return Config{
		Lambdas: []int{40},
		Taus:    []int{10},
	}
}

// Validate rejects configurations with an empty dimension.
func (c Config) Validate() error {
	if len(c.Lambdas) == 0 {
		return fmt.Errorf("grid: no lambda values configured")
	}

	if len(c.Taus) == 0 {
		return fmt.Errorf("grid: no tau values configured")
	}

	return nil
}

// Generate materializes the full Cartesian product of the configured
// dimensions. The sequence is fully built before dispatch so the sweep
// has a stable count and a stable submission order. No deduplication,
// no randomization.
func Generate(cfg Config) []Point {
	points := make([]Point, 0, len(cfg.Lambdas)*len(cfg.Taus))

	for _, lambda := range cfg.Lambdas {
		for _, tau := range cfg.Taus {
			points = append(points, Point{Lambda: lambda, Tau: tau})
		}
	}

	return points
}
