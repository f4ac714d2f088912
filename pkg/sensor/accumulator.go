package sensor

import (
	"fmt"

	"github.com/photonlab/go-optical-bench/pkg/core"
)

// resolver converts an absorbed ray into the RGB contribution one grid
// records for it. The two grids differ only in their resolver.
type resolver func(ray core.Ray) core.Vec3

// filteredResponse models the physical color-filter array: Gaussian
// per-channel sensitivity, unless the ray carries a resolved color.
func filteredResponse(ray core.Ray) core.Vec3 {
	if ray.Color != nil {
		return *ray.Color
	}
	return core.FilterRGB(ray.Wavelength)
}

// trueColorResponse records the perceived color of the light.
func trueColorResponse(ray core.Ray) core.Vec3 {
	if ray.Color != nil {
		return *ray.Color
	}
	return core.WavelengthToRGB(ray.Wavelength)
}

// Accumulator collects detector hits into two parallel square RGB grids:
// a filtered-response grid emulating a Bayer sensor and a true-color
// grid for demosaiced output. Each grid tracks a running scalar maximum
// used for final normalization. Accumulation is strictly additive within
// a frame; Reset clears everything for the next trace.
//
// An Accumulator is owned by one trace at a time. Concurrent traces must
// use separate instances.
type Accumulator struct {
	gridSize    int
	filtered    []core.Vec3
	trueColor   []core.Vec3
	maxFiltered float64
	maxTrue     float64
	hits        int
}

// NewAccumulator creates an accumulator for a gridSize x gridSize sensor.
func NewAccumulator(gridSize int) (*Accumulator, error) {
	if gridSize <= 0 {
		return nil, fmt.Errorf("sensor: grid size must be positive, got %d", gridSize)
	}
	return &Accumulator{
		gridSize:  gridSize,
		filtered:  make([]core.Vec3, gridSize*gridSize),
		trueColor: make([]core.Vec3, gridSize*gridSize),
	}, nil
}

// GridSize returns the sensor's pixel count per side.
func (a *Accumulator) GridSize() int { return a.gridSize }

// Hits returns how many detector hits landed on the grid this frame.
func (a *Accumulator) Hits() int { return a.hits }

// Reset clears both grids and their maxima for a new trace.
func (a *Accumulator) Reset() {
	for i := range a.filtered {
		a.filtered[i] = core.Vec3{}
		a.trueColor[i] = core.Vec3{}
	}
	a.maxFiltered = 0
	a.maxTrue = 0
	a.hits = 0
}

// Record adds one absorbed ray at pixel (px, py). Hits outside the grid
// are discarded without error.
func (a *Accumulator) Record(px, py int, ray core.Ray) {
	if px < 0 || px >= a.gridSize || py < 0 || py >= a.gridSize {
		return
	}
	i := py*a.gridSize + px
	a.maxFiltered = addSample(a.filtered, i, filteredResponse(ray), a.maxFiltered)
	a.maxTrue = addSample(a.trueColor, i, trueColorResponse(ray), a.maxTrue)
	a.hits++
}

// addSample adds an RGB contribution to one cell and returns the updated
// running maximum over all cell components seen so far.
func addSample(grid []core.Vec3, i int, rgb core.Vec3, runningMax float64) float64 {
	grid[i] = grid[i].Add(rgb)
	return max(runningMax, grid[i].X, grid[i].Y, grid[i].Z)
}
