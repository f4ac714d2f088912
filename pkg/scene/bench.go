package scene

import (
	"fmt"

	"github.com/photonlab/go-optical-bench/pkg/core"
	"github.com/photonlab/go-optical-bench/pkg/elements"
	"github.com/photonlab/go-optical-bench/pkg/sensor"
	"github.com/photonlab/go-optical-bench/pkg/tracer"
)

// Bench is one configured optical setup: an ordered element list, a
// seed ray source, and trace settings. Detector is the detector inside
// Elements, kept separately for sensor sizing; it is nil for benches
// that only produce ray diagrams (e.g. the collimator).
type Bench struct {
	Name     string
	Elements []elements.Element
	Detector *elements.Detector
	Source   tracer.PatternConfig
	Trace    tracer.TraceConfig
}

// Run performs one full trace of the bench: pattern generation, element
// sweep, accumulation. The returned accumulator is nil when the bench
// has no detector. A fresh accumulator is allocated per call, so
// concurrent Run calls on the same bench are safe.
func (b *Bench) Run(logger core.Logger) (tracer.Result, *sensor.Accumulator, error) {
	seeds, err := tracer.GeneratePattern(b.Source)
	if err != nil {
		return tracer.Result{}, nil, fmt.Errorf("bench %s: %w", b.Name, err)
	}

	var acc *sensor.Accumulator
	if b.Detector != nil {
		acc, err = sensor.NewAccumulator(b.Detector.GridSize)
		if err != nil {
			return tracer.Result{}, nil, fmt.Errorf("bench %s: %w", b.Name, err)
		}
	}

	pt := tracer.NewPathTracer(b.Elements, b.Trace, logger)
	result := pt.Trace(seeds, acc)

	return result, acc, nil
}
