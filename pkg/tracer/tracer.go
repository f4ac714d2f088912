package tracer

import (
	"github.com/photonlab/go-optical-bench/pkg/core"
	"github.com/photonlab/go-optical-bench/pkg/elements"
	"github.com/photonlab/go-optical-bench/pkg/sensor"
)

// TraceConfig contains propagation configuration
type TraceConfig struct {
	Bounds     core.Bounds // paths leaving this volume terminate
	TailLength float64     // cosmetic extension of paths that survive every round
	MaxPaths   int         // cap on the live path population
}

// DefaultTraceConfig returns sensible default values
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		Bounds:     core.NewBounds(core.NewVec3(-100, -100, -100), core.NewVec3(100, 100, 100)),
		TailLength: 5.0,
		MaxPaths:   20000,
	}
}

// Polyline is one traced ray path for external rendering.
type Polyline struct {
	Points []core.Vec3
	Color  core.Vec3
	Split  bool // lineage went through a Split; drawn in the alternate style
}

// Result is the output of one trace.
type Result struct {
	Polylines    []Polyline
	DetectorHits int
	// FinalRays are the rays of paths that survived every round, used
	// by the collimation diagnostic.
	FinalRays []core.Ray
}

// PathTracer sweeps a population of paths through an ordered element
// list: one round per element, a single deterministic forward pass, no
// revisiting. A trace is synchronous and single-threaded; callers
// running traces concurrently must give each its own PathTracer and
// sensor.Accumulator.
type PathTracer struct {
	elements []elements.Element
	config   TraceConfig
	logger   core.Logger
}

// NewPathTracer creates a tracer over a fixed, ordered element list.
func NewPathTracer(els []elements.Element, config TraceConfig, logger core.Logger) *PathTracer {
	if logger == nil {
		logger = core.NewDefaultLogger()
	}
	return &PathTracer{elements: els, config: config, logger: logger}
}

// Trace propagates the seed rays through every element in order.
// Detector absorptions are recorded into acc (which is reset first);
// acc may be nil when only polylines are wanted.
func (pt *PathTracer) Trace(seeds []core.Ray, acc *sensor.Accumulator) Result {
	if acc != nil {
		acc.Reset()
	}

	paths := make([]*ActivePath, 0, len(seeds))
	for _, seed := range seeds {
		paths = append(paths, newActivePath(seed))
	}

	hits := 0
	for _, el := range pt.elements {
		detector, isDetector := el.(*elements.Detector)

		next := make([]*ActivePath, 0, len(paths))
		for _, p := range paths {
			if p.Terminated {
				next = append(next, p)
				continue
			}

			outcome := el.Interact(p.Ray, p.Seed)
			switch outcome.Kind {
			case elements.OutcomeMiss:
				next = append(next, p)

			case elements.OutcomeRedirect:
				p.advance(outcome.Ray)
				if !pt.config.Bounds.Contains(outcome.Ray.Origin) {
					p.Terminated = true
				}
				next = append(next, p)

			case elements.OutcomeSplit:
				// The parent is consumed; each child inherits the
				// seed and the polyline-so-far.
				for _, child := range outcome.Rays {
					if len(next) >= pt.config.MaxPaths {
						pt.logger.Printf("trace: path cap %d reached at %s, dropping further splits\n",
							pt.config.MaxPaths, el.Name())
						break
					}
					next = append(next, p.fork(child))
				}

			case elements.OutcomeAbsorb:
				p.terminate(outcome.Point)
				next = append(next, p)
				if isDetector {
					hits++
					if acc != nil {
						px, py := detector.PixelAt(outcome.Point)
						acc.Record(px, py, outcome.Absorbed)
					}
				}
			}
		}
		paths = next
	}

	// Extend surviving paths by a fixed display length; this tail is
	// cosmetic, not physical.
	result := Result{}
	for _, p := range paths {
		if !p.Terminated {
			p.Points = append(p.Points, p.Ray.At(pt.config.TailLength))
			result.FinalRays = append(result.FinalRays, p.Ray)
		}
		result.Polylines = append(result.Polylines, Polyline{
			Points: p.Points,
			Color:  p.displayColor(),
			Split:  p.HasSplit,
		})
	}
	result.DetectorHits = hits

	return result
}
