package tracer

import (
	"fmt"
	"math"
	"testing"

	"github.com/photonlab/go-optical-bench/pkg/core"
	"github.com/photonlab/go-optical-bench/pkg/elements"
	"github.com/photonlab/go-optical-bench/pkg/sensor"
)

// captureLogger records trace log lines for assertions.
type captureLogger struct {
	lines []string
}

func (l *captureLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// Two parallel rays through a thin lens must converge onto the same
// detector pixel at the focal plane.
func TestTraceLensFocusesOntoOnePixel(t *testing.T) {
	lens, err := elements.NewThinLens(core.NewVec3(2, 0, 0), core.NewVec3(1, 0, 0), 4, 1)
	if err != nil {
		t.Fatalf("NewThinLens: %v", err)
	}
	detector, err := elements.NewDetector(core.NewVec3(6, 0, 0), core.NewVec3(-1, 0, 0), 2, 4)
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}

	seeds := []core.Ray{
		core.NewRay(core.NewVec3(0, 0.5, 0), core.NewVec3(1, 0, 0)),
		core.NewRay(core.NewVec3(0, -0.5, 0), core.NewVec3(1, 0, 0)),
	}

	acc, _ := sensor.NewAccumulator(detector.GridSize)
	pt := NewPathTracer([]elements.Element{lens, detector}, DefaultTraceConfig(), nil)
	result := pt.Trace(seeds, acc)

	if result.DetectorHits != 2 {
		t.Fatalf("DetectorHits = %d, expected 2", result.DetectorHits)
	}
	if acc.Hits() != 2 {
		t.Fatalf("accumulator hits = %d, expected 2", acc.Hits())
	}
	if len(result.Polylines) != 2 {
		t.Fatalf("polylines = %d, expected 2", len(result.Polylines))
	}

	for i, line := range result.Polylines {
		// seed origin, lens plane, detector plane
		if len(line.Points) != 3 {
			t.Errorf("polyline %d has %d points, expected 3", i, len(line.Points))
		}
		end := line.Points[len(line.Points)-1]
		if math.Abs(end.X-6) > 1e-9 || math.Abs(end.Y) > 1e-9 {
			t.Errorf("polyline %d ends at %v, expected the focal point (6,0,0)", i, end)
		}
	}

	// Both rays land in the same pixel; only that pixel is lit
	px, py := detector.PixelAt(core.NewVec3(6, 0, 0))
	img := acc.Image(sensor.ModeDemosaiced)
	for y := 0; y < detector.GridSize; y++ {
		for x := 0; x < detector.GridSize; x++ {
			c := img.RGBAAt(x, y)
			lit := c.R > 0 || c.G > 0 || c.B > 0
			if (x == px && y == py) != lit {
				t.Errorf("pixel (%d,%d) lit=%v, expected lit only at (%d,%d)", x, y, lit, px, py)
			}
		}
	}
}

// A grating split forks the path: one lineage per surviving order, each
// marked as split and tagged with its order.
func TestTraceGratingForksPaths(t *testing.T) {
	grating, err := elements.NewTransmissiveGrating(core.NewVec3(2, 0, 0), core.NewVec3(1, 0, 0),
		600, 4, 4, elements.GroovesVertical)
	if err != nil {
		t.Fatalf("NewTransmissiveGrating: %v", err)
	}

	seeds := []core.Ray{core.NewSpectralRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), 650)}

	pt := NewPathTracer([]elements.Element{grating}, DefaultTraceConfig(), nil)
	result := pt.Trace(seeds, nil)

	if len(result.Polylines) != 3 {
		t.Fatalf("polylines = %d, expected 3 (orders -1, 0, +1)", len(result.Polylines))
	}
	for i, line := range result.Polylines {
		if !line.Split {
			t.Errorf("polyline %d not marked as split", i)
		}
		// seed origin, grating hit, cosmetic tail
		if len(line.Points) != 3 {
			t.Errorf("polyline %d has %d points, expected 3", i, len(line.Points))
		}
	}

	if len(result.FinalRays) != 3 {
		t.Fatalf("final rays = %d, expected 3", len(result.FinalRays))
	}
	orders := map[int]bool{}
	for _, r := range result.FinalRays {
		if !r.HasOrder {
			t.Errorf("final ray missing its order tag")
		}
		orders[r.Order] = true
	}
	for _, m := range []int{-1, 0, 1} {
		if !orders[m] {
			t.Errorf("no surviving path for order %d", m)
		}
	}
}

// A redirect landing outside the bench bounds terminates the path: no
// cosmetic tail, no final ray.
func TestTraceTerminatesAtBounds(t *testing.T) {
	mirror, err := elements.NewFlatMirror(core.NewVec3(5, 0, 0), core.NewVec3(-1, 1, 0), 4, 4)
	if err != nil {
		t.Fatalf("NewFlatMirror: %v", err)
	}

	config := DefaultTraceConfig()
	config.Bounds = core.NewBounds(core.NewVec3(-1, -1, -1), core.NewVec3(4, 4, 4))

	seeds := []core.Ray{core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))}
	pt := NewPathTracer([]elements.Element{mirror}, config, nil)
	result := pt.Trace(seeds, nil)

	if len(result.FinalRays) != 0 {
		t.Errorf("final rays = %d, expected 0 for an out-of-bounds path", len(result.FinalRays))
	}
	if len(result.Polylines) != 1 {
		t.Fatalf("polylines = %d, expected 1", len(result.Polylines))
	}
	// seed origin and the mirror hit, nothing appended after termination
	if got := len(result.Polylines[0].Points); got != 2 {
		t.Errorf("polyline has %d points, expected 2", got)
	}
}

// The population cap drops surplus split children and logs the drop.
func TestTracePathCap(t *testing.T) {
	grating, _ := elements.NewTransmissiveGrating(core.NewVec3(2, 0, 0), core.NewVec3(1, 0, 0),
		600, 4, 4, elements.GroovesVertical)

	config := DefaultTraceConfig()
	config.MaxPaths = 2

	logger := &captureLogger{}
	seeds := []core.Ray{core.NewSpectralRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), 650)}
	pt := NewPathTracer([]elements.Element{grating}, config, logger)
	result := pt.Trace(seeds, nil)

	if len(result.Polylines) != 2 {
		t.Errorf("polylines = %d, expected the capped 2", len(result.Polylines))
	}
	if len(logger.lines) == 0 {
		t.Errorf("expected a log line about the path cap")
	}
}

// A slit absorbs plate hits without counting them as detector hits.
func TestTracePlateAbsorptionIsNotADetectorHit(t *testing.T) {
	slit, _ := elements.NewSlit(core.NewVec3(2, 0, 0), core.NewVec3(1, 0, 0), 0.5, 0.5, 4, 4)
	detector, _ := elements.NewDetector(core.NewVec3(6, 0, 0), core.NewVec3(-1, 0, 0), 4, 8)

	seeds := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)),   // through the opening
		core.NewRay(core.NewVec3(0, 1.5, 0), core.NewVec3(1, 0, 0)), // onto the plate
	}

	acc, _ := sensor.NewAccumulator(detector.GridSize)
	pt := NewPathTracer([]elements.Element{slit, detector}, DefaultTraceConfig(), nil)
	result := pt.Trace(seeds, acc)

	if result.DetectorHits != 1 {
		t.Errorf("DetectorHits = %d, expected 1", result.DetectorHits)
	}
	if len(result.Polylines) != 2 {
		t.Errorf("polylines = %d, expected 2", len(result.Polylines))
	}
}

// Misses leave the ray untouched: an element placed behind the beam
// plays no part in the trace.
func TestTraceMissedElementLeavesRayUnchanged(t *testing.T) {
	lens, _ := elements.NewThinLens(core.NewVec3(-2, 0, 0), core.NewVec3(1, 0, 0), 4, 1)

	seeds := []core.Ray{core.NewRay(core.NewVec3(0, 0.5, 0), core.NewVec3(1, 0, 0))}
	pt := NewPathTracer([]elements.Element{lens}, DefaultTraceConfig(), nil)
	result := pt.Trace(seeds, nil)

	if len(result.FinalRays) != 1 {
		t.Fatalf("final rays = %d, expected 1", len(result.FinalRays))
	}
	dir := result.FinalRays[0].Direction
	if math.Abs(dir.X-1) > 1e-9 || math.Abs(dir.Y) > 1e-9 {
		t.Errorf("direction = %v, expected unchanged (1,0,0)", dir)
	}
}
