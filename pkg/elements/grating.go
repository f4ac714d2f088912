package elements

import (
	"fmt"
	"math"

	"github.com/photonlab/go-optical-bench/pkg/core"
)

// Diffraction orders emitted by a grating. Orders whose grating-equation
// sine exceeds 1 in magnitude are evanescent and silently dropped.
var gratingOrders = [...]int{-1, 0, 1}

// Orientation selects the groove direction, and with it the plane in
// which a grating disperses light.
type Orientation int

const (
	// GroovesVertical grooves run along the frame's Up axis; dispersion
	// happens along Right.
	GroovesVertical Orientation = iota
	// GroovesHorizontal grooves run along Right; dispersion along Up.
	GroovesHorizontal
)

// dispersionAxes returns the transverse axis along which orders spread
// and the axis the grooves run along.
func dispersionAxes(f Frame, o Orientation) (dispersion, grooves core.Vec3) {
	if o == GroovesHorizontal {
		return f.Up, f.Right
	}
	return f.Right, f.Up
}

// grooveSpacing converts a line density to the groove period in
// nanometers, the unit the grating equation wants wavelengths in.
func grooveSpacing(linesPerMM float64) float64 {
	return 1e6 / linesPerMM
}

// orderSine evaluates sin(theta_m) = m*lambda/d for one order. The
// second result is false for evanescent orders.
func orderSine(order int, wavelength, spacing float64) (float64, bool) {
	s := float64(order) * wavelength / spacing
	if math.Abs(s) > 1 {
		return 0, false
	}
	return s, true
}

// TransmissiveGrating splits transmitted light into diffraction orders
// -1, 0 and +1 per the scalar grating equation d*sin(theta) = m*lambda.
type TransmissiveGrating struct {
	Frame       Frame
	LinesPerMM  float64
	Width       float64
	Height      float64
	Orientation Orientation
}

// NewTransmissiveGrating creates a transmissive grating at position with
// its plane facing normal. Fails fast on a non-positive groove density.
func NewTransmissiveGrating(position, normal core.Vec3, linesPerMM, width, height float64, orientation Orientation) (*TransmissiveGrating, error) {
	if linesPerMM <= 0 {
		return nil, fmt.Errorf("transmissive grating: groove density must be positive, got %g", linesPerMM)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("transmissive grating: dimensions must be positive, got %gx%g", width, height)
	}
	return &TransmissiveGrating{
		Frame:       NewFrame(position, normal),
		LinesPerMM:  linesPerMM,
		Width:       width,
		Height:      height,
		Orientation: orientation,
	}, nil
}

// Name implements Element
func (g *TransmissiveGrating) Name() string { return "transmissive-grating" }

// Interact implements Element
func (g *TransmissiveGrating) Interact(ray, _ core.Ray) Outcome {
	hit, ok := g.Frame.Intersect(ray)
	if !ok {
		return Miss()
	}

	u, v := g.Frame.LocalOffsets(hit)
	if math.Abs(u) > g.Width/2 || math.Abs(v) > g.Height/2 {
		return Miss()
	}

	_, grooves := dispersionAxes(g.Frame, g.Orientation)
	spacing := grooveSpacing(g.LinesPerMM)

	var children []core.Ray
	for _, m := range gratingOrders {
		if m == 0 {
			// Zeroth order passes through undeviated
			children = append(children, ray.DeriveOrder(hit, ray.Direction, 0))
			continue
		}

		s, propagating := orderSine(m, ray.Wavelength, spacing)
		if !propagating {
			continue
		}

		// Rotate the incident direction within the dispersion plane;
		// the groove axis is perpendicular to that plane.
		newDir := ray.Direction.RotateAround(grooves, math.Asin(s))
		children = append(children, ray.DeriveOrder(hit, newDir, m))
	}

	if len(children) == 0 {
		return Miss()
	}
	return Split(children)
}

// ReflectiveGrating reflects light into diffraction orders -1, 0 and +1.
// Only rays heading toward the front face interact.
type ReflectiveGrating struct {
	Frame       Frame
	LinesPerMM  float64
	Width       float64
	Height      float64
	Orientation Orientation
}

// NewReflectiveGrating creates a reflective grating at position with its
// front face toward normal.
func NewReflectiveGrating(position, normal core.Vec3, linesPerMM, width, height float64, orientation Orientation) (*ReflectiveGrating, error) {
	if linesPerMM <= 0 {
		return nil, fmt.Errorf("reflective grating: groove density must be positive, got %g", linesPerMM)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("reflective grating: dimensions must be positive, got %gx%g", width, height)
	}
	return &ReflectiveGrating{
		Frame:       NewFrame(position, normal),
		LinesPerMM:  linesPerMM,
		Width:       width,
		Height:      height,
		Orientation: orientation,
	}, nil
}

// Name implements Element
func (g *ReflectiveGrating) Name() string { return "reflective-grating" }

// Interact implements Element
func (g *ReflectiveGrating) Interact(ray, _ core.Ray) Outcome {
	// The front face is the +Normal side; rays moving away from it miss.
	if ray.Direction.Dot(g.Frame.Normal) >= 0 {
		return Miss()
	}

	hit, ok := g.Frame.Intersect(ray)
	if !ok {
		return Miss()
	}

	u, v := g.Frame.LocalOffsets(hit)
	if math.Abs(u) > g.Width/2 || math.Abs(v) > g.Height/2 {
		return Miss()
	}

	dispersion, _ := dispersionAxes(g.Frame, g.Orientation)
	spacing := grooveSpacing(g.LinesPerMM)
	reflected := ray.Direction.Reflect(g.Frame.Normal)

	var children []core.Ray
	for _, m := range gratingOrders {
		if m == 0 {
			children = append(children, ray.DeriveOrder(hit, reflected, 0))
			continue
		}

		s, propagating := orderSine(m, ray.Wavelength, spacing)
		if !propagating {
			continue
		}

		// Rotate the mirror-reflected direction about the axis
		// perpendicular to it and to the dispersion axis.
		axis := reflected.Cross(dispersion)
		if axis.LengthSquared() < parallelEpsilon {
			continue
		}
		newDir := reflected.RotateAround(axis.Normalize(), math.Asin(s))
		children = append(children, ray.DeriveOrder(hit, newDir, m))
	}

	if len(children) == 0 {
		return Miss()
	}
	return Split(children)
}
