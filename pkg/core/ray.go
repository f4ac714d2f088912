package core

// DefaultWavelength is the wavelength in nanometers assumed for rays
// created without an explicit spectral configuration (green, 532 nm).
const DefaultWavelength = 532.0

// Ray is a light ray: an origin, a unit direction, a wavelength in
// nanometers, and optionally an explicit RGB color and a diffraction
// order. Rays are immutable after construction; derived rays are always
// new values.
//
// Color is set only for rays that originate from a resolved image-object
// point. When present it overrides the wavelength-derived color
// everywhere downstream.
type Ray struct {
	Origin     Vec3
	Direction  Vec3
	Wavelength float64
	Color      *Vec3
	Order      int
	HasOrder   bool
}

// NewRay creates a ray at the default wavelength. The direction is
// normalized; callers must supply a non-zero direction.
func NewRay(origin, direction Vec3) Ray {
	return Ray{
		Origin:     origin,
		Direction:  direction.Normalize(),
		Wavelength: DefaultWavelength,
	}
}

// NewSpectralRay creates a ray with an explicit wavelength in nanometers.
func NewSpectralRay(origin, direction Vec3, wavelength float64) Ray {
	r := NewRay(origin, direction)
	r.Wavelength = wavelength
	return r
}

// NewColoredRay creates a ray carrying a resolved RGB color, as produced
// by an image-object source. The wavelength stays at the default and is
// ignored wherever the color is present.
func NewColoredRay(origin, direction Vec3, color Vec3) Ray {
	r := NewRay(origin, direction)
	r.Color = &color
	return r
}

// Derive returns a new ray continuing this one from a new origin with a
// new direction, preserving wavelength and color.
func (r Ray) Derive(origin, direction Vec3) Ray {
	out := NewRay(origin, direction)
	out.Wavelength = r.Wavelength
	out.Color = r.Color
	return out
}

// DeriveOrder returns a derived ray additionally tagged with a
// diffraction order.
func (r Ray) DeriveOrder(origin, direction Vec3, order int) Ray {
	out := r.Derive(origin, direction)
	out.Order = order
	out.HasOrder = true
	return out
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
