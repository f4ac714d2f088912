package core

import (
	"math"
	"testing"
)

func TestNewRayNormalizesDirection(t *testing.T) {
	r := NewRay(NewVec3(0, 0, 0), NewVec3(3, 4, 0))
	if math.Abs(r.Direction.Length()-1) > 1e-9 {
		t.Errorf("direction not normalized: %v", r.Direction)
	}
	if r.Wavelength != DefaultWavelength {
		t.Errorf("wavelength = %v, expected default %v", r.Wavelength, DefaultWavelength)
	}
}

func TestRayAt(t *testing.T) {
	r := NewRay(NewVec3(1, 0, 0), NewVec3(1, 0, 0))
	got := r.At(2.5)
	if !vecsClose(got, NewVec3(3.5, 0, 0), 1e-9) {
		t.Errorf("At(2.5) = %v, expected (3.5,0,0)", got)
	}
}

func TestDerivePreservesSpectralState(t *testing.T) {
	r := NewSpectralRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0), 650)
	d := r.Derive(NewVec3(2, 0, 0), NewVec3(0, 1, 0))

	if d.Wavelength != 650 {
		t.Errorf("derived ray wavelength = %v, expected 650", d.Wavelength)
	}
	if d.HasOrder {
		t.Errorf("derived ray unexpectedly carries an order tag")
	}

	color := NewVec3(0.2, 0.4, 0.6)
	c := NewColoredRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0), color)
	dc := c.Derive(NewVec3(1, 0, 0), NewVec3(1, 1, 0))
	if dc.Color == nil || !vecsClose(*dc.Color, color, 1e-12) {
		t.Errorf("derived ray lost its color")
	}
}

func TestDeriveOrder(t *testing.T) {
	r := NewSpectralRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0), 650)
	d := r.DeriveOrder(NewVec3(2, 0, 0), NewVec3(1, 0, 1), -1)

	if !d.HasOrder || d.Order != -1 {
		t.Errorf("order tag = (%v, %v), expected (-1, true)", d.Order, d.HasOrder)
	}
	if d.Wavelength != 650 {
		t.Errorf("wavelength = %v, expected 650", d.Wavelength)
	}
}
