package elements

import (
	"testing"

	"github.com/photonlab/go-optical-bench/pkg/core"
)

func TestSlitRegions(t *testing.T) {
	slit, err := NewSlit(core.NewVec3(2, 0, 0), core.NewVec3(1, 0, 0), 1.0, 1.0, 4, 4)
	if err != nil {
		t.Fatalf("NewSlit: %v", err)
	}

	tests := []struct {
		name     string
		origin   core.Vec3
		expected OutcomeKind
	}{
		{"through the center", core.NewVec3(0, 0, 0), OutcomeRedirect},
		{"inside the opening", core.NewVec3(0, 0.4, 0), OutcomeRedirect},
		{"exactly on the opening edge", core.NewVec3(0, 0.5, 0), OutcomeRedirect},
		{"just past the opening edge", core.NewVec3(0, 0.5000001, 0), OutcomeAbsorb},
		{"on the plate", core.NewVec3(0, 1.5, 0), OutcomeAbsorb},
		{"exactly on the plate edge", core.NewVec3(0, 2.0, 0), OutcomeAbsorb},
		{"beyond the plate", core.NewVec3(0, 2.5, 0), OutcomeMiss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, core.NewVec3(1, 0, 0))
			outcome := slit.Interact(ray, ray)
			if outcome.Kind != tt.expected {
				t.Errorf("outcome kind = %v, expected %v", outcome.Kind, tt.expected)
			}
		})
	}
}

func TestSlitPassesUndeviated(t *testing.T) {
	slit, _ := NewSlit(core.NewVec3(2, 0, 0), core.NewVec3(1, 0, 0), 1.0, 1.0, 4, 4)

	dir := core.NewVec3(1, 0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 0), dir)
	outcome := slit.Interact(ray, ray)
	if outcome.Kind != OutcomeRedirect {
		t.Fatalf("outcome kind = %v, expected redirect", outcome.Kind)
	}
	if !vecsClose(outcome.Ray.Direction, dir, 1e-9) {
		t.Errorf("direction changed to %v through an open slit", outcome.Ray.Direction)
	}
}

func TestNewSlitValidation(t *testing.T) {
	if _, err := NewSlit(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), 0, 1, 4, 4); err == nil {
		t.Errorf("expected error for zero opening")
	}
	if _, err := NewSlit(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), 2, 2, 1, 1); err == nil {
		t.Errorf("expected error for plate smaller than opening")
	}
}

func TestApertureRegions(t *testing.T) {
	aperture, err := NewAperture(core.NewVec3(3, 0, 0), core.NewVec3(1, 0, 0), 0.8, 2)
	if err != nil {
		t.Fatalf("NewAperture: %v", err)
	}

	tests := []struct {
		name     string
		origin   core.Vec3
		expected OutcomeKind
	}{
		{"through the center", core.NewVec3(0, 0, 0), OutcomeRedirect},
		{"inside the opening", core.NewVec3(0, 0.5, 0.5), OutcomeRedirect},
		{"exactly on the opening edge", core.NewVec3(0, 0.8, 0), OutcomeRedirect},
		{"just past the opening edge", core.NewVec3(0, 0.8000001, 0), OutcomeAbsorb},
		{"on the plate", core.NewVec3(0, 1.5, 0), OutcomeAbsorb},
		{"beyond the plate", core.NewVec3(0, 2.5, 0), OutcomeMiss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, core.NewVec3(1, 0, 0))
			outcome := aperture.Interact(ray, ray)
			if outcome.Kind != tt.expected {
				t.Errorf("outcome kind = %v, expected %v", outcome.Kind, tt.expected)
			}
		})
	}
}

func TestNewApertureValidation(t *testing.T) {
	if _, err := NewAperture(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), -1, 2); err == nil {
		t.Errorf("expected error for negative opening radius")
	}
	if _, err := NewAperture(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), 2, 1); err == nil {
		t.Errorf("expected error for plate smaller than opening")
	}
}
