package elements

import "github.com/photonlab/go-optical-bench/pkg/core"

// OutcomeKind tags the result of one ray/element interaction.
type OutcomeKind int

const (
	// OutcomeMiss means the ray was unaffected and continues unchanged.
	OutcomeMiss OutcomeKind = iota
	// OutcomeRedirect means the ray was moved to the intersection point
	// with a new direction.
	OutcomeRedirect
	// OutcomeSplit means the element produced multiple child rays
	// (diffraction orders); the path forks.
	OutcomeSplit
	// OutcomeAbsorb means the path terminates at the intersection point.
	OutcomeAbsorb
)

// Outcome is the closed result type of Element.Interact. Exactly one of
// Ray, Rays, or (Point, Absorbed) is meaningful, selected by Kind.
type Outcome struct {
	Kind     OutcomeKind
	Ray      core.Ray   // Redirect: the continuation ray, origin at the hit point
	Rays     []core.Ray // Split: one child per surviving diffraction order
	Point    core.Vec3  // Absorb: the absorption point
	Absorbed core.Ray   // Absorb: the ray as absorbed (wavelength/color carrier)
}

// Miss returns the outcome for a ray that never touched the element.
func Miss() Outcome {
	return Outcome{Kind: OutcomeMiss}
}

// Redirect returns the outcome for a ray continuing from the hit point.
func Redirect(ray core.Ray) Outcome {
	return Outcome{Kind: OutcomeRedirect, Ray: ray}
}

// Split returns the outcome for a branching interaction.
func Split(rays []core.Ray) Outcome {
	return Outcome{Kind: OutcomeSplit, Rays: rays}
}

// Absorb returns the outcome for a terminated path.
func Absorb(point core.Vec3, ray core.Ray) Outcome {
	return Outcome{Kind: OutcomeAbsorb, Point: point, Absorbed: ray}
}
