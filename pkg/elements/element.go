package elements

import "github.com/photonlab/go-optical-bench/pkg/core"

// Element is one optical component on the bench. Interact applies the
// element's physics to a ray and reports what became of it.
//
// The seed ray is the original ray of the path's lineage, before any
// element touched it. Imaging-mode lenses need it to recover the true
// object-space origin; every other element ignores it.
//
// Geometric non-interaction (parallel ray, hit outside the element's
// bound) is always a Miss, never an error. Configuration problems are
// caught by the New* constructors before any trace runs; Interact never
// fails.
type Element interface {
	Interact(ray, seed core.Ray) Outcome
	Name() string
}
