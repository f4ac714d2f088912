// Package viz renders bench layouts and traced ray paths to an image.
// The bench is projected onto the world XY plane; Z is dropped.
package viz

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/photonlab/go-optical-bench/pkg/core"
	"github.com/photonlab/go-optical-bench/pkg/elements"
	"github.com/photonlab/go-optical-bench/pkg/tracer"
)

// Config controls the layout rendering.
type Config struct {
	Width  int
	Height int
	Scale  float64 // pixels per world unit
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{Width: 1024, Height: 768, Scale: 60}
}

// RenderLayout draws the element footprints and every traced polyline.
func RenderLayout(result tracer.Result, els []elements.Element, cfg Config) image.Image {
	dc := gg.NewContext(cfg.Width, cfg.Height)
	dc.DrawRectangle(0, 0, float64(cfg.Width), float64(cfg.Height))
	dc.SetRGB(1, 1, 1)
	dc.Fill()

	r := &renderer{dc: dc, cfg: cfg}
	r.drawGrid()
	for _, line := range result.Polylines {
		r.drawPolyline(line)
	}
	for _, el := range els {
		r.drawElement(el)
	}

	return dc.Image()
}

// SaveLayoutPNG renders the layout and writes it to a PNG file.
func SaveLayoutPNG(path string, result tracer.Result, els []elements.Element, cfg Config) error {
	dc := gg.NewContext(cfg.Width, cfg.Height)
	dc.DrawImage(RenderLayout(result, els, cfg), 0, 0)
	return dc.SavePNG(path)
}

type renderer struct {
	dc  *gg.Context
	cfg Config
}

// pt projects a world point onto the canvas: X right, Y up, Z dropped.
// World origin sits at the left margin, vertically centered.
func (r *renderer) pt(p core.Vec3) (float64, float64) {
	return p.X*r.cfg.Scale + 80, float64(r.cfg.Height)/2 - p.Y*r.cfg.Scale
}

func (r *renderer) drawGrid() {
	r.dc.SetRGB(0.92, 0.92, 0.95)
	r.dc.SetLineWidth(1)
	step := r.cfg.Scale
	for x := 80.0; x < float64(r.cfg.Width); x += step {
		r.dc.DrawLine(x, 0, x, float64(r.cfg.Height))
		r.dc.Stroke()
	}
	for y := float64(r.cfg.Height) / 2; y > 0; y -= step {
		r.dc.DrawLine(0, y, float64(r.cfg.Width), y)
		r.dc.Stroke()
	}
	for y := float64(r.cfg.Height) / 2; y < float64(r.cfg.Height); y += step {
		r.dc.DrawLine(0, y, float64(r.cfg.Width), y)
		r.dc.Stroke()
	}
}

func (r *renderer) drawPolyline(line tracer.Polyline) {
	if len(line.Points) < 2 {
		return
	}

	r.dc.SetRGB(line.Color.X, line.Color.Y, line.Color.Z)
	if line.Split {
		// Split lineages get the alternate style
		r.dc.SetLineWidth(1)
		r.dc.SetDash(6, 3)
	} else {
		r.dc.SetLineWidth(1.5)
		r.dc.SetDash()
	}

	x, y := r.pt(line.Points[0])
	r.dc.MoveTo(x, y)
	for _, p := range line.Points[1:] {
		x, y = r.pt(p)
		r.dc.LineTo(x, y)
	}
	r.dc.Stroke()
	r.dc.SetDash()
}

// drawElement draws a transverse segment for each element, with a gap
// for slit and aperture openings.
func (r *renderer) drawElement(el elements.Element) {
	switch e := el.(type) {
	case *elements.ThinLens:
		r.dc.SetRGB(0.2, 0.4, 0.8)
		r.segment(e.Frame, e.Aperture, 4)
	case *elements.FlatMirror:
		r.dc.SetRGB(0.1, 0.1, 0.1)
		r.segment(e.Frame, e.Height/2, 3)
	case *elements.SphericalMirror:
		r.dc.SetRGB(0.1, 0.1, 0.1)
		r.segment(e.Frame, e.Height/2, 3)
	case *elements.TransmissiveGrating:
		r.dc.SetRGB(0.5, 0.2, 0.6)
		r.segment(e.Frame, e.Height/2, 3)
	case *elements.ReflectiveGrating:
		r.dc.SetRGB(0.5, 0.2, 0.6)
		r.segment(e.Frame, e.Height/2, 3)
	case *elements.Slit:
		r.dc.SetRGB(0.35, 0.35, 0.35)
		r.plate(e.Frame, e.OpenHeight/2, e.PlateHeight/2)
	case *elements.Aperture:
		r.dc.SetRGB(0.35, 0.35, 0.35)
		r.plate(e.Frame, e.Radius, e.PlateRadius)
	case *elements.Detector:
		r.dc.SetRGB(0.1, 0.6, 0.2)
		r.segment(e.Frame, e.Size/2, 5)
	}
}

// segment draws the element's transverse extent along its Up axis.
func (r *renderer) segment(f elements.Frame, halfExtent float64, width float64) {
	a := f.Position.Add(f.Up.Multiply(halfExtent))
	b := f.Position.Subtract(f.Up.Multiply(halfExtent))
	x0, y0 := r.pt(a)
	x1, y1 := r.pt(b)
	r.dc.SetLineWidth(width)
	r.dc.DrawLine(x0, y0, x1, y1)
	r.dc.Stroke()
}

// plate draws the opaque parts of a slit or aperture, leaving the
// opening clear.
func (r *renderer) plate(f elements.Frame, open, outer float64) {
	for _, side := range []float64{1, -1} {
		a := f.Position.Add(f.Up.Multiply(side * open))
		b := f.Position.Add(f.Up.Multiply(side * outer))
		x0, y0 := r.pt(a)
		x1, y1 := r.pt(b)
		r.dc.SetLineWidth(4)
		r.dc.DrawLine(x0, y0, x1, y1)
		r.dc.Stroke()
	}
}
