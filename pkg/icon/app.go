// Package icon renders the finished icon artifacts: app icons with a
// rounded-rectangle background, template tray stencils with silhouette
// fill and eye cutouts, and small black-on-transparent glyphs.
package icon

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/mkerner/iconforge/pkg/composite"
	"github.com/mkerner/iconforge/pkg/raster"
)

// AppSpec describes the app icon composition.
type AppSpec struct {
	Canvas         int     // working canvas edge, rendered once and downscaled
	CornerRadius   float64 // rounded-rectangle radius on the working canvas
	Background     string  // background fill, hex
	Inset          float64 // artwork edge as a fraction of the canvas edge
	WhiteThreshold uint8   // backdrop keying threshold
}

// App renders the app icon at size x size: a rounded-rectangle background
// with the artwork keyed, recolored to white, and composited centered.
// The composition happens on the working canvas and is downscaled at the
// end so every requested size shares identical geometry.
func App(doc *raster.Document, spec AppSpec, size int) (*image.NRGBA, error) {
	dc := gg.NewContext(spec.Canvas, spec.Canvas)
	dc.DrawRoundedRectangle(0, 0, float64(spec.Canvas), float64(spec.Canvas), spec.CornerRadius)
	dc.SetHexColor(spec.Background)
	dc.Fill()

	artSize := int(float64(spec.Canvas) * spec.Inset)
	art, err := doc.Render(artSize)
	if err != nil {
		return nil, err
	}
	composite.KeyWhite(art, spec.WhiteThreshold)
	composite.Recolor(art, composite.White)

	offset := (spec.Canvas - artSize) / 2
	dc.DrawImage(art, offset, offset)

	out := imaging.Clone(dc.Image())
	if size != spec.Canvas {
		out = imaging.Resize(out, size, size, imaging.Lanczos)
	}
	return out, nil
}
