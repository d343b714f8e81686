package icon

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/mkerner/iconforge/pkg/composite"
	"github.com/mkerner/iconforge/pkg/raster"
)

// TraySpec describes the tray stencil composition.
type TraySpec struct {
	Size           int     // final edge of the tray icons
	StencilSize    int     // working resolution for mask extraction
	FigureLayer    string  // layer holding the figure (outline with holes)
	EyesLayer      string  // layer holding the eye cutouts
	WhiteThreshold uint8   // backdrop keying threshold
	AlphaThreshold uint8   // minimum alpha that counts as coverage
	DilatePasses   int     // eye mask growth so cutouts read when small
	BadgeColor     string  // notification dot fill, hex
	BadgeRadius    float64 // notification dot radius at Size
}

// Stencil renders the tray stencil at size x size: the frame as an
// outline, the figure as a solid silhouette, and the eyes cut out.
// The result is solid white on transparency; for template icons the
// platform reads only the alpha channel.
func Stencil(doc *raster.Document, spec TraySpec, size int) (*image.NRGBA, error) {
	// Figure silhouette: hole-fill the outline so it becomes solid.
	figure, err := doc.RenderLayer(spec.FigureLayer, size)
	if err != nil {
		return nil, err
	}
	silhouette := composite.OpaqueMask(figure, spec.AlphaThreshold).FillHoles()

	// Eye cutouts, dilated so they stay visible after downscaling.
	eyes, err := doc.RenderLayer(spec.EyesLayer, size)
	if err != nil {
		return nil, err
	}
	cutout := composite.OpaqueMask(eyes, spec.AlphaThreshold).Dilate(spec.DilatePasses)

	body := silhouette.Subtract(cutout)

	// Frame outline: whatever the full artwork covers beyond the figure.
	full, err := doc.Render(size)
	if err != nil {
		return nil, err
	}
	composite.KeyWhite(full, spec.WhiteThreshold)
	outline := composite.OpaqueMask(full, spec.AlphaThreshold).Subtract(silhouette)

	return outline.Union(body).Image(composite.White), nil
}

// Tray renders the tray icon: the stencil extracted at working
// resolution and normalized to the final size without padding.
func Tray(doc *raster.Document, spec TraySpec) (*image.NRGBA, error) {
	stencil, err := Stencil(doc, spec, spec.StencilSize)
	if err != nil {
		return nil, err
	}
	return composite.Normalize(stencil, spec.Size, 0), nil
}

// TrayBadge renders the tray icon with a notification dot in the
// top-right corner. Unlike the plain tray icon this one is not a
// template image: the dot keeps its color.
func TrayBadge(doc *raster.Document, spec TraySpec) (*image.NRGBA, error) {
	base, err := Tray(doc, spec)
	if err != nil {
		return nil, err
	}

	cx := float64(spec.Size) - spec.BadgeRadius
	cy := spec.BadgeRadius

	dc := gg.NewContextForImage(base)
	dc.DrawCircle(cx, cy, spec.BadgeRadius)
	dc.SetHexColor(spec.BadgeColor)
	dc.Fill()

	return imaging.Clone(dc.Image()), nil
}
