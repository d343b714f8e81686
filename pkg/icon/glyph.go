package icon

import (
	"image"
	"image/color"

	"github.com/mkerner/iconforge/pkg/composite"
	"github.com/mkerner/iconforge/pkg/raster"
)

// Glyph rasterizes an auxiliary SVG file to a size x size bitmap with
// the backdrop keyed out and every visible pixel forced to c. Template
// glyphs use black; the platform recolors them from the alpha channel.
func Glyph(path string, size int, c color.NRGBA, whiteThreshold uint8) (*image.NRGBA, error) {
	img, err := raster.RenderFile(path, size)
	if err != nil {
		return nil, err
	}
	flatten(img, c, whiteThreshold)
	return img, nil
}

// SourceGlyph renders the main source artwork as a glyph, same
// treatment as Glyph.
func SourceGlyph(doc *raster.Document, size int, c color.NRGBA, whiteThreshold uint8) (*image.NRGBA, error) {
	img, err := doc.Render(size)
	if err != nil {
		return nil, err
	}
	flatten(img, c, whiteThreshold)
	return img, nil
}

func flatten(img *image.NRGBA, c color.NRGBA, whiteThreshold uint8) {
	composite.KeyWhite(img, whiteThreshold)
	composite.Recolor(img, c)
}
