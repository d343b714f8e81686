// Package composite implements the deterministic pixel transforms used to
// turn rasterized artwork into finished icons.
//
// All transforms operate on straight-alpha *image.NRGBA bitmaps. The three
// families of operations are:
//
//   - Pixel predicates: KeyWhite makes near-white pixels transparent,
//     Recolor forces the RGB channels of visible pixels to a constant.
//   - Boolean masks: Mask supports union/intersection/subtraction, hole
//     filling via four-corner flood fill, and 3x3 dilation. Masks are how
//     silhouettes and cutouts are combined.
//   - Geometry: Normalize crops to the opaque bounding box, centers on a
//     square canvas, pads, and resizes to the target dimensions.
package composite

import (
	"image"
	"image/color"
)

// DefaultWhiteThreshold is the channel value at or above which a pixel
// counts as background white. Rasterizers that paint the backdrop use
// pure white; the margin below 255 absorbs anti-aliasing at the edges.
const DefaultWhiteThreshold = 250

// KeyWhite makes the white background transparent in place: every pixel
// whose R, G and B channels are all at or above threshold gets alpha 0.
// All other pixels, including their alpha, are left untouched.
func KeyWhite(img *image.NRGBA, threshold uint8) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride : (y-b.Min.Y)*img.Stride+b.Dx()*4]
		for x := 0; x < b.Dx(); x++ {
			p := row[x*4 : x*4+4]
			if p[0] >= threshold && p[1] >= threshold && p[2] >= threshold {
				p[3] = 0
			}
		}
	}
}

// Recolor forces the RGB channels of every visible pixel (alpha > 0) to c
// in place. Alpha is never modified, so anti-aliased edges keep their
// coverage and only change hue.
func Recolor(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride : (y-b.Min.Y)*img.Stride+b.Dx()*4]
		for x := 0; x < b.Dx(); x++ {
			p := row[x*4 : x*4+4]
			if p[3] > 0 {
				p[0], p[1], p[2] = c.R, c.G, c.B
			}
		}
	}
}

// White and Black are the two recolor targets used by the icon renderers:
// white for stencils composited on dark backgrounds, black for template
// glyphs where the platform supplies the color.
var (
	White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Black = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
)
