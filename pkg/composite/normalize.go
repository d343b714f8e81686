package composite

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Normalize crops img to its opaque bounding box, centers it on a square
// canvas, adds padRatio padding per side, and resizes to target x target
// with a Lanczos kernel.
//
// An image with no opaque pixel has no bounding box; it passes through
// unmodified apart from the resize, so the output dimensions hold
// unconditionally.
func Normalize(img *image.NRGBA, target int, padRatio float64) *image.NRGBA {
	bbox, ok := opaqueBounds(img)
	if !ok {
		return imaging.Resize(img, target, target, imaging.Lanczos)
	}

	cropped := imaging.Crop(img, bbox)
	w, h := cropped.Bounds().Dx(), cropped.Bounds().Dy()
	side := max(w, h)

	square := imaging.New(side, side, color.NRGBA{})
	square = imaging.PasteCenter(square, cropped)

	if padRatio > 0 {
		padded := int(float64(side) * (1.0 + padRatio*2))
		canvas := imaging.New(padded, padded, color.NRGBA{})
		square = imaging.PasteCenter(canvas, square)
	}

	return imaging.Resize(square, target, target, imaging.Lanczos)
}

// opaqueBounds returns the bounding box of pixels with alpha > 0.
// The second return is false when every pixel is fully transparent.
func opaqueBounds(img *image.NRGBA) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X, b.Min.Y

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride : (y-b.Min.Y)*img.Stride+b.Dx()*4]
		for x := 0; x < b.Dx(); x++ {
			if row[x*4+3] == 0 {
				continue
			}
			px := b.Min.X + x
			if px < minX {
				minX = px
			}
			if px+1 > maxX {
				maxX = px + 1
			}
			if y < minY {
				minY = y
			}
			if y+1 > maxY {
				maxY = y + 1
			}
		}
	}

	if minX >= maxX || minY >= maxY {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX, maxY), true
}
