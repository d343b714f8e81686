// Package raster loads SVG artwork and rasterizes it to fixed-size
// straight-alpha bitmaps.
//
// Besides whole-document rendering, a Document supports named layers:
// line ranges into the source file that select a subset of its elements.
// A layer render wraps the selected lines in the document's own header
// and closing tag, so sub-shapes (a figure without its frame, the eyes
// without the figure) can be rasterized in the original coordinate
// space. Line ranges are zero-based and end-exclusive; line 0 must be
// the <svg> element and the final line its closing tag.
package raster

import (
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/mkerner/iconforge/pkg/errors"
)

// Layer selects source lines [From, To) as a renderable sub-document.
type Layer struct {
	From int
	To   int
}

// Document is a loaded SVG source with its named layers.
type Document struct {
	path   string
	lines  []string
	layers map[string]Layer
}

// Load reads the SVG at path and validates the layer table against it.
// A missing file is reported as a FILE_NOT_FOUND error; this is the
// pipeline's explicit source existence check.
func Load(path string, layers map[string]Layer) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "source image not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "failed to read %s", path)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidSource, "%s: need at least an <svg> element and its closing tag", path)
	}

	for name, l := range layers {
		if l.From <= 0 || l.To < l.From || l.To > len(lines)-1 {
			return nil, errors.New(errors.ErrCodeInvalidLayer,
				"layer %q range [%d,%d) out of bounds for %d source lines", name, l.From, l.To, len(lines))
		}
	}

	return &Document{path: path, lines: lines, layers: layers}, nil
}

// Path returns the source file path.
func (d *Document) Path() string {
	return d.path
}

// Render rasterizes the whole document to a size x size bitmap.
func (d *Document) Render(size int) (*image.NRGBA, error) {
	return rasterize(strings.Join(d.lines, "\n"), size)
}

// RenderLayer rasterizes only the named layer's lines, wrapped in the
// document's header and closing tag.
func (d *Document) RenderLayer(name string, size int) (*image.NRGBA, error) {
	l, ok := d.layers[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidLayer, "unknown layer %q", name)
	}

	parts := make([]string, 0, l.To-l.From+2)
	parts = append(parts, d.lines[0])
	parts = append(parts, d.lines[l.From:l.To]...)
	parts = append(parts, d.lines[len(d.lines)-1])
	return rasterize(strings.Join(parts, "\n"), size)
}

// RenderFile rasterizes a standalone SVG file, such as an auxiliary
// glyph, to a size x size bitmap.
func RenderFile(path string, size int) (*image.NRGBA, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "glyph source not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "failed to read %s", path)
	}
	return rasterize(string(data), size)
}

// rasterize renders SVG markup to a size x size NRGBA bitmap. The
// artwork is scaled to fit while preserving its aspect ratio and
// centered in the output.
func rasterize(svg string, size int) (*image.NRGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "failed to parse SVG")
	}

	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		w, h = float64(size), float64(size)
	}

	scale := float64(size) / max(w, h)
	outW := int(w * scale)
	outH := int(h * scale)
	offsetX := (size - outW) / 2
	offsetY := (size - outH) / 2
	icon.SetTarget(float64(offsetX), float64(offsetY), float64(outW), float64(outH))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	// Transforms downstream assume straight alpha.
	return imaging.Clone(rgba), nil
}
