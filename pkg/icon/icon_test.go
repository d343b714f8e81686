package icon

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkerner/iconforge/pkg/composite"
	"github.com/mkerner/iconforge/pkg/errors"
	"github.com/mkerner/iconforge/pkg/raster"
)

// testSVG is a minimal source in the expected layered layout: a white
// backdrop, an outer frame, a figure outline with two enclosed eyes.
const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
<rect x="0" y="0" width="100" height="100" fill="#FFFFFF"/>
<rect x="5" y="5" width="90" height="90" fill="none" stroke="#000000" stroke-width="2"/>
<path d="M20 20 H80 V80 H20 Z" fill="none" stroke="#000000" stroke-width="4"/>
<circle cx="40" cy="50" r="5" fill="#000000"/>
<circle cx="60" cy="50" r="5" fill="#000000"/>
</svg>`

var testLayers = map[string]raster.Layer{
	"figure": {From: 3, To: 6},
	"eyes":   {From: 4, To: 6},
}

func loadTestDoc(t *testing.T) *raster.Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.svg")
	if err := os.WriteFile(path, []byte(testSVG), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := raster.Load(path, testLayers)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func testAppSpec() AppSpec {
	return AppSpec{
		Canvas:         512,
		CornerRadius:   112,
		Background:     "#5C3A1E",
		Inset:          0.75,
		WhiteThreshold: composite.DefaultWhiteThreshold,
	}
}

func testTraySpec() TraySpec {
	return TraySpec{
		Size:           44,
		StencilSize:    200,
		FigureLayer:    "figure",
		EyesLayer:      "eyes",
		WhiteThreshold: composite.DefaultWhiteThreshold,
		AlphaThreshold: 20,
		DilatePasses:   2,
		BadgeColor:     "#FF9500",
		BadgeRadius:    7,
	}
}

func TestAppDimensions(t *testing.T) {
	doc := loadTestDoc(t)
	spec := testAppSpec()

	for _, size := range []int{32, 128, 512} {
		img, err := App(doc, spec, size)
		if err != nil {
			t.Fatalf("App(%d): %v", size, err)
		}
		if img.Bounds().Dx() != size || img.Bounds().Dy() != size {
			t.Errorf("App(%d) bounds = %v", size, img.Bounds())
		}
	}
}

func TestAppComposition(t *testing.T) {
	doc := loadTestDoc(t)
	spec := testAppSpec()

	img, err := App(doc, spec, spec.Canvas)
	if err != nil {
		t.Fatal(err)
	}

	// Rounded corners leave the canvas corner transparent.
	if got := img.NRGBAAt(1, 1).A; got != 0 {
		t.Errorf("corner alpha = %d, want 0", got)
	}

	// The canvas center shows the background: the artwork's backdrop is
	// keyed out there.
	center := img.NRGBAAt(spec.Canvas/2, spec.Canvas/2)
	if center != (color.NRGBA{0x5C, 0x3A, 0x1E, 255}) {
		t.Errorf("center = %v, want background %v", center, color.NRGBA{0x5C, 0x3A, 0x1E, 255})
	}

	// The artwork's strokes are recolored to pure white somewhere.
	found := false
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 255 && img.Pix[i+1] == 255 && img.Pix[i+2] == 255 && img.Pix[i+3] == 255 {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected white artwork pixels on the background")
	}
}

func TestAppMissingLayerSource(t *testing.T) {
	_, err := raster.Load(filepath.Join(t.TempDir(), "gone.svg"), testLayers)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestStencil(t *testing.T) {
	doc := loadTestDoc(t)
	spec := testTraySpec()

	img, err := Stencil(doc, spec, 100)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		x, y   int
		opaque bool
	}{
		{"figure interior filled", 50, 30, true},
		{"figure outline kept", 20, 20, true},
		{"eye cut out", 40, 50, false},
		{"second eye cut out", 60, 50, false},
		{"frame kept as outline", 5, 50, true},
		{"between frame and figure empty", 12, 50, false},
		{"canvas corner empty", 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := img.NRGBAAt(tt.x, tt.y)
			if tt.opaque {
				if got != (color.NRGBA{255, 255, 255, 255}) {
					t.Errorf("pixel (%d,%d) = %v, want opaque white", tt.x, tt.y, got)
				}
			} else if got.A != 0 {
				t.Errorf("pixel (%d,%d) alpha = %d, want 0", tt.x, tt.y, got.A)
			}
		})
	}
}

func TestStencilIsBinary(t *testing.T) {
	doc := loadTestDoc(t)
	img, err := Stencil(doc, testTraySpec(), 64)
	if err != nil {
		t.Fatal(err)
	}

	// Every pixel is either opaque white or fully transparent zero.
	for i := 0; i < len(img.Pix); i += 4 {
		a := img.Pix[i+3]
		if a != 0 && a != 255 {
			t.Fatalf("pixel %d has partial alpha %d", i/4, a)
		}
		if a == 0 && (img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0) {
			t.Fatalf("transparent pixel %d has color", i/4)
		}
	}
}

func TestTray(t *testing.T) {
	doc := loadTestDoc(t)
	spec := testTraySpec()

	img, err := Tray(doc, spec)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != spec.Size || img.Bounds().Dy() != spec.Size {
		t.Errorf("bounds = %v, want %dx%d", img.Bounds(), spec.Size, spec.Size)
	}
}

func TestTrayBadge(t *testing.T) {
	doc := loadTestDoc(t)
	spec := testTraySpec()

	img, err := TrayBadge(doc, spec)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != spec.Size || img.Bounds().Dy() != spec.Size {
		t.Errorf("bounds = %v, want %dx%d", img.Bounds(), spec.Size, spec.Size)
	}

	// Dot center sits at (Size-r, r) in the badge color.
	dot := img.NRGBAAt(spec.Size-int(spec.BadgeRadius), int(spec.BadgeRadius))
	if dot != (color.NRGBA{0xFF, 0x95, 0x00, 255}) {
		t.Errorf("badge pixel = %v, want %v", dot, color.NRGBA{0xFF, 0x95, 0x00, 255})
	}
}

func TestGlyph(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dot.svg")
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
<rect x="0" y="0" width="10" height="10" fill="#FFFFFF"/>
<circle cx="5" cy="5" r="3" fill="#336699"/>
</svg>`
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := Glyph(path, 20, composite.Black, composite.DefaultWhiteThreshold)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 20 {
		t.Errorf("bounds = %v, want 20x20", img.Bounds())
	}

	if got := img.NRGBAAt(10, 10); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("glyph center = %v, want opaque black", got)
	}
	if got := img.NRGBAAt(0, 0).A; got != 0 {
		t.Errorf("keyed backdrop corner alpha = %d, want 0", got)
	}

	if _, err := Glyph(filepath.Join(dir, "missing.svg"), 20, composite.Black, composite.DefaultWhiteThreshold); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestSourceGlyph(t *testing.T) {
	doc := loadTestDoc(t)

	img, err := SourceGlyph(doc, 40, composite.Black, composite.DefaultWhiteThreshold)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 40 {
		t.Errorf("bounds = %v, want 40x40", img.Bounds())
	}
	// The backdrop is keyed out; the corner is past the frame stroke.
	if got := img.NRGBAAt(0, 0).A; got != 0 {
		t.Errorf("corner alpha = %d, want 0", got)
	}
}
