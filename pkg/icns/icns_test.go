package icns

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkerner/iconforge/pkg/errors"
)

func solidRender(size int) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0x40
		img.Pix[i+3] = 255
	}
	return img, nil
}

func TestWriteIconset(t *testing.T) {
	dir := t.TempDir()

	if err := WriteIconset(dir, solidRender); err != nil {
		t.Fatal(err)
	}

	for name, size := range IconsetSizes {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("missing iconset entry %s: %v", name, err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if cfg.Width != size || cfg.Height != size {
			t.Errorf("%s: %dx%d, want %dx%d", name, cfg.Width, cfg.Height, size, size)
		}
	}
}

func TestWriteIconsetRenderError(t *testing.T) {
	boom := errors.New(errors.ErrCodeInternal, "render failed")
	err := WriteIconset(t.TempDir(), func(size int) (*image.NRGBA, error) {
		return nil, boom
	})
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("error = %v, want the render error", err)
	}
}

func TestPack(t *testing.T) {
	if !Available() {
		t.Skip("iconutil not available")
	}

	dir := filepath.Join(t.TempDir(), "test.iconset")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := WriteIconset(dir, solidRender); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "icon.icns")
	if err := Pack(context.Background(), dir, out); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(out); err != nil {
		t.Errorf("icns file not written: %v", err)
	}
}

func TestPackBadIconset(t *testing.T) {
	if !Available() {
		t.Skip("iconutil not available")
	}

	// An empty directory is not a valid iconset; iconutil exits non-zero.
	err := Pack(context.Background(), t.TempDir(), filepath.Join(t.TempDir(), "icon.icns"))
	if !errors.Is(err, errors.ErrCodeToolFailed) {
		t.Errorf("error = %v, want TOOL_FAILED", err)
	}
}
