// Package icns packages rendered icons into a macOS .icns bundle.
//
// The heavy lifting is done by the OS-provided iconutil: this package
// writes the fixed .iconset directory layout iconutil expects and shells
// out for the final conversion.
package icns

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mkerner/iconforge/pkg/errors"
)

// IconsetSizes maps the filenames iconutil requires to their pixel sizes.
// The @2x entries are the same artwork at doubled resolution.
var IconsetSizes = map[string]int{
	"icon_16x16.png":      16,
	"icon_16x16@2x.png":   32,
	"icon_32x32.png":      32,
	"icon_32x32@2x.png":   64,
	"icon_128x128.png":    128,
	"icon_128x128@2x.png": 256,
	"icon_256x256.png":    256,
	"icon_256x256@2x.png": 512,
	"icon_512x512.png":    512,
	"icon_512x512@2x.png": 1024,
}

// RenderFunc produces the icon bitmap for one iconset size.
type RenderFunc func(size int) (*image.NRGBA, error)

// Available reports whether iconutil can be found on PATH.
func Available() bool {
	_, err := exec.LookPath("iconutil")
	return err == nil
}

// WriteIconset renders every iconset entry into dir.
func WriteIconset(dir string, render RenderFunc) error {
	for name, size := range IconsetSizes {
		img, err := render(size)
		if err != nil {
			return err
		}

		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeEncode, err, "failed to create %s", path)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return errors.Wrap(errors.ErrCodeEncode, err, "failed to encode %s", path)
		}
		if err := f.Close(); err != nil {
			return errors.Wrap(errors.ErrCodeEncode, err, "failed to write %s", path)
		}
	}
	return nil
}

// Pack converts an .iconset directory into an .icns file by shelling out
// to iconutil. A non-zero exit is terminal and carries iconutil's stderr.
func Pack(ctx context.Context, iconset, out string) error {
	if !Available() {
		return errors.New(errors.ErrCodeToolFailed,
			"icns packaging requires iconutil (ships with macOS; install the Xcode command line tools)")
	}

	cmd := exec.CommandContext(ctx, "iconutil", "--convert", "icns", iconset, "--output", out)

	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return errors.Wrap(errors.ErrCodeToolFailed, err, "iconutil: %s", errBuf.String())
	}
	return nil
}
