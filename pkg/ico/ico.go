// Package ico writes multi-size Windows .ico files from rendered icons.
package ico

import (
	"image"
	"os"

	goico "github.com/sergeymakinen/go-ico"

	"github.com/mkerner/iconforge/pkg/errors"
)

// DefaultSizes is the common multi-size favicon set.
var DefaultSizes = []int{16, 32, 48, 256}

// RenderFunc produces the icon bitmap for one ICO size.
type RenderFunc func(size int) (*image.NRGBA, error)

// Write renders every size and encodes them into a single .ico at path.
func Write(path string, render RenderFunc, sizes []int) error {
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}

	images := make([]image.Image, 0, len(sizes))
	for _, size := range sizes {
		img, err := render(size)
		if err != nil {
			return err
		}
		images = append(images, img)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "failed to create %s", path)
	}
	if err := goico.EncodeAll(f, images); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeEncode, err, "failed to encode %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "failed to write %s", path)
	}
	return nil
}
