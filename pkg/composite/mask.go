package composite

import (
	"fmt"
	"image"
	"image/color"
)

// Mask is a width x height boolean pixel grid. Set cells mark pixels that
// belong to a shape; boolean combination of masks expresses silhouette
// extraction and cutouts.
type Mask struct {
	W, H int
	bits []bool
}

// NewMask returns an empty w x h mask.
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, bits: make([]bool, w*h)}
}

// OpaqueMask returns the mask of pixels whose alpha exceeds minAlpha.
func OpaqueMask(img *image.NRGBA, minAlpha uint8) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.H; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+m.W*4]
		for x := 0; x < m.W; x++ {
			if row[x*4+3] > minAlpha {
				m.bits[y*m.W+x] = true
			}
		}
	}
	return m
}

// At reports whether the cell at (x, y) is set.
func (m *Mask) At(x, y int) bool {
	return m.bits[y*m.W+x]
}

// Set marks the cell at (x, y).
func (m *Mask) Set(x, y int) {
	m.bits[y*m.W+x] = true
}

// Count returns the number of set cells.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// FillHoles returns a copy of the mask with every enclosed hole filled.
//
// A flood fill (4-connectivity) walks from the four corners across unset
// cells; anything it cannot reach is either shape or a hole enclosed by
// shape, and both end up set in the result. This is how an outline drawing
// becomes a solid silhouette. A corner already covered by shape does not
// seed the fill.
func (m *Mask) FillHoles() *Mask {
	outside := make([]bool, len(m.bits))
	var queue []int

	seed := func(x, y int) {
		i := y*m.W + x
		if !m.bits[i] && !outside[i] {
			outside[i] = true
			queue = append(queue, i)
		}
	}
	seed(0, 0)
	seed(m.W-1, 0)
	seed(0, m.H-1)
	seed(m.W-1, m.H-1)

	for len(queue) > 0 {
		i := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x, y := i%m.W, i/m.W

		if x > 0 {
			seed(x-1, y)
		}
		if x < m.W-1 {
			seed(x+1, y)
		}
		if y > 0 {
			seed(x, y-1)
		}
		if y < m.H-1 {
			seed(x, y+1)
		}
	}

	filled := NewMask(m.W, m.H)
	for i := range filled.bits {
		filled.bits[i] = !outside[i]
	}
	return filled
}

// Dilate returns the mask grown by passes iterations of a 3x3 maximum
// filter: each pass sets every cell with at least one set 8-neighbor.
// Used to slightly enlarge a cutout so it reads at small sizes.
func (m *Mask) Dilate(passes int) *Mask {
	cur := m.clone()
	for i := 0; i < passes; i++ {
		next := NewMask(m.W, m.H)
		for y := 0; y < m.H; y++ {
			for x := 0; x < m.W; x++ {
				if cur.neighborhood(x, y) {
					next.bits[y*m.W+x] = true
				}
			}
		}
		cur = next
	}
	return cur
}

// neighborhood reports whether (x, y) or any of its 8 neighbors is set.
func (m *Mask) neighborhood(x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= m.W || ny < 0 || ny >= m.H {
				continue
			}
			if m.bits[ny*m.W+nx] {
				return true
			}
		}
	}
	return false
}

// Union returns the cells set in either mask.
func (m *Mask) Union(o *Mask) *Mask {
	m.check(o)
	out := NewMask(m.W, m.H)
	for i := range m.bits {
		out.bits[i] = m.bits[i] || o.bits[i]
	}
	return out
}

// Intersect returns the cells set in both masks.
func (m *Mask) Intersect(o *Mask) *Mask {
	m.check(o)
	out := NewMask(m.W, m.H)
	for i := range m.bits {
		out.bits[i] = m.bits[i] && o.bits[i]
	}
	return out
}

// Subtract returns the cells set in m but not in o.
func (m *Mask) Subtract(o *Mask) *Mask {
	m.check(o)
	out := NewMask(m.W, m.H)
	for i := range m.bits {
		out.bits[i] = m.bits[i] && !o.bits[i]
	}
	return out
}

// Image renders the mask as a bitmap: opaque c where set, fully
// transparent (zero) elsewhere.
func (m *Mask) Image(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.W, m.H))
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.bits[y*m.W+x] {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}

func (m *Mask) clone() *Mask {
	out := NewMask(m.W, m.H)
	copy(out.bits, m.bits)
	return out
}

// check panics on mismatched dimensions. Masks are always derived from
// renders at the same size, so a mismatch is a programming error.
func (m *Mask) check(o *Mask) {
	if m.W != o.W || m.H != o.H {
		panic(fmt.Sprintf("composite: mask size mismatch: %dx%d vs %dx%d", m.W, m.H, o.W, o.H))
	}
}
