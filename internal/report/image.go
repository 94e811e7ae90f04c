package report

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Colormap maps t in [0, 1] to a color.
type Colormap []colorful.Color

// Viridis approximates matplotlib's default colormap with nine stops.
var Viridis = Colormap{
	colorful.MustParseHex("#440154"),
	colorful.MustParseHex("#472d7b"),
	colorful.MustParseHex("#3b528b"),
	colorful.MustParseHex("#2c728e"),
	colorful.MustParseHex("#21918c"),
	colorful.MustParseHex("#28ae80"),
	colorful.MustParseHex("#5ec962"),
	colorful.MustParseHex("#addc30"),
	colorful.MustParseHex("#fde725"),
}

// At blends the two stops around t in Lab space. t is clamped to [0, 1].
func (c Colormap) At(t float64) colorful.Color {
	switch {
	case len(c) == 0:
		return colorful.Color{}
	case len(c) == 1 || t <= 0:
		return c[0]
	case t >= 1:
		return c[len(c)-1]
	}
	pos := t * float64(len(c)-1)
	i := int(pos)
	return c[i].BlendLab(c[i+1], pos-float64(i)).Clamped()
}

// Range returns the smallest and largest finite values of m. ok is false
// when m holds no finite value.
func (m Map) Range() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range m.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, lo <= hi
}

// Image renders m with one pixel per cell, row 0 at the top. Values are
// scaled linearly from the map's range; non-finite cells are transparent.
func Image(m Map, cmap Colormap) (*image.NRGBA, error) {
	if m.Rows <= 0 || m.Cols <= 0 || len(m.Data) != m.Rows*m.Cols {
		return nil, errors.New("report: map has no cells")
	}
	if len(cmap) == 0 {
		cmap = Viridis
	}
	lo, hi, ok := m.Range()

	img := image.NewNRGBA(image.Rect(0, 0, m.Cols, m.Rows))
	for iz := range m.Rows {
		for ix := range m.Cols {
			v := m.At(iz, ix)
			if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
				img.SetNRGBA(ix, iz, color.NRGBA{})
				continue
			}
			t := 0.0
			if hi > lo {
				t = (v - lo) / (hi - lo)
			}
			r, g, b := cmap.At(t).RGB255()
			img.SetNRGBA(ix, iz, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img, nil
}

// WritePNG renders m with Image and encodes it as PNG.
func WritePNG(w io.Writer, m Map, cmap Colormap) error {
	img, err := Image(m, cmap)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
