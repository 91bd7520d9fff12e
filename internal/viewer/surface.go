package viewer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var background = color.RGBA{R: 0x06, G: 0x04, B: 0x14, A: 0xff}

// canvas is the offscreen image the dot grid paints into. The image is
// allocated lazily so Resize may be called from Layout.
type canvas struct {
	img    *ebiten.Image
	pw, ph int
	scale  float64
	dirty  bool
}

func (c *canvas) Resize(pw, ph int, scale float64) {
	if pw == c.pw && ph == c.ph && scale == c.scale && c.img != nil {
		return
	}
	c.pw, c.ph, c.scale = pw, ph, scale
	c.dirty = true
}

func (c *canvas) ensure() *ebiten.Image {
	if !c.dirty {
		return c.img
	}
	c.dirty = false
	if c.img != nil {
		c.img.Deallocate()
		c.img = nil
	}
	if c.pw > 0 && c.ph > 0 {
		c.img = ebiten.NewImage(c.pw, c.ph)
	}
	return c.img
}

func (c *canvas) Clear() {
	if img := c.ensure(); img != nil {
		img.Fill(background)
	}
}

func (c *canvas) FillCircle(cx, cy, r float64, clr color.RGBA) {
	img := c.ensure()
	if img == nil {
		return
	}
	s := c.scale
	vector.DrawFilledCircle(img, float32(cx*s), float32(cy*s), float32(r*s), clr, true)
}

// window is the dot grid's container: the game window in logical pixels.
type window struct {
	w, h  float64
	ratio float64
}

func (w *window) Size() (float64, float64) { return w.w, w.h }
func (w *window) PixelRatio() float64       { return w.ratio }
