package scene

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture is a view onto a rectangular region of a base image (an atlas page).
// The sub-image is created on first use and reused afterwards.
type Texture struct {
	Base    *ebiten.Image
	Frame   image.Rectangle // region inside Base, in stored (possibly rotated) orientation
	Rotated bool            // true if the region is stored 90 degrees clockwise in the atlas
	OffsetX float64         // trim offset applied before the node transform
	OffsetY float64

	sub *ebiten.Image
}

// NewTexture creates a texture over frame inside base.
func NewTexture(base *ebiten.Image, frame image.Rectangle, rotated bool) *Texture {
	return &Texture{Base: base, Frame: frame, Rotated: rotated}
}

// Image returns the sub-image for the texture region, or nil without a base.
func (t *Texture) Image() *ebiten.Image {
	if t == nil || t.Base == nil {
		return nil
	}
	if t.sub == nil {
		t.sub = t.Base.SubImage(t.Frame).(*ebiten.Image)
	}
	return t.sub
}

// Size returns the displayed (unrotated) width and height.
func (t *Texture) Size() (w, h float64) {
	if t == nil {
		return 0, 0
	}
	dx, dy := float64(t.Frame.Dx()), float64(t.Frame.Dy())
	if t.Rotated {
		return dy, dx
	}
	return dx, dy
}

// geoM returns the pre-transform that maps the stored region to its displayed
// orientation, including the trim offset.
func (t *Texture) geoM() ebiten.GeoM {
	var m ebiten.GeoM
	if t.Rotated {
		// Rotated regions are stored 90° CW: rotate back and shift down by the stored width.
		m.Rotate(-1.5707963267948966)
		m.Translate(0, float64(t.Frame.Dx()))
	}
	if t.OffsetX != 0 || t.OffsetY != 0 {
		m.Translate(t.OffsetX, t.OffsetY)
	}
	return m
}

// magentaTexture is created on first use from the game goroutine.
var magentaTexture *Texture

// MagentaTexture returns a shared 1x1 magenta texture used where a named
// texture could not be resolved.
func MagentaTexture() *Texture {
	if magentaTexture == nil {
		img := ebiten.NewImage(1, 1)
		img.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
		magentaTexture = &Texture{Base: img, Frame: image.Rect(0, 0, 1, 1)}
	}
	return magentaTexture
}

// IsPlaceholder reports whether t is the shared magenta placeholder.
func (t *Texture) IsPlaceholder() bool {
	return t != nil && t == magentaTexture
}
