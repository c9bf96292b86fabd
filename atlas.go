package bones

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bones/scene"
	"github.com/phanxgames/bones/skeleton"
)

// TextureAtlas binds atlas data to the page image it describes. Region
// textures are created on first use and cached.
type TextureAtlas struct {
	name     string
	data     *skeleton.TextureAtlasData
	base     *ebiten.Image
	textures map[*skeleton.TextureData]*scene.Texture
}

// Reset clears the binding for reuse.
func (t *TextureAtlas) Reset() {
	clear(t.textures)
	t.name = ""
	t.data = nil
	t.base = nil
}

// Name returns the name the atlas is registered under.
func (t *TextureAtlas) Name() string { return t.name }

// Data returns the atlas description.
func (t *TextureAtlas) Data() *skeleton.TextureAtlasData { return t.data }

// Base returns the page image, or nil if none is attached yet.
func (t *TextureAtlas) Base() *ebiten.Image { return t.base }

// setBase attaches a page image. Cached region textures are rebuilt on the
// next lookup when the image changes.
func (t *TextureAtlas) setBase(img *ebiten.Image) {
	if img == t.base {
		return
	}
	t.base = img
	clear(t.textures)
}

// Texture returns the region texture for name, or nil if the atlas has no
// such region or no page image.
func (t *TextureAtlas) Texture(name string) *scene.Texture {
	td := t.data.Texture(name)
	if td == nil {
		return nil
	}
	return t.texture(td)
}

func (t *TextureAtlas) texture(td *skeleton.TextureData) *scene.Texture {
	if t.base == nil || td == nil {
		return nil
	}
	if tex, ok := t.textures[td]; ok {
		return tex
	}
	tex := scene.NewTexture(t.base, td.Region, td.Rotated)
	if !td.Trim.Empty() {
		tex.OffsetX = float64(-td.Trim.Min.X)
		tex.OffsetY = float64(-td.Trim.Min.Y)
	}
	if t.textures == nil {
		t.textures = make(map[*skeleton.TextureData]*scene.Texture)
	}
	t.textures[td] = tex
	return tex
}
