package skeleton

import "image"

// TextureAtlasData describes the regions packed into one atlas page.
type TextureAtlasData struct {
	Name      string
	ImagePath string
	Width     int
	Height    int
	Scale     float64

	textures map[string]*TextureData
}

// NewTextureAtlasData creates an empty atlas description.
func NewTextureAtlasData(name string) *TextureAtlasData {
	return &TextureAtlasData{Name: name, Scale: 1, textures: make(map[string]*TextureData)}
}

// AddTexture registers t and sets its Parent.
func (d *TextureAtlasData) AddTexture(t *TextureData) {
	if d.textures == nil {
		d.textures = make(map[string]*TextureData)
	}
	t.Parent = d
	d.textures[t.Name] = t
}

// Texture returns the region with the given name, or nil.
func (d *TextureAtlasData) Texture(name string) *TextureData {
	return d.textures[name]
}

// Len returns the number of regions.
func (d *TextureAtlasData) Len() int {
	return len(d.textures)
}

// TextureData is one packed region.
type TextureData struct {
	Name    string
	Region  image.Rectangle
	Rotated bool
	// Trim is the untrimmed frame; zero when the region was not trimmed.
	Trim   image.Rectangle
	Parent *TextureAtlasData
}
