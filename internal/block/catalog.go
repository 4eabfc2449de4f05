package block

// TextureRef assigns a texture name to a face selector such as "all", "sides"
// or "top".
type TextureRef struct {
	Face string
	Name string
}

// Type is one immutable catalog entry.
type Type struct {
	ID       ID
	Name     string
	Model    *Model
	Textures []TextureRef
	// TexIndices holds one texture array layer group per model face.
	TexIndices []int
}

func (t *Type) IsCube() bool      { return t.Model.IsCube }
func (t *Type) Transparent() bool { return t.Model.Transparent }
func (t *Type) Glass() bool       { return t.Model.Glass }
func (t *Type) Translucent() bool { return t.Model.Translucent }

// Colliders returns the type's collision boxes relative to the voxel centre.
func (t *Type) Colliders() []AABB { return t.Model.Colliders }

// faceSelectors maps texture selectors to the cube faces they cover.
var faceSelectors = map[string][]Face{
	"all":    {FaceEast, FaceWest, FaceTop, FaceBottom, FaceNorth, FaceSouth},
	"sides":  {FaceEast, FaceWest, FaceNorth, FaceSouth},
	"x":      {FaceEast, FaceWest},
	"y":      {FaceTop, FaceBottom},
	"z":      {FaceNorth, FaceSouth},
	"right":  {FaceEast},
	"east":   {FaceEast},
	"left":   {FaceWest},
	"west":   {FaceWest},
	"top":    {FaceTop},
	"bottom": {FaceBottom},
	"front":  {FaceNorth},
	"north":  {FaceNorth},
	"back":   {FaceSouth},
	"south":  {FaceSouth},
}

// TextureSet assigns array layers to texture names in registration order.
type TextureSet struct {
	names []string
	index map[string]int
}

func newTextureSet() *TextureSet {
	return &TextureSet{index: make(map[string]int)}
}

// Add registers name if needed and returns its index.
func (s *TextureSet) Add(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	i := len(s.names)
	s.names = append(s.names, name)
	s.index[name] = i
	return i
}

// Index returns the index of a registered texture.
func (s *TextureSet) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Names returns the registered texture names in index order.
func (s *TextureSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *TextureSet) Len() int { return len(s.names) }

// newType resolves texture selectors into per-face indices. Selectors apply in
// declaration order so later ones override earlier ones. Faces beyond the
// model's face count are ignored.
func newType(id ID, name string, model *Model, textures []TextureRef, set *TextureSet) *Type {
	t := &Type{
		ID:         id,
		Name:       name,
		Model:      model,
		Textures:   append([]TextureRef(nil), textures...),
		TexIndices: make([]int, len(model.Faces)),
	}
	for _, ref := range textures {
		idx := set.Add(ref.Name)
		for _, f := range faceSelectors[ref.Face] {
			if int(f) < len(t.TexIndices) {
				t.TexIndices[f] = idx
			}
		}
	}
	return t
}

// Catalog is the read-only table of block types indexed by ID. It is built
// once at startup and shared by pointer.
type Catalog struct {
	types    []*Type
	textures *TextureSet
}

// Type returns the entry for id, or nil for air and unknown ids.
func (c *Catalog) Type(id ID) *Type {
	if int(id) >= len(c.types) {
		return nil
	}
	return c.types[id]
}

// Len returns the size of the id space, air included.
func (c *Catalog) Len() int { return len(c.types) }

// IsOpaque reports whether id hides its neighbours' faces. Air and unknown
// ids are not opaque.
func (c *Catalog) IsOpaque(id ID) bool {
	t := c.Type(id)
	return t != nil && !t.Transparent()
}

// Lookup finds a type by name.
func (c *Catalog) Lookup(name string) (*Type, bool) {
	for _, t := range c.types {
		if t != nil && t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Textures returns the texture names in array layer order.
func (c *Catalog) Textures() []string { return c.textures.Names() }
