package world

import "mcvox/internal/block"

const (
	// VertexFloats is the vertex stride: position xyz, texture layer, shading,
	// packed light and a reserved slot.
	VertexFloats = 7
	// QuadFloats is the size of one face in a mesh list.
	QuadFloats = 4 * VertexFloats
	// QuadIndices is the index count of one face drawn as two triangles.
	QuadIndices = 6
)

// Subchunk is a 4x4x4 region of a chunk with its own CPU-side meshes. It has
// no GPU resources; its meshes are copied into the chunk's buffer on upload.
type Subchunk struct {
	chunk *Chunk
	coord SubchunkCoord
	// chunk-local position of the minimum corner
	lx, ly, lz int

	mesh            []float32
	translucentMesh []float32
}

func (s *Subchunk) Coord() SubchunkCoord { return s.coord }

// Mesh returns the opaque vertex list.
func (s *Subchunk) Mesh() []float32 { return s.mesh }

// TranslucentMesh returns the translucent vertex list.
func (s *Subchunk) TranslucentMesh() []float32 { return s.translucentMesh }

// QuadCount returns the number of opaque faces.
func (s *Subchunk) QuadCount() int { return len(s.mesh) / QuadFloats }

// TranslucentQuadCount returns the number of translucent faces.
func (s *Subchunk) TranslucentQuadCount() int { return len(s.translucentMesh) / QuadFloats }

// Rebuild regenerates both meshes from the current block and light data.
func (s *Subchunk) Rebuild() {
	s.mesh = s.mesh[:0]
	s.translucentMesh = s.translucentMesh[:0]

	c := s.chunk
	catalog := c.src.Catalog()

	for x := 0; x < SubchunkSizeX; x++ {
		for y := 0; y < SubchunkSizeY; y++ {
			for z := 0; z < SubchunkSizeZ; z++ {
				cx, cy, cz := s.lx+x, s.ly+y, s.lz+z
				id := c.grid.Block(cx, cy, cz)
				if id == block.Air {
					continue
				}
				bt := catalog.Type(id)
				if bt == nil {
					continue
				}

				if !bt.IsCube() {
					bl, sl := UnpackLight(c.grid.RawLight(cx, cy, cz))
					light := shaderLight(bl, sl)
					for f := range bt.Model.Faces {
						s.addFace(bt, f, cx, cy, cz, light)
					}
					continue
				}

				for f, d := range block.Directions {
					nid, nlight := c.sample(cx+d[0], cy+d[1], cz+d[2])
					if catalog.IsOpaque(nid) || (bt.Glass() && nid == id) {
						continue
					}
					bl, sl := UnpackLight(nlight)
					s.addFace(bt, f, cx, cy, cz, shaderLight(bl, sl))
				}
			}
		}
	}
}

func (s *Subchunk) addFace(bt *block.Type, face, x, y, z int, light float32) {
	mf := &bt.Model.Faces[face]
	tex := bt.TexIndices[face]

	mesh := s.mesh
	if bt.Translucent() {
		mesh = s.translucentMesh
	}
	for i := 0; i < 4; i++ {
		p := mf.Positions[i]
		mesh = append(mesh,
			p[0]+float32(x), p[1]+float32(y), p[2]+float32(z),
			float32(tex*4+i),
			mf.Shading[i],
			light,
			0,
		)
	}
	if bt.Translucent() {
		s.translucentMesh = mesh
	} else {
		s.mesh = mesh
	}
}
