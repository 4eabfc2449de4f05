package block

import "github.com/go-gl/mathgl/mgl32"

// ModelFace is one quad of a model: four corner positions relative to the
// voxel centre and a shading factor per corner.
type ModelFace struct {
	Positions [4]mgl32.Vec3
	Shading   [4]float32
}

// Model is the shape shared by every block type that uses it.
type Model struct {
	Name string
	// Transparent blocks do not hide the faces of their neighbours.
	Transparent bool
	// IsCube models are culled face by face against their neighbours; other
	// models always emit every face.
	IsCube bool
	// Glass cubes also hide faces shared with a neighbour of the same id.
	Glass bool
	// Translucent faces go to the translucent mesh and are blended.
	Translucent bool
	Faces       []ModelFace
	Colliders   []AABB
}

// Per-face brightness used in place of real ambient occlusion.
var cubeShading = [FaceCount]float32{0.6, 0.6, 1.0, 0.4, 0.8, 0.8}

// unitCube lists corner signs per face in Face order. Each corner is mapped onto
// the min (-1) or max (+1) side of a box.
var unitCube = [FaceCount][4][3]float32{
	{{1, 1, 1}, {1, -1, 1}, {1, -1, -1}, {1, 1, -1}},
	{{-1, 1, -1}, {-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}},
	{{1, 1, 1}, {1, 1, -1}, {-1, 1, -1}, {-1, 1, 1}},
	{{-1, -1, 1}, {-1, -1, -1}, {1, -1, -1}, {1, -1, 1}},
	{{-1, 1, 1}, {-1, -1, 1}, {1, -1, 1}, {1, 1, 1}},
	{{1, 1, -1}, {1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}},
}

// boxFaces builds the six faces of the box [min, max] in Face order.
func boxFaces(min, max mgl32.Vec3) []ModelFace {
	faces := make([]ModelFace, FaceCount)
	for f := 0; f < FaceCount; f++ {
		for c := 0; c < 4; c++ {
			var p mgl32.Vec3
			for axis := 0; axis < 3; axis++ {
				if unitCube[f][c][axis] < 0 {
					p[axis] = min[axis]
				} else {
					p[axis] = max[axis]
				}
			}
			faces[f].Positions[c] = p
			faces[f].Shading[c] = cubeShading[f]
		}
	}
	return faces
}

var (
	unitMin = mgl32.Vec3{-0.5, -0.5, -0.5}
	unitMax = mgl32.Vec3{0.5, 0.5, 0.5}
)

func fullCollider() []AABB {
	return []AABB{{Min: unitMin, Max: unitMax}}
}

// Cube is the default solid block.
var Cube = &Model{
	Name:      "cube",
	IsCube:    true,
	Faces:     boxFaces(unitMin, unitMax),
	Colliders: fullCollider(),
}

// Glass is a see-through cube that merges with neighbouring glass of the same id.
var Glass = &Model{
	Name:        "glass",
	Transparent: true,
	IsCube:      true,
	Glass:       true,
	Faces:       boxFaces(unitMin, unitMax),
	Colliders:   fullCollider(),
}

// Leaves is a see-through cube that keeps faces between neighbouring leaves.
var Leaves = &Model{
	Name:        "leaves",
	Transparent: true,
	IsCube:      true,
	Faces:       boxFaces(unitMin, unitMax),
	Colliders:   fullCollider(),
}

// Liquid is a translucent cube with a lowered surface and no collision.
var Liquid = &Model{
	Name:        "liquid",
	Transparent: true,
	IsCube:      true,
	Glass:       true,
	Translucent: true,
	Faces:       boxFaces(unitMin, mgl32.Vec3{0.5, 0.375, 0.5}),
}

// Slab is the lower half of a cube.
var Slab = &Model{
	Name:        "slab",
	Transparent: true,
	Faces:       boxFaces(unitMin, mgl32.Vec3{0.5, 0, 0.5}),
	Colliders:   []AABB{{Min: unitMin, Max: mgl32.Vec3{0.5, 0, 0.5}}},
}

// Torch is a thin post standing on the block below.
var Torch = &Model{
	Name:        "torch",
	Transparent: true,
	Faces:       boxFaces(mgl32.Vec3{-0.0625, -0.5, -0.0625}, mgl32.Vec3{0.0625, 0.125, 0.0625}),
}

// Flat is a single double-sided sheet lying on the floor, used for rails and carpets.
var Flat = &Model{
	Name:        "flat",
	Transparent: true,
	Faces: []ModelFace{
		{
			Positions: [4]mgl32.Vec3{{0.5, -0.4375, 0.5}, {0.5, -0.4375, -0.5}, {-0.5, -0.4375, -0.5}, {-0.5, -0.4375, 0.5}},
			Shading:   [4]float32{1, 1, 1, 1},
		},
		{
			Positions: [4]mgl32.Vec3{{-0.5, -0.4375, 0.5}, {-0.5, -0.4375, -0.5}, {0.5, -0.4375, -0.5}, {0.5, -0.4375, 0.5}},
			Shading:   [4]float32{0.4, 0.4, 0.4, 0.4},
		},
	},
}

const diag = 0.3535

// Plant is two crossed diagonal sheets, each drawn from both sides.
var Plant = &Model{
	Name:        "plant",
	Transparent: true,
	Faces: []ModelFace{
		{Positions: [4]mgl32.Vec3{{-diag, 0.5, diag}, {-diag, -0.5, diag}, {diag, -0.5, -diag}, {diag, 0.5, -diag}}, Shading: [4]float32{1, 1, 1, 1}},
		{Positions: [4]mgl32.Vec3{{diag, 0.5, -diag}, {diag, -0.5, -diag}, {-diag, -0.5, diag}, {-diag, 0.5, diag}}, Shading: [4]float32{1, 1, 1, 1}},
		{Positions: [4]mgl32.Vec3{{-diag, 0.5, -diag}, {-diag, -0.5, -diag}, {diag, -0.5, diag}, {diag, 0.5, diag}}, Shading: [4]float32{1, 1, 1, 1}},
		{Positions: [4]mgl32.Vec3{{diag, 0.5, diag}, {diag, -0.5, diag}, {-diag, -0.5, -diag}, {-diag, 0.5, -diag}}, Shading: [4]float32{1, 1, 1, 1}},
	},
}

// Models maps the identifiers accepted by the catalog's model key.
var Models = map[string]*Model{
	"cube":   Cube,
	"glass":  Glass,
	"leaves": Leaves,
	"liquid": Liquid,
	"slab":   Slab,
	"torch":  Torch,
	"flat":   Flat,
	"plant":  Plant,
}
