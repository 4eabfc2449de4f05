// Package block describes block types: their shape, textures, flags and
// collision boxes, and the catalog file that declares them.
package block

// ID identifies a block type in the catalog. Air is always 0.
type ID uint16

const Air ID = 0

// Face indexes the six faces of a cube model. The order matches Directions.
type Face int

const (
	FaceEast   Face = iota // +X
	FaceWest               // -X
	FaceTop                // +Y
	FaceBottom             // -Y
	FaceNorth              // +Z
	FaceSouth              // -Z
)

// FaceCount is the number of faces on a cube model.
const FaceCount = 6

// Directions holds the unit offset of the neighbour each cube face looks at.
var Directions = [FaceCount][3]int{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

func (f Face) String() string {
	switch f {
	case FaceEast:
		return "east"
	case FaceWest:
		return "west"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceNorth:
		return "north"
	case FaceSouth:
		return "south"
	}
	return "unknown"
}
