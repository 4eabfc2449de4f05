package world

import "github.com/go-gl/mathgl/mgl32"

const (
	// Chunk dimensions
	ChunkSizeX = 16
	ChunkSizeY = 128
	ChunkSizeZ = 16

	// Subchunk dimensions
	SubchunkSizeX = 4
	SubchunkSizeY = 4
	SubchunkSizeZ = 4

	SubchunksX = ChunkSizeX / SubchunkSizeX
	SubchunksY = ChunkSizeY / SubchunkSizeY
	SubchunksZ = ChunkSizeZ / SubchunkSizeZ

	// SubchunkCount is the number of subchunks in a chunk.
	SubchunkCount = SubchunksX * SubchunksY * SubchunksZ

	ChunkVolume = ChunkSizeX * ChunkSizeY * ChunkSizeZ
)

// ChunkCoord identifies a chunk by its position in chunk units.
type ChunkCoord struct {
	X, Y, Z int
}

// Origin returns the world position of the chunk's minimum corner.
func (c ChunkCoord) Origin() (int, int, int) {
	return c.X * ChunkSizeX, c.Y * ChunkSizeY, c.Z * ChunkSizeZ
}

// Bounds returns the box covered by the chunk's blocks. Blocks are centred on
// integer positions, so the box starts half a block below the origin.
func (c ChunkCoord) Bounds() (min, max mgl32.Vec3) {
	ox, oy, oz := c.Origin()
	min = mgl32.Vec3{float32(ox) - 0.5, float32(oy) - 0.5, float32(oz) - 0.5}
	max = min.Add(mgl32.Vec3{ChunkSizeX, ChunkSizeY, ChunkSizeZ})
	return min, max
}

// SubchunkCoord identifies a subchunk inside its chunk.
type SubchunkCoord struct {
	X, Y, Z int
}

func (s SubchunkCoord) valid() bool {
	return s.X >= 0 && s.X < SubchunksX &&
		s.Y >= 0 && s.Y < SubchunksY &&
		s.Z >= 0 && s.Z < SubchunksZ
}

// index orders subchunks x, then y, then z.
func (s SubchunkCoord) index() int {
	return (s.X*SubchunksY+s.Y)*SubchunksZ + s.Z
}

func subchunkAt(index int) SubchunkCoord {
	z := index % SubchunksZ
	y := (index / SubchunksZ) % SubchunksY
	x := index / (SubchunksZ * SubchunksY)
	return SubchunkCoord{X: x, Y: y, Z: z}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// mod returns a non-negative remainder.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// ChunkPosition returns the chunk containing world position (x, y, z).
func ChunkPosition(x, y, z int) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(x, ChunkSizeX),
		Y: floorDiv(y, ChunkSizeY),
		Z: floorDiv(z, ChunkSizeZ),
	}
}

// LocalPosition returns the chunk-relative position of world position (x, y, z).
func LocalPosition(x, y, z int) (int, int, int) {
	return mod(x, ChunkSizeX), mod(y, ChunkSizeY), mod(z, ChunkSizeZ)
}

// subchunkOf returns the subchunk holding a chunk-local position.
func subchunkOf(lx, ly, lz int) SubchunkCoord {
	return SubchunkCoord{X: lx / SubchunkSizeX, Y: ly / SubchunkSizeY, Z: lz / SubchunkSizeZ}
}
