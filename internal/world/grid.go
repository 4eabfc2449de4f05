package world

import "mcvox/internal/block"

// Grid stores block ids and packed light for one chunk. Coordinates are
// chunk-local and are not bounds checked.
type Grid struct {
	blocks [ChunkVolume]block.ID
	light  [ChunkVolume]uint8
}

func gridIndex(x, y, z int) int {
	return (x*ChunkSizeY+y)*ChunkSizeZ + z
}

func (g *Grid) Block(x, y, z int) block.ID {
	return g.blocks[gridIndex(x, y, z)]
}

// SetBlockRaw writes an id without touching meshes or light.
func (g *Grid) SetBlockRaw(x, y, z int, id block.ID) {
	g.blocks[gridIndex(x, y, z)] = id
}

func (g *Grid) BlockLight(x, y, z int) uint8 {
	return g.light[gridIndex(x, y, z)] & 0xF
}

func (g *Grid) SkyLight(x, y, z int) uint8 {
	return g.light[gridIndex(x, y, z)] >> 4 & 0xF
}

func (g *Grid) SetBlockLight(x, y, z int, v uint8) {
	i := gridIndex(x, y, z)
	g.light[i] = g.light[i]&0xF0 | v&0xF
}

func (g *Grid) SetSkyLight(x, y, z int, v uint8) {
	i := gridIndex(x, y, z)
	g.light[i] = g.light[i]&0x0F | (v&0xF)<<4
}

// RawLight returns the packed light byte.
func (g *Grid) RawLight(x, y, z int) uint8 {
	return g.light[gridIndex(x, y, z)]
}
