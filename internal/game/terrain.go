package game

import (
	"github.com/ojrac/opensimplex-go"
	"go.uber.org/zap"

	"mcvox/internal/block"
	"mcvox/internal/logger"
	"mcvox/internal/world"
)

// Demo terrain layout, in blocks.
const (
	groundHeight = 6 // grass level of the origin chunk and the floor of the hills
	dirtDepth    = 2
	poolMin      = 9
	poolMax      = 13
	poolDepth    = 2
	boxMin       = 2
	boxMax       = 6
	boxHeight    = 4
	treeHeight   = 4

	hillScale     = 1.0 / 24.0
	hillAmplitude = 6
)

// palette holds the ids the demo terrain is built from. Missing names stay air
// so a trimmed catalog still produces a valid world.
type palette struct {
	stone, dirt, grass, glass, water, log, leaves, slab block.ID
	flowers                                             []block.ID
}

func lookupID(cat *block.Catalog, name string) block.ID {
	if t, ok := cat.Lookup(name); ok {
		return t.ID
	}
	logger.Warn("demo terrain: block type missing from catalog", zap.String("name", name))
	return block.Air
}

func newPalette(cat *block.Catalog) palette {
	p := palette{
		stone:  lookupID(cat, "Stone"),
		dirt:   lookupID(cat, "Dirt"),
		grass:  lookupID(cat, "Grass"),
		glass:  lookupID(cat, "Glass"),
		water:  lookupID(cat, "Water"),
		log:    lookupID(cat, "Log"),
		leaves: lookupID(cat, "Leaves"),
		slab:   lookupID(cat, "Stone Slab"),
	}
	for _, name := range []string{"Rose", "Dandelion"} {
		if id := lookupID(cat, name); id != block.Air {
			p.flowers = append(p.flowers, id)
		}
	}
	return p
}

// heightMap gives the grass height of a column. The origin chunk stays flat so
// its decorations sit on a known level; other chunks get simplex hills.
type heightMap struct {
	noise opensimplex.Noise32
}

func newHeightMap(seed int64) heightMap {
	return heightMap{noise: opensimplex.NewNormalized32(seed)}
}

func (h heightMap) at(wx, wz int) int {
	if world.ChunkPosition(wx, 0, wz) == (world.ChunkCoord{}) {
		return groundHeight
	}
	n := h.noise.Eval2(float32(wx)*hillScale, float32(wz)*hillScale)
	return groundHeight + int(n*hillAmplitude)
}

// GenerateDemo fills the square of chunks within radius of the origin with
// layered ground, then decorates the centre chunk with a glass box and a water
// pool, and every other chunk with a tree. Every generated chunk has its sky
// light seeded and is queued for meshing.
func GenerateDemo(w *world.World, radius int, seed int64) {
	if radius < 0 {
		radius = 0
	}
	p := newPalette(w.Catalog())
	heights := newHeightMap(seed)

	for cx := -radius; cx <= radius; cx++ {
		for cz := -radius; cz <= radius; cz++ {
			coord := world.ChunkCoord{X: cx, Z: cz}
			c := w.ChunkOrCreate(coord)
			g := c.Grid()
			fillGround(g, p, heights, coord)
			decorate(g, p, heights, coord)
			c.InitSkylight()
			w.QueueChunk(coord)
		}
	}
	logger.Info("demo terrain generated",
		zap.Int("radius", radius), zap.Int("chunks", len(w.Chunks())))
}

func fillGround(g *world.Grid, p palette, heights heightMap, coord world.ChunkCoord) {
	ox, _, oz := coord.Origin()
	for x := 0; x < world.ChunkSizeX; x++ {
		for z := 0; z < world.ChunkSizeZ; z++ {
			top := heights.at(ox+x, oz+z)
			for y := 0; y < top; y++ {
				id := p.stone
				if y >= top-dirtDepth {
					id = p.dirt
				}
				g.SetBlockRaw(x, y, z, id)
			}
			g.SetBlockRaw(x, top, z, p.grass)
		}
	}
}

func decorate(g *world.Grid, p palette, heights heightMap, coord world.ChunkCoord) {
	if coord.X == 0 && coord.Z == 0 {
		glassBox(g, p)
		waterPool(g, p)
		slabStep(g, p)
	} else if (coord.X+coord.Z)%2 == 0 {
		ox, _, oz := coord.Origin()
		tree(g, p, 8, heights.at(ox+8, oz+8)+1, 8)
	}
	flowers(g, p, heights, coord)
}

// glassBox builds a hollow glass cube standing on the grass.
func glassBox(g *world.Grid, p palette) {
	y0 := groundHeight + 1
	for x := boxMin; x <= boxMax; x++ {
		for y := y0; y < y0+boxHeight; y++ {
			for z := boxMin; z <= boxMax; z++ {
				shell := x == boxMin || x == boxMax || z == boxMin || z == boxMax ||
					y == y0 || y == y0+boxHeight-1
				if shell {
					g.SetBlockRaw(x, y, z, p.glass)
				}
			}
		}
	}
}

// waterPool replaces the top layers of a square with water.
func waterPool(g *world.Grid, p palette) {
	for x := poolMin; x <= poolMax; x++ {
		for z := poolMin; z <= poolMax; z++ {
			for y := groundHeight - poolDepth + 1; y <= groundHeight; y++ {
				g.SetBlockRaw(x, y, z, p.water)
			}
		}
	}
}

func slabStep(g *world.Grid, p palette) {
	for x := poolMin; x <= poolMax; x++ {
		g.SetBlockRaw(x, groundHeight+1, poolMin-1, p.slab)
	}
}

func tree(g *world.Grid, p palette, x, base, z int) {
	top := base + treeHeight - 1
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			for y := top - 1; y <= top+1; y++ {
				if y == top+1 && (dx*dx+dz*dz) > 2 {
					continue
				}
				g.SetBlockRaw(x+dx, y, z+dz, p.leaves)
			}
		}
	}
	for y := base; y <= top; y++ {
		g.SetBlockRaw(x, y, z, p.log)
	}
}

// flowers scatters plants over free grass with a fixed hash so every run
// produces the same world.
func flowers(g *world.Grid, p palette, heights heightMap, coord world.ChunkCoord) {
	if len(p.flowers) == 0 {
		return
	}
	ox, _, oz := coord.Origin()
	for x := 0; x < world.ChunkSizeX; x++ {
		for z := 0; z < world.ChunkSizeZ; z++ {
			h := uint32((ox+x)*73856093) ^ uint32((oz+z)*19349663)
			if h%29 != 0 {
				continue
			}
			top := heights.at(ox+x, oz+z)
			y := top + 1
			if g.Block(x, top, z) != p.grass || g.Block(x, y, z) != block.Air {
				continue
			}
			g.SetBlockRaw(x, y, z, p.flowers[int(h/29)%len(p.flowers)])
		}
	}
}
