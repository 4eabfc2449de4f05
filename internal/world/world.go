// Package world holds the voxel world: chunk storage, incremental subchunk
// meshing, the rebuild scheduler and per-chunk multidraw batches.
package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"mcvox/internal/block"
	"mcvox/internal/logger"
)

// Options configures a World.
type Options struct {
	DrawMode DrawMode
	// ChunkUpdates bounds the subchunk rebuilds per Tick. Values below 1 are
	// raised to 1.
	ChunkUpdates int
}

// World owns every chunk and routes edits to the subchunks they affect. It is
// not safe for concurrent use; the render thread owns it.
type World struct {
	catalog   *block.Catalog
	dev       Device
	mode      DrawMode
	chunks    map[ChunkCoord]*Chunk
	order     []*Chunk
	scheduler *Scheduler
	log       *zap.Logger
}

// New creates an empty world. A nil device keeps meshes on the CPU only.
func New(catalog *block.Catalog, dev Device, opts Options) *World {
	log := logger.Named("world")
	if opts.ChunkUpdates < 1 {
		log.Warn("chunk update budget below 1, using 1", zap.Int("requested", opts.ChunkUpdates))
	}
	return &World{
		catalog:   catalog,
		dev:       dev,
		mode:      opts.DrawMode,
		chunks:    make(map[ChunkCoord]*Chunk),
		scheduler: newScheduler(opts.ChunkUpdates, log),
		log:       log,
	}
}

func (w *World) Catalog() *block.Catalog { return w.catalog }
func (w *World) DrawMode() DrawMode      { return w.mode }
func (w *World) Scheduler() *Scheduler   { return w.scheduler }

func (w *World) device() Device    { return w.dev }
func (w *World) schedule(c *Chunk) { w.scheduler.schedule(c) }

// Chunk returns the chunk at coord, or nil.
func (w *World) Chunk(coord ChunkCoord) *Chunk {
	return w.chunks[coord]
}

// ChunkOrCreate returns the chunk at coord, creating an empty one if needed.
func (w *World) ChunkOrCreate(coord ChunkCoord) *Chunk {
	if c, ok := w.chunks[coord]; ok {
		return c
	}
	c := newChunk(w, coord)
	w.chunks[coord] = c
	w.order = append(w.order, c)
	w.log.Debug("chunk created", zap.Int("x", coord.X), zap.Int("y", coord.Y), zap.Int("z", coord.Z))
	return c
}

// Chunks returns all chunks in creation order. The slice must not be modified.
func (w *World) Chunks() []*Chunk { return w.order }

// QueueChunk schedules every subchunk of the chunk at coord.
func (w *World) QueueChunk(coord ChunkCoord) {
	if c := w.chunks[coord]; c != nil {
		c.QueueAll()
	}
}

// BlockNumber returns the id at a world position. Missing chunks read as air.
func (w *World) BlockNumber(x, y, z int) block.ID {
	c := w.chunks[ChunkPosition(x, y, z)]
	if c == nil {
		return block.Air
	}
	return c.grid.Block(LocalPosition(x, y, z))
}

// IsOpaqueBlock reports whether the block at a world position hides its
// neighbours' faces.
func (w *World) IsOpaqueBlock(x, y, z int) bool {
	return w.catalog.IsOpaque(w.BlockNumber(x, y, z))
}

// Light returns block and sky light at a world position. Outside any chunk
// there is no block light and full sky light.
func (w *World) Light(x, y, z int) (blockLight, skyLight uint8) {
	c := w.chunks[ChunkPosition(x, y, z)]
	if c == nil {
		return 0, MaxLight
	}
	return UnpackLight(c.grid.RawLight(LocalPosition(x, y, z)))
}

func (w *World) BlockLight(x, y, z int) uint8 {
	b, _ := w.Light(x, y, z)
	return b
}

func (w *World) SkyLight(x, y, z int) uint8 {
	_, s := w.Light(x, y, z)
	return s
}

func (w *World) sample(x, y, z int) (block.ID, uint8) {
	c := w.chunks[ChunkPosition(x, y, z)]
	if c == nil {
		return block.Air, PackLight(0, MaxLight)
	}
	lx, ly, lz := LocalPosition(x, y, z)
	return c.grid.Block(lx, ly, lz), c.grid.RawLight(lx, ly, lz)
}

// SetBlock writes id at a world position and queues the affected subchunks.
// Writing air where no chunk exists and rewriting the same id are no-ops.
func (w *World) SetBlock(x, y, z int, id block.ID) {
	coord := ChunkPosition(x, y, z)
	c := w.chunks[coord]
	if c == nil {
		if id == block.Air {
			return
		}
		c = w.ChunkOrCreate(coord)
	}

	lx, ly, lz := LocalPosition(x, y, z)
	if c.grid.Block(lx, ly, lz) == id {
		return
	}
	c.grid.SetBlockRaw(lx, ly, lz, id)
	c.modified = true
	w.invalidate(x, y, z)
}

// TrySetBlock is SetBlock for player placement: removal always succeeds, and
// a block whose collision boxes would overlap collider is refused.
func (w *World) TrySetBlock(x, y, z int, id block.ID, collider block.AABB) bool {
	if id != block.Air {
		bt := w.catalog.Type(id)
		if bt == nil {
			return false
		}
		pos := mgl32.Vec3{float32(x), float32(y), float32(z)}
		for _, box := range bt.Colliders() {
			if box.Translate(pos).Intersects(collider) {
				return false
			}
		}
	}
	w.SetBlock(x, y, z, id)
	return true
}

// SetBlockLight sets block light at a world position and queues the
// subchunks whose faces sample it.
func (w *World) SetBlockLight(x, y, z int, level uint8) {
	c := w.chunks[ChunkPosition(x, y, z)]
	if c == nil {
		return
	}
	lx, ly, lz := LocalPosition(x, y, z)
	if c.grid.BlockLight(lx, ly, lz) == level&0xF {
		return
	}
	c.grid.SetBlockLight(lx, ly, lz, level)
	c.modified = true
	w.invalidate(x, y, z)
}

// SetSkyLight sets sky light at a world position and queues the subchunks
// whose faces sample it.
func (w *World) SetSkyLight(x, y, z int, level uint8) {
	c := w.chunks[ChunkPosition(x, y, z)]
	if c == nil {
		return
	}
	lx, ly, lz := LocalPosition(x, y, z)
	if c.grid.SkyLight(lx, ly, lz) == level&0xF {
		return
	}
	c.grid.SetSkyLight(lx, ly, lz, level)
	c.modified = true
	w.invalidate(x, y, z)
}

// invalidate queues the subchunk holding (x, y, z) and every face-adjacent
// subchunk that a neighbouring voxel belongs to, across chunk borders.
func (w *World) invalidate(x, y, z int) {
	home := ChunkPosition(x, y, z)
	hsc := subchunkOf(LocalPosition(x, y, z))
	if c := w.chunks[home]; c != nil {
		c.enqueue(hsc)
	}

	for _, d := range block.Directions {
		nx, ny, nz := x+d[0], y+d[1], z+d[2]
		coord := ChunkPosition(nx, ny, nz)
		sc := subchunkOf(LocalPosition(nx, ny, nz))
		if coord == home && sc == hsc {
			continue
		}
		if c := w.chunks[coord]; c != nil {
			c.enqueue(sc)
		}
	}
}

// Tick runs one scheduler round.
func (w *World) Tick() error {
	return w.scheduler.Tick()
}

// Flush ticks until every queued subchunk is rebuilt and uploaded.
func (w *World) Flush() error {
	for !w.scheduler.Idle() {
		if err := w.scheduler.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases every chunk's GPU resources and drops queued work.
func (w *World) Close() {
	w.scheduler.clear()
	for _, c := range w.order {
		c.Release()
	}
	w.log.Debug("world closed", zap.Int("chunks", len(w.order)))
}
