package world

import "mcvox/internal/block"

// voxelSource answers lookups that leave a chunk. The chunk does not own it.
type voxelSource interface {
	Catalog() *block.Catalog
	DrawMode() DrawMode
	device() Device
	sample(x, y, z int) (block.ID, uint8)
	schedule(c *Chunk)
}

// Chunk is a 16x128x16 column section: block and light storage, the
// subchunks that mesh it and the GPU buffers its meshes are uploaded to.
type Chunk struct {
	src   voxelSource
	coord ChunkCoord
	grid  Grid

	subchunks [SubchunkCount]Subchunk
	queue     orderedSet[SubchunkCoord]
	modified  bool

	meshQuadCount        int
	translucentQuadCount int

	batch    Batch
	buffers  ChunkBuffers
	released bool
}

func newChunk(src voxelSource, coord ChunkCoord) *Chunk {
	c := &Chunk{
		src:   src,
		coord: coord,
		queue: newOrderedSet[SubchunkCoord](),
	}
	for i := range c.subchunks {
		sc := subchunkAt(i)
		c.subchunks[i] = Subchunk{
			chunk: c,
			coord: sc,
			lx:    sc.X * SubchunkSizeX,
			ly:    sc.Y * SubchunkSizeY,
			lz:    sc.Z * SubchunkSizeZ,
		}
	}
	return c
}

func (c *Chunk) Coord() ChunkCoord { return c.coord }

// Grid exposes the chunk's raw block and light storage. Writes through it are
// not meshed until the affected subchunks are queued.
func (c *Chunk) Grid() *Grid { return &c.grid }

// Subchunk returns the subchunk at sc, or nil when sc is outside the chunk.
func (c *Chunk) Subchunk(sc SubchunkCoord) *Subchunk {
	if !sc.valid() {
		return nil
	}
	return &c.subchunks[sc.index()]
}

// Modified reports whether the chunk was edited since the last ClearModified.
func (c *Chunk) Modified() bool { return c.modified }

func (c *Chunk) ClearModified() { c.modified = false }

func (c *Chunk) MeshQuadCount() int        { return c.meshQuadCount }
func (c *Chunk) TranslucentQuadCount() int { return c.translucentQuadCount }

// Batch returns the multidraw arguments built by the last upload.
func (c *Chunk) Batch() *Batch { return &c.batch }

// PendingSubchunks returns the number of subchunks waiting for a rebuild.
func (c *Chunk) PendingSubchunks() int { return c.queue.Len() }

// Queued reports whether sc is waiting for a rebuild.
func (c *Chunk) Queued(sc SubchunkCoord) bool { return c.queue.Contains(sc) }

// QueueAll schedules every subchunk for a rebuild, for example after bulk
// writes through Grid.
func (c *Chunk) QueueAll() {
	c.queue.Clear()
	for i := range c.subchunks {
		c.queue.Push(c.subchunks[i].coord)
	}
	c.src.schedule(c)
}

// enqueue marks one subchunk dirty. Out-of-range coordinates are ignored.
func (c *Chunk) enqueue(sc SubchunkCoord) {
	if !sc.valid() {
		return
	}
	if c.queue.Push(sc) {
		c.src.schedule(c)
	}
}

// processUpdates rebuilds up to budget queued subchunks in FIFO order. It
// returns how many were rebuilt and whether the queue is now empty.
func (c *Chunk) processUpdates(budget int) (int, bool) {
	n := 0
	for n < budget {
		sc, ok := c.queue.Pop()
		if !ok {
			break
		}
		c.subchunks[sc.index()].Rebuild()
		n++
	}
	return n, c.queue.Len() == 0
}

// sample returns the id and packed light at a chunk-local position that may
// lie outside the chunk.
func (c *Chunk) sample(lx, ly, lz int) (block.ID, uint8) {
	if lx >= 0 && lx < ChunkSizeX && ly >= 0 && ly < ChunkSizeY && lz >= 0 && lz < ChunkSizeZ {
		return c.grid.Block(lx, ly, lz), c.grid.RawLight(lx, ly, lz)
	}
	ox, oy, oz := c.coord.Origin()
	return c.src.sample(ox+lx, oy+ly, oz+lz)
}

// InitSkylight gives every cell above the highest opaque block of its column
// full sky light and every cell at or below it none.
func (c *Chunk) InitSkylight() {
	catalog := c.src.Catalog()
	for x := 0; x < ChunkSizeX; x++ {
		for z := 0; z < ChunkSizeZ; z++ {
			sky := uint8(MaxLight)
			for y := ChunkSizeY - 1; y >= 0; y-- {
				if sky > 0 && catalog.IsOpaque(c.grid.Block(x, y, z)) {
					sky = 0
				}
				c.grid.SetSkyLight(x, y, z, sky)
			}
		}
	}
}

// Draw issues the opaque subchunk draws.
func (c *Chunk) Draw() {
	if c.buffers == nil || c.meshQuadCount == 0 {
		return
	}
	if c.src.DrawMode() == DrawIndirect {
		c.buffers.MultiDrawIndirect(c.batch.DrawCount)
		return
	}
	c.buffers.MultiDraw(c.batch.IndexCounts, c.batch.BaseVertices)
}

// DrawTranslucent issues the single translucent draw that follows the opaque
// range in the vertex buffer.
func (c *Chunk) DrawTranslucent() {
	if c.buffers == nil || c.translucentQuadCount == 0 {
		return
	}
	if c.src.DrawMode() == DrawIndirect {
		c.buffers.DrawIndirect(c.batch.TranslucentCommandOffset())
		return
	}
	c.buffers.DrawRange(c.translucentQuadCount*QuadIndices, c.meshQuadCount*4)
}

// Release frees the chunk's GPU resources. Calling it again does nothing.
func (c *Chunk) Release() {
	if c.released {
		return
	}
	c.released = true
	if c.buffers != nil {
		c.buffers.Release()
		c.buffers = nil
	}
}
