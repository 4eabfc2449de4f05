package world

import (
	"fmt"

	"mcvox/internal/profiling"
)

// UpdateMesh concatenates every subchunk's opaque mesh followed by every
// translucent mesh, uploads the result and rebuilds the multidraw arguments.
// The staging slice is dropped once uploaded; subchunk meshes are kept for the
// next aggregation.
func (c *Chunk) UpdateMesh() error {
	defer profiling.Track("world.UpdateMesh")()

	if c.released {
		return ErrReleased
	}

	opaqueLen, translucentLen := 0, 0
	for i := range c.subchunks {
		opaqueLen += len(c.subchunks[i].mesh)
		translucentLen += len(c.subchunks[i].translucentMesh)
	}

	staging := make([]float32, 0, opaqueLen+translucentLen)
	for i := range c.subchunks {
		staging = append(staging, c.subchunks[i].mesh...)
	}
	for i := range c.subchunks {
		staging = append(staging, c.subchunks[i].translucentMesh...)
	}

	// Counts change only with a successful upload so a failed chunk keeps
	// drawing its previous store.
	if err := c.sendMeshData(staging, opaqueLen); err != nil {
		return err
	}
	c.meshQuadCount = opaqueLen / QuadFloats
	c.translucentQuadCount = translucentLen / QuadFloats
	return c.UpdateMultidrawCommands()
}

// sendMeshData allocates the chunk's buffers on first use and uploads. Without a
// device the chunk is CPU-only and nothing is uploaded.
func (c *Chunk) sendMeshData(staging []float32, opaqueLen int) error {
	dev := c.src.device()
	if dev == nil {
		return nil
	}
	if c.buffers == nil {
		if len(staging) == 0 {
			return nil
		}
		b, err := dev.NewChunkBuffers(c.src.DrawMode() == DrawIndirect)
		if err != nil {
			return fmt.Errorf("allocate buffers for chunk %v: %w", c.coord, err)
		}
		c.buffers = b
	}
	if err := c.buffers.UploadVertices(staging, opaqueLen); err != nil {
		return fmt.Errorf("upload chunk %v: %w", c.coord, err)
	}
	return nil
}

// UpdateMultidrawCommands rebuilds the per-subchunk draw arguments from the
// current subchunk meshes. Subchunks without opaque faces get no draw.
func (c *Chunk) UpdateMultidrawCommands() error {
	b := &c.batch
	b.reset()
	indirect := c.src.DrawMode() == DrawIndirect

	baseVertex := 0
	for i := range c.subchunks {
		quads := c.subchunks[i].QuadCount()
		if quads == 0 {
			continue
		}
		b.IndexCounts = append(b.IndexCounts, int32(quads*QuadIndices))
		b.BaseVertices = append(b.BaseVertices, int32(baseVertex))
		if indirect {
			b.Commands = append(b.Commands, DrawCommand{
				Count:         uint32(quads * QuadIndices),
				InstanceCount: 1,
				BaseVertex:    uint32(baseVertex),
			})
		}
		baseVertex += quads * 4
		b.DrawCount++
	}

	if !indirect {
		return nil
	}
	b.Commands = append(b.Commands, DrawCommand{
		Count:         uint32(c.translucentQuadCount * QuadIndices),
		InstanceCount: 1,
		BaseVertex:    uint32(c.meshQuadCount * 4),
	})

	if c.buffers == nil {
		return nil
	}
	if err := c.buffers.UploadCommands(b.Commands); err != nil {
		return fmt.Errorf("upload draw commands for chunk %v: %w", c.coord, err)
	}
	return nil
}
