package world

import "errors"

// DrawMode selects how a chunk's subchunk draws are submitted.
type DrawMode int

const (
	// DrawDirect passes counts and base vertices from the CPU in one multidraw call.
	DrawDirect DrawMode = iota
	// DrawIndirect reads draw records from a GPU command buffer.
	DrawIndirect
)

func (m DrawMode) String() string {
	if m == DrawIndirect {
		return "indirect"
	}
	return "direct"
}

// ErrReleased is returned when uploading to a chunk whose GPU resources were freed.
var ErrReleased = errors.New("chunk buffers released")

// Device allocates per-chunk GPU resources.
type Device interface {
	NewChunkBuffers(indirect bool) (ChunkBuffers, error)
}

// ChunkBuffers is a chunk's vertex buffer, optional indirect command buffer and
// the draw calls that read them. Every draw assumes the chunk's shader state is
// already bound.
type ChunkBuffers interface {
	// UploadVertices orphans the vertex store and writes data. The first
	// opaqueFloats values are the opaque range; the rest is translucent.
	UploadVertices(data []float32, opaqueFloats int) error
	UploadCommands(cmds []DrawCommand) error

	MultiDraw(indexCounts, baseVertices []int32)
	MultiDrawIndirect(drawCount int)
	DrawRange(indexCount, baseVertex int)
	DrawIndirect(offset int)

	Release()
}
