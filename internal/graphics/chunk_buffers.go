package graphics

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"

	"mcvox/internal/world"
)

// chunkBuffers holds one chunk's GL objects.
type chunkBuffers struct {
	dev           *Device
	vao           uint32
	vbo           uint32
	vboBytes      int
	indirect      uint32
	indirectBytes int
	// Reserved for occlusion culling; allocated with the chunk so its lifetime
	// matches the other objects.
	query uint32
}

// UploadVertices orphans the vertex store, sized to the larger of a full
// chunk and the data, then writes the opaque and translucent ranges.
func (b *chunkBuffers) UploadVertices(data []float32, opaqueFloats int) error {
	if b.vbo == 0 {
		return world.ErrReleased
	}
	if err := b.dev.ensureIndexCapacity(len(data) / world.QuadFloats); err != nil {
		return err
	}

	size := max(chunkVertexBytes, len(data)*4)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	b.vboBytes = size

	if opaqueFloats > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, opaqueFloats*4, gl.Ptr(&data[0]))
	}
	if rest := len(data) - opaqueFloats; rest > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, opaqueFloats*4, rest*4, gl.Ptr(&data[opaqueFloats]))
	}
	return glCheckError("upload vertices")
}

// UploadCommands writes the encoded draw records to the indirect buffer.
func (b *chunkBuffers) UploadCommands(cmds []world.DrawCommand) error {
	if b.vbo == 0 {
		return world.ErrReleased
	}
	if b.indirect == 0 || len(cmds) == 0 {
		return nil
	}
	data := world.EncodeCommands(cmds)
	gl.BindBuffer(gl.DRAW_INDIRECT_BUFFER, b.indirect)
	if len(data) > b.indirectBytes {
		gl.BufferData(gl.DRAW_INDIRECT_BUFFER, len(data), gl.Ptr(&data[0]), gl.DYNAMIC_DRAW)
		b.indirectBytes = len(data)
	} else {
		gl.BufferSubData(gl.DRAW_INDIRECT_BUFFER, 0, len(data), gl.Ptr(&data[0]))
	}
	return glCheckError("upload draw commands")
}

func (b *chunkBuffers) MultiDraw(indexCounts, baseVertices []int32) {
	if len(indexCounts) == 0 {
		return
	}
	offsets := b.dev.zeroOffsets
	if len(offsets) < len(indexCounts) {
		offsets = make([]unsafe.Pointer, len(indexCounts))
		b.dev.zeroOffsets = offsets
	}
	gl.BindVertexArray(b.vao)
	gl.MultiDrawElementsBaseVertex(gl.TRIANGLES, &indexCounts[0], gl.UNSIGNED_INT,
		&offsets[0], int32(len(indexCounts)), &baseVertices[0])
}

func (b *chunkBuffers) MultiDrawIndirect(drawCount int) {
	if drawCount == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.DRAW_INDIRECT_BUFFER, b.indirect)
	gl.MultiDrawElementsIndirect(gl.TRIANGLES, gl.UNSIGNED_INT, nil, int32(drawCount), 0)
}

func (b *chunkBuffers) DrawRange(indexCount, baseVertex int) {
	gl.BindVertexArray(b.vao)
	gl.DrawElementsBaseVertex(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_INT, nil, int32(baseVertex))
}

// DrawIndirect draws the single command at byte offset in the indirect buffer.
// The barrier orders it after the command upload.
func (b *chunkBuffers) DrawIndirect(offset int) {
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.DRAW_INDIRECT_BUFFER, b.indirect)
	gl.MemoryBarrier(gl.COMMAND_BARRIER_BIT)
	gl.DrawElementsIndirect(gl.TRIANGLES, gl.UNSIGNED_INT, gl.PtrOffset(offset))
}

func (b *chunkBuffers) Release() {
	if b.query != 0 {
		gl.DeleteQueries(1, &b.query)
		b.query = 0
	}
	if b.indirect != 0 {
		gl.DeleteBuffers(1, &b.indirect)
		b.indirect = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
}
