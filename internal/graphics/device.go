package graphics

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"go.uber.org/zap"

	"mcvox/internal/logger"
	"mcvox/internal/world"
)

const (
	// initialIndexQuads covers every subchunk draw and most translucent ranges.
	initialIndexQuads = 16384

	// chunkVertexBytes is the minimum vertex store of a chunk.
	chunkVertexBytes = world.ChunkVolume * world.VertexFloats * 4

	// indirectBufferBytes holds one command per subchunk plus the translucent one.
	indirectBufferBytes = (world.SubchunkCount + 1) * world.DrawCommandSize

	// indexUploadTarget writes the shared index store. The element binding is
	// VAO state, so uploads go through a target no VAO owns.
	indexUploadTarget = gl.COPY_WRITE_BUFFER
)

// Device owns GL state shared by all chunks: the quad index buffer and the
// zero offsets passed to glMultiDrawElementsBaseVertex. It must be used on
// the thread that owns the GL context.
type Device struct {
	ibo         uint32
	indexQuads  int
	zeroOffsets []unsafe.Pointer
	log         *zap.Logger
}

var _ world.Device = (*Device)(nil)

// NewDevice creates the shared index buffer.
func NewDevice() (*Device, error) {
	d := &Device{
		zeroOffsets: make([]unsafe.Pointer, world.SubchunkCount),
		log:         logger.Named("gl"),
	}
	gl.GenBuffers(1, &d.ibo)
	if d.ibo == 0 {
		return nil, errors.New("glGenBuffers returned no index buffer")
	}
	if err := d.ensureIndexCapacity(initialIndexQuads); err != nil {
		d.Release()
		return nil, err
	}
	return d, nil
}

// ensureIndexCapacity grows the shared index buffer in place. Chunk VAOs keep
// referencing the same buffer name so they see the new store.
func (d *Device) ensureIndexCapacity(quads int) error {
	if quads <= d.indexQuads {
		return nil
	}
	n := growQuadCapacity(max(d.indexQuads, initialIndexQuads), quads)
	indices := QuadIndices(n)
	gl.BindBuffer(indexUploadTarget, d.ibo)
	gl.BufferData(indexUploadTarget, len(indices)*4, gl.Ptr(&indices[0]), gl.STATIC_DRAW)
	gl.BindBuffer(indexUploadTarget, 0)
	if err := glCheckError("index buffer"); err != nil {
		return fmt.Errorf("grow index buffer to %d quads: %w", n, err)
	}
	d.indexQuads = n
	d.log.Debug("index buffer resized", zap.Int("quads", n))
	return nil
}

// NewChunkBuffers allocates a VAO and vertex buffer with the chunk vertex
// layout, plus an indirect command buffer when indirect is set.
func (d *Device) NewChunkBuffers(indirect bool) (world.ChunkBuffers, error) {
	b := &chunkBuffers{dev: d}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, chunkVertexBytes, nil, gl.DYNAMIC_DRAW)
	b.vboBytes = chunkVertexBytes

	stride := int32(world.VertexFloats * 4)
	// position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// texture layer, shading, light, reserved
	for i := uint32(1); i < 5; i++ {
		gl.VertexAttribPointerWithOffset(i, 1, gl.FLOAT, false, stride, uintptr(2+i)*4)
		gl.EnableVertexAttribArray(i)
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.ibo)

	if indirect {
		gl.GenBuffers(1, &b.indirect)
		gl.BindBuffer(gl.DRAW_INDIRECT_BUFFER, b.indirect)
		gl.BufferData(gl.DRAW_INDIRECT_BUFFER, indirectBufferBytes, nil, gl.DYNAMIC_DRAW)
		b.indirectBytes = indirectBufferBytes
	}

	gl.GenQueries(1, &b.query)
	gl.BindVertexArray(0)

	if b.vao == 0 || b.vbo == 0 || (indirect && b.indirect == 0) {
		b.Release()
		return nil, errors.New("glGen* returned a zero name")
	}
	if err := glCheckError("allocate chunk buffers"); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

// Release frees the shared index buffer.
func (d *Device) Release() {
	if d.ibo != 0 {
		gl.DeleteBuffers(1, &d.ibo)
		d.ibo = 0
	}
}
