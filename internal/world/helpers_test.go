package world

import (
	"errors"
	"strings"
	"testing"

	"mcvox/internal/block"
)

const (
	stone  block.ID = 1
	glass  block.ID = 2
	water  block.ID = 3
	rose   block.ID = 4
	leaves block.ID = 5
)

const testBlocks = `1: name "Stone", texture.all stone
2: name "Glass", texture.all glass, model glass
3: name "Water", texture.all water, model liquid
4: name "Rose", texture.all rose, model plant
5: name "Leaves", texture.all leaves, model leaves
`

func testCatalog(t testing.TB) *block.Catalog {
	t.Helper()
	cat, err := block.Parse(strings.NewReader(testBlocks))
	if err != nil {
		t.Fatalf("parse test catalog: %v", err)
	}
	return cat
}

func newTestWorld(t testing.TB, dev Device, mode DrawMode, budget int) *World {
	t.Helper()
	return New(testCatalog(t), dev, Options{DrawMode: mode, ChunkUpdates: budget})
}

func flush(t testing.TB, w *World) {
	t.Helper()
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

// fakeDevice records buffer allocations instead of touching a GL context.
type fakeDevice struct {
	buffers []*fakeBuffers
	fail    error
}

func (d *fakeDevice) NewChunkBuffers(indirect bool) (ChunkBuffers, error) {
	if d.fail != nil {
		return nil, d.fail
	}
	b := &fakeBuffers{indirect: indirect}
	d.buffers = append(d.buffers, b)
	return b, nil
}

type drawCall struct {
	kind         string
	indexCounts  []int32
	baseVertices []int32
	a, b         int
}

type fakeBuffers struct {
	indirect bool
	uploads  int
	data     []float32
	opaque   int
	commands []DrawCommand
	draws    []drawCall
	released int
	fail     error
}

func (b *fakeBuffers) UploadVertices(data []float32, opaqueFloats int) error {
	if b.released > 0 {
		return errors.New("upload after release")
	}
	if b.fail != nil {
		return b.fail
	}
	b.uploads++
	b.data = append(b.data[:0], data...)
	b.opaque = opaqueFloats
	return nil
}

func (b *fakeBuffers) UploadCommands(cmds []DrawCommand) error {
	if !b.indirect {
		return errors.New("no indirect buffer")
	}
	b.commands = append(b.commands[:0], cmds...)
	return nil
}

func (b *fakeBuffers) MultiDraw(indexCounts, baseVertices []int32) {
	b.draws = append(b.draws, drawCall{
		kind:         "multi",
		indexCounts:  append([]int32(nil), indexCounts...),
		baseVertices: append([]int32(nil), baseVertices...),
	})
}

func (b *fakeBuffers) MultiDrawIndirect(drawCount int) {
	b.draws = append(b.draws, drawCall{kind: "multi-indirect", a: drawCount})
}

func (b *fakeBuffers) DrawRange(indexCount, baseVertex int) {
	b.draws = append(b.draws, drawCall{kind: "range", a: indexCount, b: baseVertex})
}

func (b *fakeBuffers) DrawIndirect(offset int) {
	b.draws = append(b.draws, drawCall{kind: "indirect", a: offset})
}

func (b *fakeBuffers) Release() { b.released++ }

// queued lists a chunk's dirty subchunks in queue order.
func queued(c *Chunk) []SubchunkCoord {
	return append([]SubchunkCoord(nil), c.queue.items[c.queue.head:]...)
}
