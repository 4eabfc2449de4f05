package world

import (
	"encoding/binary"
	"errors"
	"math/rand"
	"testing"

	"mcvox/internal/block"
)

func fillRandom(w *World, seed int64, n int) {
	rng := rand.New(rand.NewSource(seed))
	ids := []block.ID{stone, stone, glass, water, rose}
	for i := 0; i < n; i++ {
		w.SetBlock(rng.Intn(ChunkSizeX), rng.Intn(24), rng.Intn(ChunkSizeZ), ids[rng.Intn(len(ids))])
	}
}

func TestMultidrawCommandInvariants(t *testing.T) {
	dev := &fakeDevice{}
	w := newTestWorld(t, dev, DrawIndirect, 64)
	fillRandom(w, 3, 600)
	flush(t, w)

	c := w.Chunk(ChunkCoord{})
	b := c.Batch()
	if len(b.IndexCounts) != b.DrawCount || len(b.BaseVertices) != b.DrawCount {
		t.Fatalf("batch lengths %d/%d, draw count %d", len(b.IndexCounts), len(b.BaseVertices), b.DrawCount)
	}

	sum := 0
	for _, n := range b.IndexCounts {
		if n == 0 {
			t.Fatalf("empty subchunk got a draw")
		}
		sum += int(n)
	}
	if sum != c.MeshQuadCount()*QuadIndices {
		t.Fatalf("sum of index counts = %d, want %d", sum, c.MeshQuadCount()*QuadIndices)
	}

	if len(b.Commands) != b.DrawCount+1 {
		t.Fatalf("%d commands, want %d", len(b.Commands), b.DrawCount+1)
	}
	for i := 0; i < b.DrawCount; i++ {
		cmd := b.Commands[i]
		if cmd.Count != uint32(b.IndexCounts[i]) || cmd.BaseVertex != uint32(b.BaseVertices[i]) ||
			cmd.InstanceCount != 1 || cmd.FirstIndex != 0 || cmd.BaseInstance != 0 {
			t.Fatalf("command %d = %+v, want count %d base %d", i, cmd, b.IndexCounts[i], b.BaseVertices[i])
		}
	}
	last := b.Commands[b.DrawCount]
	if last.Count != uint32(c.TranslucentQuadCount()*QuadIndices) {
		t.Fatalf("translucent count = %d, want %d", last.Count, c.TranslucentQuadCount()*QuadIndices)
	}
	if last.BaseVertex != uint32(c.MeshQuadCount()*4) {
		t.Fatalf("translucent base vertex = %d, want %d", last.BaseVertex, c.MeshQuadCount()*4)
	}
	if got := b.TranslucentCommandOffset(); got != b.DrawCount*DrawCommandSize {
		t.Fatalf("translucent offset = %d, want %d", got, b.DrawCount*DrawCommandSize)
	}

	// Base vertices advance by each subchunk's vertex count.
	next := int32(0)
	for i := range b.BaseVertices {
		if b.BaseVertices[i] != next {
			t.Fatalf("base vertex %d = %d, want %d", i, b.BaseVertices[i], next)
		}
		next += b.IndexCounts[i] / QuadIndices * 4
	}

	fb := dev.buffers[0]
	if len(fb.commands) != len(b.Commands) {
		t.Fatalf("uploaded %d commands, want %d", len(fb.commands), len(b.Commands))
	}
}

func TestDirectModeHasNoCommands(t *testing.T) {
	dev := &fakeDevice{}
	w := newTestWorld(t, dev, DrawDirect, 64)
	fillRandom(w, 4, 200)
	flush(t, w)

	c := w.Chunk(ChunkCoord{})
	if len(c.Batch().Commands) != 0 {
		t.Fatalf("direct mode built %d commands", len(c.Batch().Commands))
	}
	if dev.buffers[0].indirect {
		t.Fatalf("direct mode allocated an indirect buffer")
	}
	if c.Batch().DrawCount == 0 {
		t.Fatalf("no draws built")
	}
}

func TestEncodeCommands(t *testing.T) {
	buf := EncodeCommands([]DrawCommand{
		{Count: 36, InstanceCount: 1, BaseVertex: 24},
		{Count: 6, InstanceCount: 1, FirstIndex: 2, BaseVertex: 0x01020304, BaseInstance: 9},
	})
	if len(buf) != 2*DrawCommandSize {
		t.Fatalf("encoded %d bytes, want %d", len(buf), 2*DrawCommandSize)
	}
	want := []uint32{36, 1, 0, 24, 0, 6, 1, 2, 0x01020304, 9}
	for i, v := range want {
		if got := binary.LittleEndian.Uint32(buf[i*4:]); got != v {
			t.Fatalf("word %d = %#x, want %#x", i, got, v)
		}
	}
	if buf[32] != 0x04 {
		t.Fatalf("base vertex not little-endian: % x", buf[32:36])
	}
}

func TestUploadLayout(t *testing.T) {
	dev := &fakeDevice{}
	w := newTestWorld(t, dev, DrawDirect, 64)
	w.SetBlock(1, 1, 1, water)
	w.SetBlock(9, 1, 1, stone)
	flush(t, w)

	if len(dev.buffers) != 1 {
		t.Fatalf("allocated %d buffers, want 1", len(dev.buffers))
	}
	fb := dev.buffers[0]
	if fb.opaque != 6*QuadFloats || len(fb.data) != 12*QuadFloats {
		t.Fatalf("upload = %d floats (%d opaque), want %d (%d)", len(fb.data), fb.opaque, 12*QuadFloats, 6*QuadFloats)
	}
	// Opaque stone comes first even though water sits in an earlier subchunk.
	if fb.data[0] < 8 {
		t.Fatalf("first vertex x = %v, want stone at x=9", fb.data[0])
	}
	if fb.data[fb.opaque] > 2 {
		t.Fatalf("first translucent vertex x = %v, want water at x=1", fb.data[fb.opaque])
	}

	// Later edits reuse the same buffers.
	w.SetBlock(2, 1, 1, stone)
	flush(t, w)
	if len(dev.buffers) != 1 || fb.uploads != 2 {
		t.Fatalf("buffers=%d uploads=%d, want 1 and 2", len(dev.buffers), fb.uploads)
	}
}

func TestEmptyChunkAllocatesNothing(t *testing.T) {
	dev := &fakeDevice{}
	w := newTestWorld(t, dev, DrawDirect, 64)
	w.ChunkOrCreate(ChunkCoord{}).QueueAll()
	flush(t, w)
	if len(dev.buffers) != 0 {
		t.Fatalf("empty chunk allocated %d buffers", len(dev.buffers))
	}
	c := w.Chunk(ChunkCoord{})
	c.Draw()
	c.DrawTranslucent()
}

func TestDrawDispatch(t *testing.T) {
	for _, mode := range []DrawMode{DrawDirect, DrawIndirect} {
		t.Run(mode.String(), func(t *testing.T) {
			dev := &fakeDevice{}
			w := newTestWorld(t, dev, mode, 64)
			w.SetBlock(1, 1, 1, stone)
			w.SetBlock(6, 1, 1, stone)
			w.SetBlock(1, 9, 1, water)
			flush(t, w)

			c := w.Chunk(ChunkCoord{})
			c.Draw()
			c.DrawTranslucent()
			draws := dev.buffers[0].draws
			if len(draws) != 2 {
				t.Fatalf("%d draw calls, want 2", len(draws))
			}

			switch mode {
			case DrawDirect:
				if draws[0].kind != "multi" || len(draws[0].indexCounts) != 2 {
					t.Fatalf("opaque draw = %+v", draws[0])
				}
				if draws[0].baseVertices[1] != 24 {
					t.Fatalf("second base vertex = %d, want 24", draws[0].baseVertices[1])
				}
				if draws[1].kind != "range" || draws[1].a != 36 || draws[1].b != 48 {
					t.Fatalf("translucent draw = %+v, want range 36 @ 48", draws[1])
				}
			case DrawIndirect:
				if draws[0].kind != "multi-indirect" || draws[0].a != 2 {
					t.Fatalf("opaque draw = %+v", draws[0])
				}
				if draws[1].kind != "indirect" || draws[1].a != 2*DrawCommandSize {
					t.Fatalf("translucent draw = %+v, want offset %d", draws[1], 2*DrawCommandSize)
				}
			}
		})
	}
}

func TestTranslucentOnlyChunkSkipsOpaqueDraw(t *testing.T) {
	dev := &fakeDevice{}
	w := newTestWorld(t, dev, DrawIndirect, 64)
	w.SetBlock(1, 1, 1, water)
	flush(t, w)

	c := w.Chunk(ChunkCoord{})
	c.Draw()
	c.DrawTranslucent()
	draws := dev.buffers[0].draws
	if len(draws) != 1 || draws[0].kind != "indirect" || draws[0].a != 0 {
		t.Fatalf("draws = %+v, want one indirect draw at offset 0", draws)
	}
}

func TestReleaseOnce(t *testing.T) {
	dev := &fakeDevice{}
	w := newTestWorld(t, dev, DrawDirect, 64)
	w.SetBlock(1, 1, 1, stone)
	flush(t, w)

	c := w.Chunk(ChunkCoord{})
	c.Release()
	c.Release()
	w.Close()
	if got := dev.buffers[0].released; got != 1 {
		t.Fatalf("released %d times, want 1", got)
	}
	if err := c.UpdateMesh(); !errors.Is(err, ErrReleased) {
		t.Fatalf("UpdateMesh after release = %v, want ErrReleased", err)
	}
	c.Draw()
	if len(dev.buffers[0].draws) != 0 {
		t.Fatalf("released chunk issued draws")
	}
}

func TestAllocationFailureSurfacesAndRetries(t *testing.T) {
	boom := errors.New("out of memory")
	dev := &fakeDevice{fail: boom}
	w := newTestWorld(t, dev, DrawDirect, 64)
	w.SetBlock(1, 1, 1, stone)

	if err := w.Tick(); !errors.Is(err, boom) {
		t.Fatalf("Tick = %v, want %v", err, boom)
	}

	dev.fail = nil
	flush(t, w)
	if len(dev.buffers) != 1 || dev.buffers[0].uploads != 1 {
		t.Fatalf("chunk not uploaded after recovery")
	}
}

func TestUploadFailureKeepsPreviousMesh(t *testing.T) {
	dev := &fakeDevice{}
	w := newTestWorld(t, dev, DrawDirect, 64)
	w.SetBlock(1, 1, 1, stone)
	flush(t, w)
	c := w.Chunk(ChunkCoord{})
	if c.MeshQuadCount() != 6 {
		t.Fatalf("quads = %d, want 6", c.MeshQuadCount())
	}

	lost := errors.New("context lost")
	dev.buffers[0].fail = lost
	w.SetBlock(8, 1, 1, stone)
	if err := w.Tick(); !errors.Is(err, lost) {
		t.Fatalf("Tick = %v, want %v", err, lost)
	}
	if c.MeshQuadCount() != 6 {
		t.Errorf("quads after failed upload = %d, want 6", c.MeshQuadCount())
	}
	if b := c.Batch(); b.DrawCount != 1 || b.IndexCounts[0] != 36 {
		t.Errorf("batch after failed upload = %d draws %v, want one draw of 36", b.DrawCount, b.IndexCounts)
	}

	dev.buffers[0].fail = nil
	flush(t, w)
	if c.MeshQuadCount() != 12 || c.Batch().DrawCount != 2 {
		t.Fatalf("after retry quads = %d draws = %d, want 12 and 2", c.MeshQuadCount(), c.Batch().DrawCount)
	}
}
