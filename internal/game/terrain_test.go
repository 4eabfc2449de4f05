package game

import (
	"path/filepath"
	"strings"
	"testing"

	"mcvox/internal/block"
	"mcvox/internal/world"
)

const testSeed = 123

func demoCatalog(t *testing.T) *block.Catalog {
	t.Helper()
	cat, err := block.LoadFile(filepath.Join("..", "..", "data", "blocks.mcpy"))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func newDemoWorld(t *testing.T, radius int) *world.World {
	t.Helper()
	w := world.New(demoCatalog(t), nil, world.Options{ChunkUpdates: 64})
	GenerateDemo(w, radius, testSeed)
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	return w
}

func mustID(t *testing.T, cat *block.Catalog, name string) block.ID {
	t.Helper()
	bt, ok := cat.Lookup(name)
	if !ok {
		t.Fatalf("catalog has no %q", name)
	}
	return bt.ID
}

func TestGenerateDemoLayout(t *testing.T) {
	w := newDemoWorld(t, 1)
	cat := w.Catalog()

	if got := len(w.Chunks()); got != 9 {
		t.Fatalf("got %d chunks, want 9", got)
	}

	cases := []struct {
		x, y, z int
		name    string
	}{
		{0, 0, 0, "Stone"},
		{15, groundHeight, 0, "Grass"},
		{boxMin, groundHeight + 1, boxMin, "Glass"},
		{poolMin, groundHeight, poolMax, "Water"},
		{poolMin, groundHeight + 1, poolMin - 1, "Stone Slab"},
	}
	for _, tc := range cases {
		if got, want := w.BlockNumber(tc.x, tc.y, tc.z), mustID(t, cat, tc.name); got != want {
			t.Errorf("block at (%d,%d,%d) = %d, want %s (%d)", tc.x, tc.y, tc.z, got, tc.name, want)
		}
	}

	// Outside the origin chunk the grass follows the height map with dirt below.
	heights := newHeightMap(testSeed)
	for _, col := range [][2]int{{-5, 20}, {30, -12}, {-16, -16}} {
		top := heights.at(col[0], col[1])
		if got := w.BlockNumber(col[0], top, col[1]); got != mustID(t, cat, "Grass") {
			t.Errorf("surface at %v (y=%d) = %d, want grass", col, top, got)
		}
		if got := w.BlockNumber(col[0], top-1, col[1]); got != mustID(t, cat, "Dirt") {
			t.Errorf("below surface at %v = %d, want dirt", col, got)
		}
	}

	// The inside of the glass box stays empty.
	if got := w.BlockNumber(4, groundHeight+2, 4); got != block.Air {
		t.Errorf("glass box interior = %d, want air", got)
	}
}

func TestGenerateDemoSkyLight(t *testing.T) {
	w := newDemoWorld(t, 0)

	if got := w.SkyLight(0, groundHeight+1, 0); got != world.MaxLight {
		t.Errorf("sky light above ground = %d, want %d", got, world.MaxLight)
	}
	if got := w.SkyLight(0, groundHeight-1, 0); got != 0 {
		t.Errorf("sky light under ground = %d, want 0", got)
	}
	// Glass is transparent, so the box interior sees the sky.
	if got := w.SkyLight(4, groundHeight+2, 4); got != world.MaxLight {
		t.Errorf("sky light inside glass box = %d, want %d", got, world.MaxLight)
	}
}

func TestGenerateDemoMeshes(t *testing.T) {
	w := newDemoWorld(t, 0)
	c := w.Chunk(world.ChunkCoord{})
	if c == nil {
		t.Fatal("origin chunk missing")
	}
	if c.MeshQuadCount() == 0 {
		t.Error("origin chunk has no opaque quads")
	}
	if c.TranslucentQuadCount() == 0 {
		t.Error("water pool produced no translucent quads")
	}
	if c.PendingSubchunks() != 0 {
		t.Errorf("%d subchunks still pending after Flush", c.PendingSubchunks())
	}
	if !w.Scheduler().Idle() {
		t.Error("scheduler not idle after Flush")
	}
}

func TestGenerateDemoDeterministic(t *testing.T) {
	a := newDemoWorld(t, 1)
	b := newDemoWorld(t, 1)
	for x := -16; x < 32; x++ {
		for z := -16; z < 32; z++ {
			y := groundHeight + 1
			if a.BlockNumber(x, y, z) != b.BlockNumber(x, y, z) {
				t.Fatalf("worlds differ at (%d,%d,%d)", x, y, z)
			}
		}
	}
}

func TestHeightMap(t *testing.T) {
	h := newHeightMap(testSeed)
	varied := false
	for x := -48; x < 48; x++ {
		for z := -48; z < 48; z++ {
			y := h.at(x, z)
			if y < groundHeight || y > groundHeight+hillAmplitude {
				t.Fatalf("height at (%d,%d) = %d, outside [%d,%d]", x, z, y, groundHeight, groundHeight+hillAmplitude)
			}
			if world.ChunkPosition(x, 0, z) == (world.ChunkCoord{}) && y != groundHeight {
				t.Fatalf("origin chunk column (%d,%d) not flat: %d", x, z, y)
			}
			if y != groundHeight {
				varied = true
			}
		}
	}
	if !varied {
		t.Error("height map is flat everywhere")
	}
}

func TestGenerateDemoMissingTypes(t *testing.T) {
	cat, err := block.Parse(strings.NewReader("1: name \"Stone\", texture.all stone\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w := world.New(cat, nil, world.Options{ChunkUpdates: 512})
	GenerateDemo(w, 0, testSeed)
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := w.BlockNumber(0, groundHeight, 0); got != block.Air {
		t.Errorf("grass layer without a Grass type = %d, want air", got)
	}
	if got := w.BlockNumber(0, 0, 0); got != 1 {
		t.Errorf("stone layer = %d, want 1", got)
	}
}
