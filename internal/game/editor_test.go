package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"mcvox/internal/block"
	"mcvox/internal/world"
)

func TestEditorPlaceRemove(t *testing.T) {
	w := newDemoWorld(t, 0)
	e := NewEditor(w)
	if e.Selected() == block.Air {
		t.Fatal("empty palette")
	}

	// Straight down onto the grass at (15, 6, 0), clear of the demo features.
	eye := mgl32.Vec3{15, 40, 0}
	target := mgl32.Vec3{15, groundHeight, 0}
	if got := w.BlockNumber(15, groundHeight+1, 0); got != block.Air {
		t.Fatalf("test column is not clear: %d", got)
	}

	if !e.Place(eye, target) {
		t.Fatal("Place refused with a distant camera")
	}
	if got := w.BlockNumber(15, groundHeight+1, 0); got != e.Selected() {
		t.Fatalf("placed block = %d, want %d", got, e.Selected())
	}
	if !w.Chunk(world.ChunkCoord{}).Modified() {
		t.Error("chunk not marked modified")
	}

	if !e.Remove(eye, target) {
		t.Fatal("Remove failed")
	}
	if got := w.BlockNumber(15, groundHeight+1, 0); got != block.Air {
		t.Fatalf("block after Remove = %d, want air", got)
	}
}

func TestEditorRefusesCameraOverlap(t *testing.T) {
	w := newDemoWorld(t, 0)
	e := NewEditor(w)
	// The eye sits in the cell the new block would occupy.
	eye := mgl32.Vec3{15, groundHeight + 1, 0}
	target := mgl32.Vec3{15, groundHeight, 0}
	if e.Place(eye, target) {
		t.Fatal("placement inside the camera box succeeded")
	}
	if got := w.BlockNumber(15, groundHeight+1, 0); got != block.Air {
		t.Fatalf("refused placement still wrote %d", got)
	}
}

func TestEditorMiss(t *testing.T) {
	w := newDemoWorld(t, 0)
	e := NewEditor(w)
	eye := mgl32.Vec3{0, 40, 0}
	up := mgl32.Vec3{0, 80, 0}
	if e.Place(eye, up) || e.Remove(eye, up) {
		t.Fatal("edit succeeded without a hit")
	}
}

func TestEditorNextCycles(t *testing.T) {
	w := newDemoWorld(t, 0)
	e := NewEditor(w)
	first := e.Selected()
	for i, n := 0, len(e.palette); i < n; i++ {
		e.Next()
	}
	if e.Selected() != first {
		t.Fatalf("palette did not wrap: got %d, want %d", e.Selected(), first)
	}
}
