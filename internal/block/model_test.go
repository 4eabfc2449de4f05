package block

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// Each cube face must be wound counter-clockwise when seen from outside so
// back-face culling keeps it.
func TestCubeWinding(t *testing.T) {
	for f, face := range Cube.Faces {
		p := face.Positions
		n := p[1].Sub(p[0]).Cross(p[2].Sub(p[0]))
		d := Directions[f]
		want := mgl32.Vec3{float32(d[0]), float32(d[1]), float32(d[2])}
		if n.Normalize().Sub(want).Len() > 1e-5 {
			t.Errorf("face %v normal = %v, want %v", Face(f), n, want)
		}
	}
}

func TestCubeShading(t *testing.T) {
	want := [FaceCount]float32{0.6, 0.6, 1.0, 0.4, 0.8, 0.8}
	for f, face := range Cube.Faces {
		for c, s := range face.Shading {
			if s != want[f] {
				t.Errorf("face %v corner %d shading = %v, want %v", Face(f), c, s, want[f])
			}
		}
	}
}

func TestSlabTopLowered(t *testing.T) {
	for _, p := range Slab.Faces[FaceTop].Positions {
		if p.Y() != 0 {
			t.Fatalf("slab top at y=%v, want 0", p.Y())
		}
	}
}

func TestAABBIntersects(t *testing.T) {
	unit := AABB{Min: mgl32.Vec3{-0.5, -0.5, -0.5}, Max: mgl32.Vec3{0.5, 0.5, 0.5}}
	if !unit.Intersects(unit.Translate(mgl32.Vec3{0.5, 0, 0})) {
		t.Errorf("overlapping boxes reported disjoint")
	}
	if unit.Intersects(unit.Translate(mgl32.Vec3{1, 0, 0})) {
		t.Errorf("touching boxes reported overlapping")
	}
	if unit.Intersects(unit.Translate(mgl32.Vec3{0, 3, 0})) {
		t.Errorf("distant boxes reported overlapping")
	}
}
