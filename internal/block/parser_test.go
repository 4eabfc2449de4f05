package block

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCatalog = `# comment line

1: name "Cobblestone", texture.all cobblestone
2: name "Grass", texture.top grass, texture.bottom dirt, texture.sides grass_side
3: name "Glass", texture.all glass, model models.glass
4: sameas 1, name "Mossy Cobblestone"
5: name "Rose", texture.all rose, model plant
6: name 'Water', texture.all water, model liquid
`

func mustParse(t *testing.T, src string) *Catalog {
	t.Helper()
	cat, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return cat
}

func TestParseCatalog(t *testing.T) {
	cat := mustParse(t, sampleCatalog)

	if got, want := cat.Len(), 7; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if cat.Type(Air) != nil {
		t.Fatalf("air should have no type")
	}

	grass := cat.Type(2)
	if grass.Name != "Grass" {
		t.Fatalf("type 2 name = %q, want Grass", grass.Name)
	}
	top, _ := cat.textures.Index("grass")
	dirt, _ := cat.textures.Index("dirt")
	side, _ := cat.textures.Index("grass_side")
	want := []int{side, side, top, dirt, side, side}
	for f, idx := range grass.TexIndices {
		if idx != want[f] {
			t.Errorf("grass face %v texture = %d, want %d", Face(f), idx, want[f])
		}
	}

	if !cat.Type(3).Glass() || !cat.Type(3).Transparent() {
		t.Errorf("glass flags not set")
	}
	if cat.IsOpaque(3) {
		t.Errorf("glass should not be opaque")
	}
	if !cat.IsOpaque(1) {
		t.Errorf("cobblestone should be opaque")
	}

	mossy := cat.Type(4)
	if mossy.Name != "Mossy Cobblestone" || mossy.Model != Cube {
		t.Errorf("sameas entry = %q/%s, want Mossy Cobblestone/cube", mossy.Name, mossy.Model.Name)
	}
	if mossy.TexIndices[0] != cat.Type(1).TexIndices[0] {
		t.Errorf("sameas did not copy textures")
	}

	rose := cat.Type(5)
	if rose.IsCube() || len(rose.TexIndices) != len(Plant.Faces) {
		t.Errorf("plant type: cube=%v faces=%d", rose.IsCube(), len(rose.TexIndices))
	}
	if cat.Type(6).Name != "Water" || !cat.Type(6).Translucent() {
		t.Errorf("liquid entry not parsed: %+v", cat.Type(6))
	}
}

func TestParseDefaults(t *testing.T) {
	cat := mustParse(t, "1: texture.top stone_top\n")
	bt := cat.Type(1)
	if bt.Name != "Unknown" || bt.Model != Cube {
		t.Fatalf("default entry = %q/%s", bt.Name, bt.Model.Name)
	}
	unknown, ok := cat.textures.Index("unknown")
	if !ok {
		t.Fatalf("default texture not registered")
	}
	if bt.TexIndices[FaceEast] != unknown {
		t.Errorf("side texture = %d, want unknown (%d)", bt.TexIndices[FaceEast], unknown)
	}
	if bt.TexIndices[FaceTop] == unknown {
		t.Errorf("top texture not overridden")
	}
}

func TestParseAppendsAndReplaces(t *testing.T) {
	cat := mustParse(t, "1: name \"A\"\n5: name \"B\"\n1: name \"C\"\n")
	if cat.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", cat.Len())
	}
	if cat.Type(1).Name != "C" {
		t.Errorf("type 1 = %q, want C", cat.Type(1).Name)
	}
	if cat.Type(2).Name != "B" {
		t.Errorf("type 2 = %q, want B", cat.Type(2).Name)
	}
	if bt, ok := cat.Lookup("B"); !ok || bt.ID != 2 {
		t.Errorf("Lookup(B) = %v, %v", bt, ok)
	}
}

func TestParseQuotedComma(t *testing.T) {
	cat := mustParse(t, `1: name "Oak, Planks", texture.all planks`)
	if cat.Type(1).Name != "Oak, Planks" {
		t.Fatalf("name = %q", cat.Type(1).Name)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
		line int
	}{
		{"bad id", "x: name \"A\"", ErrMalformed, 1},
		{"missing colon", "1 name \"A\"", ErrMalformed, 1},
		{"unknown sameas", "1: name \"A\"\n\n2: sameas 9", ErrUnknownSameAs, 3},
		{"unknown model", "1: model models.teapot", ErrUnknownModel, 1},
		{"unknown face", "1: texture.up stone", ErrUnknownFace, 1},
		{"bad name", "1: name Stone", ErrMalformed, 1},
		{"empty value", "1: name", ErrMalformed, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.src))
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err is not a *ParseError: %T", err)
			}
			if pe.Line != tc.line {
				t.Errorf("line = %d, want %d", pe.Line, tc.line)
			}
		})
	}
}

func TestUnknownKeyIgnored(t *testing.T) {
	cat := mustParse(t, `1: name "A", hardness 3`)
	if cat.Type(1).Name != "A" {
		t.Fatalf("entry not parsed")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.mcpy")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0644); err != nil {
		t.Fatal(err)
	}
	cat, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cat.Len() != 7 {
		t.Errorf("Len() = %d, want 7", cat.Len())
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestCatalogTextures(t *testing.T) {
	cat, err := Parse(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	names := cat.Textures()
	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("texture %q listed twice", n)
		}
		seen[n] = true
	}
	for _, want := range []string{"cobblestone", "grass", "dirt", "grass_side", "glass", "rose", "water"} {
		if !seen[want] {
			t.Errorf("texture %q missing from %v", want, names)
		}
	}

	names[0] = "changed"
	if cat.Textures()[0] == "changed" {
		t.Error("Textures returned the catalog's own slice")
	}
}
