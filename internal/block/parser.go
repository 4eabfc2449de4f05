package block

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"mcvox/internal/logger"
)

var (
	ErrUnknownSameAs = errors.New("sameas references an unknown id")
	ErrUnknownModel  = errors.New("unknown model")
	ErrUnknownFace   = errors.New("unknown texture face")
	ErrMalformed     = errors.New("malformed entry")
)

// ParseError identifies the catalog line that could not be parsed.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("block catalog line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadFile parses the catalog at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open block catalog: %w", err)
	}
	defer f.Close()

	cat, err := Parse(f)
	if err != nil {
		return nil, err
	}
	logger.Info("block catalog loaded",
		zap.String("path", path),
		zap.Int("types", cat.Len()-1),
		zap.Int("textures", cat.textures.Len()))
	return cat, nil
}

// Parse reads a catalog from r. Each entry has the form
//
//	<id>: key value, key value, ...
//
// Ids below the current table length replace the existing entry; any other id
// is appended at the next free slot.
func Parse(r io.Reader) (*Catalog, error) {
	cat := &Catalog{
		types:    []*Type{nil},
		textures: newTextureSet(),
	}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := cat.parseEntry(line); err != nil {
			return nil, &ParseError{Line: lineNo, Text: raw, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read block catalog: %w", err)
	}
	return cat, nil
}

func (c *Catalog) parseEntry(line string) error {
	num, props, ok := strings.Cut(line, ":")
	if !ok {
		return fmt.Errorf("%w: missing ':'", ErrMalformed)
	}
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return fmt.Errorf("%w: id: %v", ErrMalformed, err)
	}
	if n <= 0 || n > 0xFFFF {
		return fmt.Errorf("%w: id %d out of range", ErrMalformed, n)
	}

	name := "Unknown"
	model := Cube
	textures := []TextureRef{{Face: "all", Name: "unknown"}}

	for _, prop := range splitProps(props) {
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		key, value, _ := strings.Cut(prop, " ")
		value = strings.TrimSpace(value)
		if value == "" {
			return fmt.Errorf("%w: property %q has no value", ErrMalformed, key)
		}

		switch {
		case key == "sameas":
			ref, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%w: sameas: %v", ErrMalformed, err)
			}
			if ref <= 0 || ref >= len(c.types) || c.types[ref] == nil {
				return fmt.Errorf("%w: %d", ErrUnknownSameAs, ref)
			}
			src := c.types[ref]
			name = src.Name
			model = src.Model
			textures = append([]TextureRef(nil), src.Textures...)

		case key == "name":
			s, err := unquote(value)
			if err != nil {
				return fmt.Errorf("%w: name: %v", ErrMalformed, err)
			}
			name = s

		case strings.HasPrefix(key, "texture."):
			face := strings.TrimPrefix(key, "texture.")
			if _, ok := faceSelectors[face]; !ok {
				return fmt.Errorf("%w: %q", ErrUnknownFace, face)
			}
			textures = setTexture(textures, face, value)

		case key == "model":
			m, ok := Models[strings.TrimPrefix(value, "models.")]
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownModel, value)
			}
			model = m

		default:
			logger.Warn("ignoring unknown block property",
				zap.Int("id", n), zap.String("key", key))
		}
	}

	id := ID(n)
	if n >= len(c.types) {
		if n != len(c.types) {
			logger.Warn("block id out of sequence, appending",
				zap.Int("declared", n), zap.Int("assigned", len(c.types)))
		}
		id = ID(len(c.types))
		c.types = append(c.types, nil)
	}
	c.types[id] = newType(id, name, model, textures, c.textures)
	return nil
}

// setTexture overrides an existing selector in place or appends a new one.
func setTexture(refs []TextureRef, face, name string) []TextureRef {
	for i := range refs {
		if refs[i].Face == face {
			refs[i].Name = name
			return refs
		}
	}
	return append(refs, TextureRef{Face: face, Name: name})
}

// splitProps splits on commas that are not inside a quoted string.
func splitProps(s string) []string {
	var out []string
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == ',':
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func unquote(s string) (string, error) {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1], nil
	}
	return strconv.Unquote(s)
}
