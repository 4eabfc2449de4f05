// Package persistence saves chunk grids to a SQLite database as
// zstd-compressed blobs and loads them back into a world.
package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"mcvox/internal/block"
	"mcvox/internal/world"
)

const (
	gridMagic   = "MCVX"
	gridVersion = 1

	headerSize = len(gridMagic) + 1
	rawSize    = headerSize + world.ChunkVolume*2 + world.ChunkVolume
)

var (
	ErrBadMagic   = errors.New("persistence: not a chunk blob")
	ErrBadVersion = errors.New("persistence: unsupported chunk blob version")
	ErrTruncated  = errors.New("persistence: truncated chunk blob")
)

// Shared coders; EncodeAll and DecodeAll are safe for concurrent use.
var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
)

// EncodeGrid serialises block ids (little-endian uint16) followed by packed
// light bytes, both in x, y, z order, and compresses the result.
func EncodeGrid(g *world.Grid) []byte {
	raw := make([]byte, rawSize)
	copy(raw, gridMagic)
	raw[len(gridMagic)] = gridVersion

	ids := raw[headerSize : headerSize+world.ChunkVolume*2]
	light := raw[headerSize+world.ChunkVolume*2:]
	i := 0
	for x := 0; x < world.ChunkSizeX; x++ {
		for y := 0; y < world.ChunkSizeY; y++ {
			for z := 0; z < world.ChunkSizeZ; z++ {
				binary.LittleEndian.PutUint16(ids[i*2:], uint16(g.Block(x, y, z)))
				light[i] = g.RawLight(x, y, z)
				i++
			}
		}
	}
	return encoder.EncodeAll(raw, make([]byte, 0, len(raw)/8))
}

// DecodeGrid overwrites g with a blob produced by EncodeGrid.
func DecodeGrid(data []byte, g *world.Grid) error {
	raw, err := decoder.DecodeAll(data, make([]byte, 0, rawSize))
	if err != nil {
		return fmt.Errorf("decompress chunk: %w", err)
	}
	if len(raw) < headerSize || string(raw[:len(gridMagic)]) != gridMagic {
		return ErrBadMagic
	}
	if raw[len(gridMagic)] != gridVersion {
		return fmt.Errorf("%w: %d", ErrBadVersion, raw[len(gridMagic)])
	}
	if len(raw) != rawSize {
		return fmt.Errorf("%w: %d bytes", ErrTruncated, len(raw))
	}

	ids := raw[headerSize : headerSize+world.ChunkVolume*2]
	light := raw[headerSize+world.ChunkVolume*2:]
	i := 0
	for x := 0; x < world.ChunkSizeX; x++ {
		for y := 0; y < world.ChunkSizeY; y++ {
			for z := 0; z < world.ChunkSizeZ; z++ {
				g.SetBlockRaw(x, y, z, block.ID(binary.LittleEndian.Uint16(ids[i*2:])))
				bl, sky := world.UnpackLight(light[i])
				g.SetBlockLight(x, y, z, bl)
				g.SetSkyLight(x, y, z, sky)
				i++
			}
		}
	}
	return nil
}
