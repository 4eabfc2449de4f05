package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mcvox/internal/profiling"
	"mcvox/internal/world"
)

// SaveModified writes every chunk whose Modified flag is set and clears the
// flag once the batch is committed.
func (s *Store) SaveModified(ctx context.Context, w *world.World) (int, error) {
	return s.save(ctx, w, func(c *world.Chunk) bool { return c.Modified() })
}

// SaveAll writes every chunk of w.
func (s *Store) SaveAll(ctx context.Context, w *world.World) (int, error) {
	return s.save(ctx, w, func(*world.Chunk) bool { return true })
}

func (s *Store) save(ctx context.Context, w *world.World, want func(*world.Chunk) bool) (int, error) {
	defer profiling.Track("persistence.save")()

	blobs := make(map[world.ChunkCoord][]byte)
	var saved []*world.Chunk
	for _, c := range w.Chunks() {
		if !want(c) {
			continue
		}
		blobs[c.Coord()] = EncodeGrid(c.Grid())
		saved = append(saved, c)
	}
	if err := s.Put(ctx, blobs); err != nil {
		return 0, err
	}
	for _, c := range saved {
		c.ClearModified()
	}
	if len(saved) > 0 {
		s.log.Debug("chunks saved", zap.Int("count", len(saved)))
	}
	return len(saved), nil
}

// Load creates a chunk in w for every stored blob and queues it for meshing.
func (s *Store) Load(ctx context.Context, w *world.World) (int, error) {
	defer profiling.Track("persistence.Load")()

	coords, err := s.Coords(ctx)
	if err != nil {
		return 0, err
	}
	for _, coord := range coords {
		data, ok, err := s.Get(ctx, coord)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		c := w.ChunkOrCreate(coord)
		if err := DecodeGrid(data, c.Grid()); err != nil {
			return 0, fmt.Errorf("chunk %v: %w", coord, err)
		}
		w.QueueChunk(coord)
	}
	s.log.Info("chunks loaded", zap.Int("count", len(coords)))
	return len(coords), nil
}
