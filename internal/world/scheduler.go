package world

import (
	"go.uber.org/zap"

	"mcvox/internal/profiling"
)

// Scheduler spreads subchunk rebuilds over ticks. Each tick spends at most
// budget rebuilds across the chunks with queued work, oldest chunk first, and
// uploads every chunk whose queue emptied.
type Scheduler struct {
	budget  int
	pending orderedSet[*Chunk]
	ready   orderedSet[*Chunk]
	rebuilt int
	log     *zap.Logger
}

func newScheduler(budget int, log *zap.Logger) *Scheduler {
	if budget < 1 {
		budget = 1
	}
	return &Scheduler{
		budget:  budget,
		pending: newOrderedSet[*Chunk](),
		ready:   newOrderedSet[*Chunk](),
		log:     log,
	}
}

// Budget returns the per-tick rebuild limit.
func (s *Scheduler) Budget() int { return s.budget }

// Rebuilt returns the total number of subchunk rebuilds so far.
func (s *Scheduler) Rebuilt() int { return s.rebuilt }

// Pending returns the number of chunks with queued subchunks.
func (s *Scheduler) Pending() int { return s.pending.Len() }

// Idle reports whether no work is left.
func (s *Scheduler) Idle() bool { return s.pending.Len() == 0 && s.ready.Len() == 0 }

func (s *Scheduler) schedule(c *Chunk) { s.pending.Push(c) }

// Tick runs one bounded round of rebuilds followed by the uploads they
// completed. A chunk only partly drained stays at the head of the queue.
func (s *Scheduler) Tick() error {
	defer profiling.Track("world.Tick")()

	remaining := s.budget
	for remaining > 0 {
		c, ok := s.pending.Peek()
		if !ok {
			break
		}
		n, drained := c.processUpdates(remaining)
		remaining -= n
		s.rebuilt += n
		profiling.Count("world.subchunks", n)
		if !drained {
			break
		}
		s.pending.Pop()
		s.ready.Push(c)
	}

	return s.flushReady()
}

func (s *Scheduler) flushReady() error {
	for n := s.ready.Len(); n > 0; n-- {
		c, _ := s.ready.Pop()
		if c.released {
			continue
		}
		if err := c.UpdateMesh(); err != nil {
			s.ready.Push(c)
			return err
		}
		s.log.Debug("chunk uploaded",
			zap.Int("x", c.coord.X), zap.Int("y", c.coord.Y), zap.Int("z", c.coord.Z),
			zap.Int("quads", c.meshQuadCount),
			zap.Int("translucent", c.translucentQuadCount),
			zap.Int("draws", c.batch.DrawCount))
		profiling.Count("world.uploads", 1)
	}
	return nil
}

func (s *Scheduler) clear() {
	s.pending.Clear()
	s.ready.Clear()
}
