package store

import "sync/atomic"

// sequencer hands out monotonically increasing product ids.
type sequencer struct{ n atomic.Uint64 }

// next returns the next id, starting at 1.
func (s *sequencer) next() int64 { return int64(s.n.Add(1)) }
