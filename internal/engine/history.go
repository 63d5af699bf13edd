package engine

import "sync"

const defaultHistorySize = 50

// History is a bounded, newest-first record of export runs. It is the only
// state the serve mode keeps between runs; nothing survives a restart.
type History struct {
	mu   sync.Mutex
	max  int
	runs []RunRecord
}

// NewHistory creates a history keeping at most max runs.
func NewHistory(max int) *History {
	if max <= 0 {
		max = defaultHistorySize
	}
	return &History{max: max}
}

// Add records a run, evicting the oldest entry when full.
func (h *History) Add(rec RunRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.runs = append([]RunRecord{rec}, h.runs...)
	if len(h.runs) > h.max {
		h.runs = h.runs[:h.max]
	}
}

// Runs returns a copy of the recorded runs, newest first.
func (h *History) Runs() []RunRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]RunRecord, len(h.runs))
	copy(out, h.runs)
	return out
}

// Latest returns the most recent run, if any.
func (h *History) Latest() (RunRecord, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.runs) == 0 {
		return RunRecord{}, false
	}
	return h.runs[0], true
}
