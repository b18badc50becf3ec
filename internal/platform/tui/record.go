package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rain/internal/rain"
	"github.com/vovakirdan/tui-rain/internal/storage"
)

// sessionRecord tracks one viewing session in the store. A nil store makes
// every method a no-op, so hosts run the same way without storage.
type sessionRecord struct {
	store   *storage.Store
	logger  *log.Logger
	id      int64
	started time.Time
	stats   func() rain.Stats
}

func startRecord(store *storage.Store, sess storage.Session, logger *log.Logger) *sessionRecord {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rec := &sessionRecord{store: store, logger: logger, started: time.Now()}
	if store == nil {
		return rec
	}
	id, err := store.StartSession(sess)
	if err != nil {
		logger.Warn("could not record session", "error", err)
		rec.store = nil
		return rec
	}
	rec.id = id
	return rec
}

// attach sets the source of the counters stored when the session ends.
func (r *sessionRecord) attach(stats func() rain.Stats) {
	r.stats = stats
}

// finish stores duration and engine counters.
func (r *sessionRecord) finish() {
	if r.store == nil {
		return
	}
	var st rain.Stats
	if r.stats != nil {
		st = r.stats()
	}
	err := r.store.EndSession(r.id, storage.SessionEnd{
		Duration:     time.Since(r.started),
		Ticks:        st.Ticks,
		DropsSpawned: st.DropsSpawned,
		RevealCycles: st.RevealCycles,
	})
	if err != nil {
		r.logger.Warn("could not finish session", "id", r.id, "error", err)
	}
}
