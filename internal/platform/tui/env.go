package tui

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jigsaw-tetris/internal/core"
	"github.com/vovakirdan/jigsaw-tetris/internal/puzzle"
	"github.com/vovakirdan/jigsaw-tetris/internal/storage"
)

// Env is the state shared by every screen of one player session.
type Env struct {
	Store   *storage.Store // nil disables persistence
	Tracker *puzzle.Tracker
	Profile string
	Logger  *log.Logger
}

// NewEnv builds a session environment and restores the profile's puzzle
// progress from the store. Unreadable progress is logged and replaced by a
// fresh puzzle.
func NewEnv(store *storage.Store, profile string, collection []puzzle.Character, logger *log.Logger) *Env {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	env := &Env{
		Store:   store,
		Tracker: puzzle.NewTracker(collection),
		Profile: profile,
		Logger:  logger,
	}
	env.loadProgress()
	return env
}

func (e *Env) loadProgress() {
	if e.Store == nil {
		return
	}

	p, found, err := e.Store.LoadProgress(e.Profile)
	switch {
	case errors.Is(err, storage.ErrCorruptProgress):
		e.Logger.Warn("saved progress is corrupt, starting a fresh puzzle", "profile", e.Profile, "error", err)
	case err != nil:
		e.Logger.Warn("could not load progress", "profile", e.Profile, "error", err)
	case found:
		if err := e.Tracker.Restore(p); err != nil {
			e.Logger.Warn("could not restore progress", "profile", e.Profile, "error", err)
		}
	}
}

// SaveProgress persists the puzzle state. Failures are logged; play goes on.
func (e *Env) SaveProgress() {
	if e.Store == nil {
		return
	}
	if err := e.Store.SaveProgress(e.Profile, e.Tracker.Progress()); err != nil {
		e.Logger.Warn("could not save progress", "profile", e.Profile, "error", err)
	}
}

// SaveScore records a finished game. Failures are logged; play goes on.
func (e *Env) SaveScore(st core.GameState) {
	if e.Store == nil {
		return
	}
	runID, err := e.Store.SaveScore(storage.Result{
		Profile: e.Profile,
		Score:   st.Score,
		Level:   st.Level,
		Lines:   st.Lines,
	})
	if err != nil {
		e.Logger.Warn("could not save score", "profile", e.Profile, "error", err)
		return
	}
	e.Logger.Info("score saved", "profile", e.Profile, "score", st.Score, "run_id", runID)
}
