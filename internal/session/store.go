package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/pinely/internal/domain"
)

// StorageKey is the single key the whole session lives under.
const StorageKey = "pinely-state"

// Load restores the saved session. It never fails: a missing record, a
// read error or an unparseable record all yield the empty session, and
// the latter two are logged.
func Load(ctx context.Context, storage Storage, logger *slog.Logger) domain.SessionState {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	raw, err := storage.Get(ctx, StorageKey)
	if err != nil {
		if !IsNotFound(err) {
			logger.WarnContext(ctx, "session_load_failed", "error", err.Error())
		}
		return domain.NewSessionState()
	}

	var state domain.SessionState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		logger.WarnContext(ctx, "session_corrupt", "error", err.Error())
		return domain.NewSessionState()
	}
	if state.Clusters == nil {
		state.Clusters = []domain.Cluster{}
	}
	return state
}

// Save writes the full session record, replacing any previous one.
func Save(ctx context.Context, state domain.SessionState, storage Storage) error {
	if state.Clusters == nil {
		state.Clusters = []domain.Cluster{}
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := storage.Put(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Clear removes the saved session.
func Clear(ctx context.Context, storage Storage) error {
	if err := storage.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
