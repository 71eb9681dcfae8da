package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Axioz99/claude-obsidian-sync/internal/core/logging"
)

// MaxAge is the retention window for abandoned session state. Records older
// than this are reclaimed by Sweep.
const MaxAge = 24 * time.Hour

// Store persists one JSON record per session id under a scratch directory.
// Operations are whole-record: load, save, delete, list, sweep. There is no
// cross-process locking; deployments are expected to have a single writer
// per session at a time.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir, or at the default scratch
// directory when dir is empty.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = logging.DefaultLogDir()
	}
	return &Store{dir: dir}
}

func (s *Store) path(sessionID string) string {
	return filepath.Join(s.dir, sessionID+".json")
}

// Load reads the state for a session. A missing record is not an error:
// both return values are nil.
func (s *Store) Load(sessionID string) (*SessionState, error) {
	data, err := os.ReadFile(s.path(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}

	var st SessionState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse session state %s: %w", sessionID, err)
	}
	return &st, nil
}

// Save writes the full record, replacing any previous one. The write goes
// through a temp file and rename so a crashed invocation never leaves a torn
// record behind.
func (s *Store) Save(st *SessionState) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, st.SessionID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write session state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(st.SessionID)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace session state: %w", err)
	}
	return nil
}

// Delete removes a session's record. Deleting a missing record is a no-op.
func (s *Store) Delete(sessionID string) error {
	if err := os.Remove(s.path(sessionID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session state: %w", err)
	}
	return nil
}

// List returns the session ids that currently have persisted state.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list session state: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

// Sweep deletes records whose last modification is older than maxAge,
// protecting against unbounded growth from sessions that never stopped.
// Returns the number of records removed.
func (s *Store) Sweep(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to sweep session state: %w", err)
	}

	removed := 0
	now := time.Now()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > maxAge {
			if err := os.Remove(filepath.Join(s.dir, name)); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
