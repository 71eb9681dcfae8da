package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Axioz99/claude-obsidian-sync/internal/core/config"
)

// noteInfo is one Markdown note found in the vault tree.
type noteInfo struct {
	path    string
	kind    string // "observation" or "summary"
	size    int64
	modTime time.Time
}

// loadVaultConfig loads config relative to the current working directory.
func loadVaultConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if errors.Is(err, config.ErrNotFound) {
		return nil, errors.New("no config file found; create .claude/obsidian-sync.toml first")
	}
	return cfg, err
}

// collectNotes walks the sync tree under the vault and returns all notes,
// newest first. A vault with no synced notes yet is not an error.
func collectNotes(cfg *config.Config) ([]noteInfo, error) {
	base := filepath.Join(cfg.VaultPath, cfg.BaseFolder)
	if _, err := os.Stat(base); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var notes []noteInfo
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		notes = append(notes, noteInfo{
			path:    path,
			kind:    noteKind(d.Name()),
			size:    info.Size(),
			modTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].modTime.After(notes[j].modTime)
	})
	return notes, nil
}

func noteKind(name string) string {
	switch {
	case strings.HasPrefix(name, "obs_"):
		return "observation"
	case strings.HasPrefix(name, "sum_"):
		return "summary"
	default:
		return "note"
	}
}
