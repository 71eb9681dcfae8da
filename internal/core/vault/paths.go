package vault

import (
	"fmt"
	"path/filepath"

	"github.com/Axioz99/claude-obsidian-sync/internal/core/format"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/models"
)

// Folder defaults. The observation and summary subfolders keep the Chinese
// names the note layout shipped with; both are configurable.
const (
	DefaultBaseFolder         = "ClaudeCode"
	DefaultObservationsFolder = "观察"
	DefaultSummariesFolder    = "摘要"
)

func (e *Engine) observationsDir() string {
	return filepath.Join(e.cfg.VaultPath, e.cfg.BaseFolder, e.cfg.ObservationsFolder)
}

func (e *Engine) summariesDir() string {
	return filepath.Join(e.cfg.VaultPath, e.cfg.BaseFolder, e.cfg.SummariesFolder)
}

// ObservationPath derives the target directory and file path for an
// observation note. The year-month bucket comes from the note's CreatedAt,
// not the wall clock, so late syncs land in the month the event happened.
// Filenames are not collision-free: equal id and sanitized title within one
// month overwrite each other.
func (e *Engine) ObservationPath(obs models.Observation, meta models.NoteMetadata) (dir, path string) {
	dir = filepath.Join(e.observationsDir(), format.FormatYearMonth(meta.CreatedAt))
	name := fmt.Sprintf("obs_%d_%s.md", meta.ID, format.SanitizeFileName(obs.Title))
	return dir, filepath.Join(dir, name)
}

// SummaryPath derives the target directory and file path for a summary note.
func (e *Engine) SummaryPath(sum models.Summary, meta models.NoteMetadata) (dir, path string) {
	dir = filepath.Join(e.summariesDir(), format.FormatYearMonth(meta.CreatedAt))
	name := fmt.Sprintf("sum_%d_%s.md", meta.ID, format.SanitizeFileName(sum.Request))
	return dir, filepath.Join(dir, name)
}
