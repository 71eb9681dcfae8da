package vault

import (
	"fmt"
	"os"
	"sync"

	"github.com/Axioz99/claude-obsidian-sync/internal/core/format"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/logging"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/models"
)

const logCategory = "OBSIDIAN"

// Config is the sync engine's immutable configuration snapshot.
type Config struct {
	VaultPath          string
	BaseFolder         string
	ObservationsFolder string
	SummariesFolder    string
	SyncObservations   bool
	SyncSummaries      bool
	Enabled            bool
}

// DefaultConfig returns an enabled configuration for a vault with every
// optional field at its default.
func DefaultConfig(vaultPath string) Config {
	return Config{
		VaultPath:        vaultPath,
		SyncObservations: true,
		SyncSummaries:    true,
		Enabled:          true,
	}
}

// Engine renders notes and writes them into the vault. One failed note is
// logged and reported in its SyncResult; it never aborts a batch or
// propagates to the caller.
type Engine struct {
	cfg    Config
	logger logging.Logger
}

// ObservationItem pairs an observation with its metadata for batch syncs.
type ObservationItem struct {
	Observation models.Observation
	Meta        models.NoteMetadata
}

// SummaryItem pairs a summary with its metadata for batch syncs.
type SummaryItem struct {
	Summary models.Summary
	Meta    models.NoteMetadata
}

// New validates that the configured vault path exists and is a directory,
// fills folder defaults, and returns an engine. Validation failures surface
// here, before any note is written.
func New(cfg Config, logger logging.Logger) (*Engine, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}

	info, err := os.Stat(cfg.VaultPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("vault path does not exist: %s", cfg.VaultPath)
		}
		return nil, fmt.Errorf("failed to stat vault path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path is not a directory: %s", cfg.VaultPath)
	}

	if cfg.BaseFolder == "" {
		cfg.BaseFolder = DefaultBaseFolder
	}
	if cfg.ObservationsFolder == "" {
		cfg.ObservationsFolder = DefaultObservationsFolder
	}
	if cfg.SummariesFolder == "" {
		cfg.SummariesFolder = DefaultSummariesFolder
	}

	e := &Engine{cfg: cfg, logger: logger}
	if cfg.Enabled {
		logger.Info(logCategory, "sync engine initialized", map[string]any{
			"vaultPath":  cfg.VaultPath,
			"baseFolder": cfg.BaseFolder,
		})
	}
	return e, nil
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Enabled reports whether any sync can happen: the master switch must be on
// and a vault path configured. Checked per operation, not just at
// construction, since an engine may be long-lived.
func (e *Engine) Enabled() bool {
	return e.cfg.Enabled && e.cfg.VaultPath != ""
}

func (e *Engine) ensureDirectory(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	e.logger.Debug(logCategory, "created directory", map[string]any{"path": dir})
	return nil
}

func (e *Engine) writeNote(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}
	e.logger.Debug(logCategory, "wrote note", map[string]any{"path": path})
	return nil
}

// SyncObservation renders one observation note and writes it into the vault.
// A disabled sync (globally or per-kind) is a success with no file path.
func (e *Engine) SyncObservation(obs models.Observation, meta models.NoteMetadata) models.SyncResult {
	if !e.Enabled() || !e.cfg.SyncObservations {
		return models.SyncResult{Success: true}
	}

	content := format.ObservationNote(obs, meta)
	dir, path := e.ObservationPath(obs, meta)

	if err := e.ensureDirectory(dir); err != nil {
		return e.fail("failed to sync observation", meta, err)
	}
	if err := e.writeNote(path, content); err != nil {
		return e.fail("failed to sync observation", meta, err)
	}

	e.logger.Info(logCategory, "observation synced", map[string]any{
		"id":    meta.ID,
		"type":  string(obs.Type),
		"title": obs.Title,
		"path":  path,
	})
	return models.SyncResult{Success: true, FilePath: path}
}

// SyncSummary renders one summary note and writes it into the vault, under
// the same contract as SyncObservation.
func (e *Engine) SyncSummary(sum models.Summary, meta models.NoteMetadata) models.SyncResult {
	if !e.Enabled() || !e.cfg.SyncSummaries {
		return models.SyncResult{Success: true}
	}

	content := format.SummaryNote(sum, meta)
	dir, path := e.SummaryPath(sum, meta)

	if err := e.ensureDirectory(dir); err != nil {
		return e.fail("failed to sync summary", meta, err)
	}
	if err := e.writeNote(path, content); err != nil {
		return e.fail("failed to sync summary", meta, err)
	}

	e.logger.Info(logCategory, "summary synced", map[string]any{
		"id":      meta.ID,
		"request": sum.Request,
		"path":    path,
	})
	return models.SyncResult{Success: true, FilePath: path}
}

func (e *Engine) fail(msg string, meta models.NoteMetadata, err error) models.SyncResult {
	e.logger.Error(logCategory, msg, map[string]any{"id": meta.ID}, err)
	return models.SyncResult{Success: false, Error: err.Error()}
}

// SyncObservations writes every item concurrently and waits for all of them
// to settle. The returned slice has exactly one result per input, in input
// order; an individual failure or panic becomes that item's failure result
// and never aborts the rest.
func (e *Engine) SyncObservations(items []ObservationItem) []models.SyncResult {
	results := make([]models.SyncResult, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item ObservationItem) {
			defer wg.Done()
			defer settle(&results[i])
			results[i] = e.SyncObservation(item.Observation, item.Meta)
		}(i, item)
	}
	wg.Wait()
	return results
}

// SyncSummaries is the batch variant of SyncSummary, with the same
// settle-all discipline as SyncObservations.
func (e *Engine) SyncSummaries(items []SummaryItem) []models.SyncResult {
	results := make([]models.SyncResult, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item SummaryItem) {
			defer wg.Done()
			defer settle(&results[i])
			results[i] = e.SyncSummary(item.Summary, item.Meta)
		}(i, item)
	}
	wg.Wait()
	return results
}

// settle converts a panic inside one batch item into that item's failure
// result, keeping the one-result-per-input contract.
func settle(result *models.SyncResult) {
	if r := recover(); r != nil {
		*result = models.SyncResult{Success: false, Error: fmt.Sprint(r)}
	}
}
