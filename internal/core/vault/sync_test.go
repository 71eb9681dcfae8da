package vault

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Axioz99/claude-obsidian-sync/internal/core/logging"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/models"
)

func testEngine(t *testing.T, mutate func(*Config)) (*Engine, string) {
	t.Helper()
	vaultDir := t.TempDir()
	cfg := DefaultConfig(vaultDir)
	if mutate != nil {
		mutate(&cfg)
	}
	engine, err := New(cfg, logging.NopLogger{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return engine, vaultDir
}

func metaAt(id int64, created time.Time) models.NoteMetadata {
	return models.NoteMetadata{
		ID:           id,
		SessionID:    "session-1",
		Project:      "demo",
		PromptNumber: 1,
		CreatedAt:    created.UnixMilli(),
	}
}

func TestNewValidatesVaultPath(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		_, err := New(DefaultConfig(filepath.Join(t.TempDir(), "nope")), nil)
		if err == nil || !strings.Contains(err.Error(), "does not exist") {
			t.Errorf("want missing-path error, got %v", err)
		}
	})

	t.Run("path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.txt")
		if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := New(DefaultConfig(file), nil)
		if err == nil || !strings.Contains(err.Error(), "not a directory") {
			t.Errorf("want not-a-directory error, got %v", err)
		}
	})

	t.Run("defaults filled", func(t *testing.T) {
		engine, _ := testEngine(t, nil)
		cfg := engine.Config()
		if cfg.BaseFolder != "ClaudeCode" || cfg.ObservationsFolder != "观察" || cfg.SummariesFolder != "摘要" {
			t.Errorf("defaults not applied: %+v", cfg)
		}
	})
}

func TestSyncObservationWritesFile(t *testing.T) {
	engine, vaultDir := testEngine(t, nil)

	created := time.Date(2026, 1, 28, 12, 0, 0, 0, time.Local)
	obs := models.Observation{Type: models.TypeBugfix, Title: "测试观察"}
	result := engine.SyncObservation(obs, metaAt(1, created))

	if !result.Success {
		t.Fatalf("sync failed: %s", result.Error)
	}
	wantPath := filepath.Join(vaultDir, "ClaudeCode", "观察", "2026-01", "obs_1_测试观察.md")
	if result.FilePath != wantPath {
		t.Errorf("FilePath = %q, want %q", result.FilePath, wantPath)
	}

	content, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("note not written: %v", err)
	}
	if !strings.Contains(string(content), "id: 1") {
		t.Errorf("note missing id: %s", content)
	}
	if !strings.Contains(string(content), "# 🔴 测试观察") {
		t.Errorf("note missing H1: %s", content)
	}
}

func TestSyncObservationDisabled(t *testing.T) {
	t.Run("master switch off", func(t *testing.T) {
		engine, vaultDir := testEngine(t, func(c *Config) { c.Enabled = false })
		result := engine.SyncObservation(models.Observation{Type: models.TypeChange}, metaAt(1, time.Now()))
		if !result.Success || result.FilePath != "" {
			t.Errorf("disabled sync should be a silent success: %+v", result)
		}
		assertNoNotes(t, vaultDir)
	})

	t.Run("observation flag off", func(t *testing.T) {
		engine, vaultDir := testEngine(t, func(c *Config) { c.SyncObservations = false })
		result := engine.SyncObservation(models.Observation{Type: models.TypeChange}, metaAt(1, time.Now()))
		if !result.Success || result.FilePath != "" {
			t.Errorf("disabled sync should be a silent success: %+v", result)
		}
		assertNoNotes(t, vaultDir)

		// The summary flag is independent
		sumResult := engine.SyncSummary(models.Summary{Request: "r"}, metaAt(2, time.Now()))
		if !sumResult.Success || sumResult.FilePath == "" {
			t.Errorf("summary sync should still write: %+v", sumResult)
		}
	})
}

func TestSyncSummaryWritesFile(t *testing.T) {
	engine, vaultDir := testEngine(t, nil)

	created := time.Date(2026, 5, 15, 8, 0, 0, 0, time.Local)
	result := engine.SyncSummary(models.Summary{Request: "会话 abc12345"}, metaAt(7, created))

	if !result.Success {
		t.Fatalf("sync failed: %s", result.Error)
	}
	wantPath := filepath.Join(vaultDir, "ClaudeCode", "摘要", "2026-05", "sum_7_会话_abc12345.md")
	if result.FilePath != wantPath {
		t.Errorf("FilePath = %q, want %q", result.FilePath, wantPath)
	}
}

func TestSyncObservationsBatchPartialFailure(t *testing.T) {
	engine, vaultDir := testEngine(t, nil)

	good := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	bad := time.Date(2026, 4, 10, 0, 0, 0, 0, time.Local)

	// Block the April bucket by putting a file where its directory must go.
	obsDir := filepath.Join(vaultDir, "ClaudeCode", "观察")
	if err := os.MkdirAll(obsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(obsDir, "2026-04"), []byte("in the way"), 0o644); err != nil {
		t.Fatal(err)
	}

	items := []ObservationItem{
		{Observation: models.Observation{Type: models.TypeChange, Title: "one"}, Meta: metaAt(1, good)},
		{Observation: models.Observation{Type: models.TypeChange, Title: "two"}, Meta: metaAt(2, bad)},
		{Observation: models.Observation{Type: models.TypeChange, Title: "three"}, Meta: metaAt(3, good)},
	}

	results := engine.SyncObservations(items)
	if len(results) != len(items) {
		t.Fatalf("got %d results, want %d", len(results), len(items))
	}
	if !results[0].Success || !results[2].Success {
		t.Errorf("healthy items should succeed: %+v", results)
	}
	if results[1].Success || results[1].Error == "" {
		t.Errorf("blocked item should fail with a message: %+v", results[1])
	}

	for _, i := range []int{0, 2} {
		if _, err := os.Stat(results[i].FilePath); err != nil {
			t.Errorf("file for item %d missing: %v", i, err)
		}
	}
}

func TestSyncObservationOverwrites(t *testing.T) {
	engine, _ := testEngine(t, nil)
	created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local)
	obs := models.Observation{Type: models.TypeChange, Title: "same"}

	first := engine.SyncObservation(obs, metaAt(1, created))
	obs.Narrative = "second version"
	second := engine.SyncObservation(obs, metaAt(1, created))

	if first.FilePath != second.FilePath {
		t.Fatalf("paths differ: %q vs %q", first.FilePath, second.FilePath)
	}
	content, err := os.ReadFile(second.FilePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "second version") {
		t.Errorf("last writer should win: %s", content)
	}
}

func assertNoNotes(t *testing.T, vaultDir string) {
	t.Helper()
	entries, err := os.ReadDir(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() == "ClaudeCode" {
			t.Errorf("sync tree created while disabled")
		}
	}
}
