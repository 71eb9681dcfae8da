package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Axioz99/claude-obsidian-sync/internal/core/config"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/hooks"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/llm"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/logging"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/state"
)

func testSetup(t *testing.T) (*Accumulator, *state.Store, string) {
	t.Helper()
	vaultDir := t.TempDir()
	store := state.NewStore(t.TempDir())
	cfg := config.Default()
	cfg.VaultPath = vaultDir
	acc := NewAccumulator(store, &cfg, llm.NewSummarizer(llm.NopProvider{}), logging.NopLogger{})
	return acc, store, vaultDir
}

func toolEvent(sessionID, tool string, input map[string]any) *hooks.Event {
	return &hooks.Event{
		HookType:  hooks.PostToolUse,
		SessionID: sessionID,
		CWD:       "/home/dev/myproject",
		ToolName:  tool,
		ToolInput: input,
	}
}

func TestAccumulatorFoldsToolEvents(t *testing.T) {
	acc, store, _ := testSetup(t)
	ctx := context.Background()

	events := []*hooks.Event{
		toolEvent("s1", "Edit", map[string]any{"file_path": "/src/a.go"}),
		toolEvent("s1", "Edit", map[string]any{"file_path": "/src/a.go"}), // duplicate path
		toolEvent("s1", "Bash", map[string]any{"command": "go vet ./..."}),
		toolEvent("s1", "Browser", map[string]any{"url": "x"}), // untracked
	}
	for _, ev := range events {
		if err := acc.HandleEvent(ctx, ev); err != nil {
			t.Fatalf("HandleEvent() error = %v", err)
		}
	}

	st, err := store.Load("s1")
	if err != nil || st == nil {
		t.Fatalf("state not persisted: %v", err)
	}
	if len(st.FilesModified) != 1 || st.FilesModified[0] != "/src/a.go" {
		t.Errorf("FilesModified = %v, want deduplicated single path", st.FilesModified)
	}
	if len(st.Observations) != 3 {
		t.Fatalf("got %d observations, want 3", len(st.Observations))
	}
	if st.PromptCount != 3 {
		t.Errorf("PromptCount = %d, want 3 (untracked events do not count)", st.PromptCount)
	}

	bash := st.Observations[2]
	if bash.Title != "执行命令" || !strings.Contains(bash.Facts[0], "go vet") {
		t.Errorf("bash record = %+v", bash)
	}
}

func TestAccumulatorIgnoresPreToolUse(t *testing.T) {
	acc, store, _ := testSetup(t)

	ev := toolEvent("s2", "Edit", map[string]any{"file_path": "/src/b.go"})
	ev.HookType = hooks.PreToolUse
	if err := acc.HandleEvent(context.Background(), ev); err != nil {
		t.Fatal(err)
	}

	st, _ := store.Load("s2")
	if st == nil {
		t.Fatal("state should be created even for ignored events")
	}
	if len(st.Observations) != 0 || st.PromptCount != 0 {
		t.Errorf("PreToolUse must not fold: %+v", st)
	}
}

func TestAccumulatorStopFlushesAndCleansUp(t *testing.T) {
	acc, store, vaultDir := testSetup(t)
	ctx := context.Background()

	if err := acc.HandleEvent(ctx, toolEvent("s3", "Write", map[string]any{"file_path": "/src/widget.go"})); err != nil {
		t.Fatal(err)
	}

	stop := &hooks.Event{
		HookType:          hooks.Stop,
		SessionID:         "s3",
		CWD:               "/home/dev/myproject",
		StopReason:        "end_turn",
		TranscriptSummary: "完成了组件开发",
	}
	if err := acc.HandleEvent(ctx, stop); err != nil {
		t.Fatalf("HandleEvent(stop) error = %v", err)
	}

	// Exactly one observation note, containing the modified path
	obsNotes := globNotes(t, filepath.Join(vaultDir, "ClaudeCode", "观察"))
	if len(obsNotes) != 1 {
		t.Fatalf("got %d observation notes, want 1", len(obsNotes))
	}
	obsContent := readFile(t, obsNotes[0])
	if !strings.Contains(obsContent, "files_modified:\n  - /src/widget.go") {
		t.Errorf("observation missing modified file:\n%s", obsContent)
	}
	if !strings.Contains(obsContent, "project: myproject") {
		t.Errorf("project should come from cwd basename:\n%s", obsContent)
	}

	// One summary note, reflecting the counts and the supplied text
	sumNotes := globNotes(t, filepath.Join(vaultDir, "ClaudeCode", "摘要"))
	if len(sumNotes) != 1 {
		t.Fatalf("got %d summary notes, want 1", len(sumNotes))
	}
	sumContent := readFile(t, sumNotes[0])
	if !strings.Contains(sumContent, "完成了组件开发") {
		t.Errorf("summary missing transcript text:\n%s", sumContent)
	}
	if !strings.Contains(sumContent, "修改了 1 个文件，执行了 1 个操作") {
		t.Errorf("summary missing counts:\n%s", sumContent)
	}
	if !strings.Contains(sumContent, "停止原因: end_turn") {
		t.Errorf("summary missing stop reason:\n%s", sumContent)
	}

	// State is deleted after the terminal event
	if st, _ := store.Load("s3"); st != nil {
		t.Error("session state should be deleted after stop")
	}
}

func TestAccumulatorStopWithoutSummaryText(t *testing.T) {
	acc, _, vaultDir := testSetup(t)
	ctx := context.Background()

	if err := acc.HandleEvent(ctx, toolEvent("s4", "Edit", map[string]any{"file_path": "/src/c.go"})); err != nil {
		t.Fatal(err)
	}

	// No transcript summary and a nop provider: summary sync degrades to
	// nothing, observations still land.
	stop := &hooks.Event{HookType: hooks.Stop, SessionID: "s4", CWD: "/home/dev/myproject", StopReason: "end_turn"}
	if err := acc.HandleEvent(ctx, stop); err != nil {
		t.Fatalf("HandleEvent(stop) error = %v", err)
	}

	if n := globNotes(t, filepath.Join(vaultDir, "ClaudeCode", "观察")); len(n) != 1 {
		t.Errorf("got %d observation notes, want 1", len(n))
	}
	if n := globNotes(t, filepath.Join(vaultDir, "ClaudeCode", "摘要")); len(n) != 0 {
		t.Errorf("got %d summary notes, want 0", len(n))
	}
}

func TestProjectName(t *testing.T) {
	tests := []struct {
		name        string
		projectPath string
		cwd         string
		want        string
	}{
		{"project path wins", "/repos/alpha", "/tmp", "alpha"},
		{"falls back to cwd", "", "/repos/beta", "beta"},
		{"root path", "", "/", "unknown-project"},
		{"empty everything", "", "", "unknown-project"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := projectName(tt.projectPath, tt.cwd); got != tt.want {
				t.Errorf("projectName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func globNotes(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*", "*.md"))
	if err != nil {
		t.Fatal(err)
	}
	return matches
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
