package session

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/Axioz99/claude-obsidian-sync/internal/core/config"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/hooks"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/llm"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/logging"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/models"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/state"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/vault"
)

const logCategory = "SESSION"

// Accumulator folds a session's hook events into durable state, and on the
// terminal event converts the accumulated record into one summary plus N
// observations and hands the batch to the sync engine.
type Accumulator struct {
	store      *state.Store
	cfg        *config.Config
	summarizer *llm.Summarizer
	logger     logging.Logger
}

// NewAccumulator wires the accumulator's collaborators. summarizer may wrap
// a NopProvider; generation is best-effort either way.
func NewAccumulator(store *state.Store, cfg *config.Config, summarizer *llm.Summarizer, logger logging.Logger) *Accumulator {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Accumulator{store: store, cfg: cfg, summarizer: summarizer, logger: logger}
}

// HandleEvent processes one hook event: tool-use events update and persist
// the session state, the stop event flushes the session to the vault and
// deletes the state. Events for unseen session ids create fresh state.
func (a *Accumulator) HandleEvent(ctx context.Context, ev *hooks.Event) error {
	st, err := a.store.Load(ev.SessionID)
	if err != nil {
		return err
	}
	if st == nil {
		projectPath := ev.ProjectPath
		if projectPath == "" {
			projectPath = ev.CWD
		}
		st = state.New(ev.SessionID, projectPath, time.Now().UnixMilli())
		a.logger.Info(logCategory, "created session state", map[string]any{"sessionId": ev.SessionID})
	}

	switch ev.HookType {
	case hooks.PreToolUse, hooks.PostToolUse:
		a.applyToolUse(st, ev)
		return a.store.Save(st)
	case hooks.Stop:
		flushErr := a.flush(ctx, st, ev)
		// State cleanup is unconditional: a failed sync must not leave a
		// session record behind to be replayed.
		if err := a.store.Delete(ev.SessionID); err != nil {
			a.logger.Error(logCategory, "failed to delete session state", map[string]any{"sessionId": ev.SessionID}, err)
		}
		return flushErr
	default:
		a.logger.Debug(logCategory, "ignoring event", map[string]any{"hookType": string(ev.HookType)})
		return nil
	}
}

// applyToolUse folds one tool event into the state. Only PostToolUse events
// for tracked tools count; everything else leaves the state untouched.
func (a *Accumulator) applyToolUse(st *state.SessionState, ev *hooks.Event) {
	if ev.HookType != hooks.PostToolUse {
		return
	}
	if !a.tracked(ev.ToolName) {
		return
	}

	switch ev.ToolName {
	case "Read":
		if path := ev.StringInput("file_path"); path != "" {
			st.FilesRead = appendUnique(st.FilesRead, path)
		}
	case "Edit", "Write":
		path := ev.StringInput("file_path")
		if path == "" {
			break
		}
		st.FilesModified = appendUnique(st.FilesModified, path)
		st.Observations = append(st.Observations, state.ObservationRecord{
			ID:            int64(len(st.Observations) + 1),
			Timestamp:     time.Now().UnixMilli(),
			ToolName:      ev.ToolName,
			Type:          InferObservationType(ev.ToolName, ev.ToolInput),
			Title:         fmt.Sprintf("%s: %s", ev.ToolName, filepath.Base(path)),
			Facts:         []string{fmt.Sprintf("使用 %s 工具操作文件", ev.ToolName)},
			FilesRead:     append([]string(nil), st.FilesRead...),
			FilesModified: []string{path},
		})
	case "Bash":
		command := ev.StringInput("command")
		if command == "" {
			break
		}
		st.Observations = append(st.Observations, state.ObservationRecord{
			ID:            int64(len(st.Observations) + 1),
			Timestamp:     time.Now().UnixMilli(),
			ToolName:      ev.ToolName,
			Type:          models.TypeChange,
			Title:         "执行命令",
			Subtitle:      truncate(command, 100),
			Facts:         []string{"执行 Bash 命令: " + truncate(command, 200)},
			FilesRead:     []string{},
			FilesModified: []string{},
		})
	}

	st.PromptCount++
}

func (a *Accumulator) tracked(toolName string) bool {
	for _, t := range a.cfg.TrackedTools {
		if t == toolName {
			return true
		}
	}
	return false
}

// flush converts the accumulated record into notes and writes them. Failures
// of individual notes are reported by the engine and logged; only a broken
// engine construction surfaces as an error.
func (a *Accumulator) flush(ctx context.Context, st *state.SessionState, ev *hooks.Event) error {
	a.logger.Info(logCategory, "session stopped, syncing to vault", map[string]any{
		"sessionId":        st.SessionID,
		"observationCount": len(st.Observations),
	})

	engine, err := vault.New(vault.Config{
		VaultPath:          a.cfg.VaultPath,
		BaseFolder:         a.cfg.BaseFolder,
		ObservationsFolder: a.cfg.ObservationsFolder,
		SummariesFolder:    a.cfg.SummariesFolder,
		SyncObservations:   a.cfg.SyncObservations,
		SyncSummaries:      a.cfg.SyncSummaries,
		Enabled:            a.cfg.Enabled,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create sync engine: %w", err)
	}

	project := projectName(ev.ProjectPath, ev.CWD)

	items := make([]vault.ObservationItem, len(st.Observations))
	for i, rec := range st.Observations {
		items[i] = vault.ObservationItem{
			Observation: models.Observation{
				Type:          rec.Type,
				Title:         rec.Title,
				Subtitle:      rec.Subtitle,
				Facts:         rec.Facts,
				Concepts:      nil,
				FilesRead:     rec.FilesRead,
				FilesModified: rec.FilesModified,
			},
			Meta: models.NoteMetadata{
				ID:           rec.ID,
				SessionID:    st.SessionID,
				Project:      project,
				PromptNumber: int(rec.ID),
				CreatedAt:    rec.Timestamp,
			},
		}
	}

	failed := 0
	for _, result := range engine.SyncObservations(items) {
		if !result.Success {
			failed++
		}
	}
	if failed > 0 {
		a.logger.Warn(logCategory, "some observations failed to sync", map[string]any{
			"failed": failed,
			"total":  len(items),
		})
	}

	a.syncSummary(ctx, engine, st, ev, project)
	return nil
}

// syncSummary writes the end-of-session summary note. An event-supplied
// transcript summary wins over generated text; with neither available the
// step degrades to a warning.
func (a *Accumulator) syncSummary(ctx context.Context, engine *vault.Engine, st *state.SessionState, ev *hooks.Event, project string) {
	if !a.cfg.SyncSummaries || len(st.Observations) == 0 {
		return
	}

	text := ev.TranscriptSummary
	if text == "" && a.summarizer != nil {
		generated, err := a.summarizer.Summarize(ctx, st)
		if err != nil {
			a.logger.Warn(logCategory, "summary generation unavailable", map[string]any{"sessionId": st.SessionID, "reason": err.Error()})
		} else {
			text = generated
		}
	}
	if text == "" {
		a.logger.Warn(logCategory, "no summary available to sync", map[string]any{"sessionId": st.SessionID})
		return
	}

	summary := models.Summary{
		Request:      "会话 " + shortID(st.SessionID),
		Investigated: fmt.Sprintf("处理了 %d 个文件", len(st.FilesRead)),
		Learned:      text,
		Completed:    fmt.Sprintf("修改了 %d 个文件，执行了 %d 个操作", len(st.FilesModified), len(st.Observations)),
		Notes:        "停止原因: " + ev.StopReason,
	}
	meta := models.NoteMetadata{
		ID:           summaryID(),
		SessionID:    st.SessionID,
		Project:      project,
		PromptNumber: st.PromptCount,
		CreatedAt:    time.Now().UnixMilli(),
	}

	if result := engine.SyncSummary(summary, meta); !result.Success {
		a.logger.Error(logCategory, "failed to sync summary", map[string]any{"sessionId": st.SessionID}, fmt.Errorf("%s", result.Error))
	}
}

// summaryID builds a note id that is unique enough across sessions:
// epoch milliseconds widened by a three-digit random suffix.
func summaryID() int64 {
	return time.Now().UnixMilli()*1000 + rand.Int63n(1000)
}

func shortID(sessionID string) string {
	if len(sessionID) > 8 {
		return sessionID[:8]
	}
	return sessionID
}

func projectName(projectPath, cwd string) string {
	target := projectPath
	if target == "" {
		target = cwd
	}
	base := filepath.Base(target)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "unknown-project"
	}
	return base
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
