package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Axioz99/claude-obsidian-sync/internal/core/config"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/hooks"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/llm"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/logging"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/session"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/state"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Process one Claude Code hook event from stdin",
	Long: `Read a single JSON hook event from stdin and fold it into the session's
accumulated state. On a Stop event, render the session's notes into the vault.

Wire it into .claude/settings.json as the PostToolUse and Stop hook command.
The process never writes to stdout and always exits 0: a sync problem must
not disrupt the Claude Code session that triggered it. Diagnostics go to the
hook log in the scratch directory.`,
	RunE:          runHook,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(hookCmd)
}

func runHook(cmd *cobra.Command, args []string) error {
	// Every early return below is deliberate: log, stay silent, exit 0.
	logger := mustLogger("info")

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			logger.Warn("HOOK", "no config found, skipping", nil)
		} else {
			logger.Error("HOOK", "failed to load config", nil, err)
		}
		return nil
	}
	logger = mustLogger(cfg.LogLevel)

	store := state.NewStore("")
	if removed, err := store.Sweep(state.MaxAge); err != nil {
		logger.Warn("HOOK", "state sweep failed", map[string]any{"reason": err.Error()})
	} else if removed > 0 {
		logger.Info("HOOK", "reclaimed stale session state", map[string]any{"removed": removed})
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		logger.Error("HOOK", "failed to read stdin", nil, err)
		return nil
	}
	if strings.TrimSpace(string(data)) == "" {
		logger.Warn("HOOK", "empty input received", nil)
		return nil
	}

	ev, err := hooks.Parse(data)
	if err != nil {
		logger.Error("HOOK", "invalid hook input", nil, err)
		return nil
	}
	logger.Debug("HOOK", "received hook input", map[string]any{"hookType": string(ev.HookType)})

	provider, err := llm.NewAnthropicProvider(llm.AnthropicConfigFromEnv())
	var summarizer *llm.Summarizer
	if err != nil {
		logger.Debug("HOOK", "text generation disabled", map[string]any{"reason": err.Error()})
		summarizer = llm.NewSummarizer(llm.NopProvider{})
	} else {
		summarizer = llm.NewSummarizer(provider)
	}

	acc := session.NewAccumulator(store, cfg, summarizer, logger)
	if err := acc.HandleEvent(cmd.Context(), ev); err != nil {
		logger.Error("HOOK", "hook processing failed", map[string]any{"sessionId": ev.SessionID}, err)
	}
	return nil
}

// mustLogger returns a file logger, or a nop logger when even the log file
// cannot be opened. The hook never fails over logging.
func mustLogger(level string) logging.Logger {
	logger, err := logging.NewFileLogger(level)
	if err != nil {
		return logging.NopLogger{}
	}
	return logger
}
