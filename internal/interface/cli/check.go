package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Axioz99/claude-obsidian-sync/internal/core/config"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/logging"
	"github.com/Axioz99/claude-obsidian-sync/internal/core/vault"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and vault path",
	Long: `Load the obsidian-sync configuration and verify the vault is usable.

Run this after editing .claude/obsidian-sync.toml to catch problems before
the next session-end sync.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func runCheck(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			fmt.Println(failStyle.Render("✗") + " no config file found")
			fmt.Println(dimStyle.Render("  expected .claude/obsidian-sync.toml in the project or home directory"))
			return errors.New("configuration missing")
		}
		return err
	}
	fmt.Println(okStyle.Render("✓") + " config loaded")

	engine, err := vault.New(vault.Config{
		VaultPath:          cfg.VaultPath,
		BaseFolder:         cfg.BaseFolder,
		ObservationsFolder: cfg.ObservationsFolder,
		SummariesFolder:    cfg.SummariesFolder,
		SyncObservations:   cfg.SyncObservations,
		SyncSummaries:      cfg.SyncSummaries,
		Enabled:            cfg.Enabled,
	}, logging.NopLogger{})
	if err != nil {
		fmt.Println(failStyle.Render("✗") + " " + err.Error())
		return errors.New("vault check failed")
	}
	fmt.Println(okStyle.Render("✓") + " vault is usable")

	resolved := engine.Config()
	fmt.Println()
	fmt.Println(labelStyle.Render("Vault:        ") + resolved.VaultPath)
	fmt.Println(labelStyle.Render("Base folder:  ") + resolved.BaseFolder)
	fmt.Println(labelStyle.Render("Observations: ") + resolved.ObservationsFolder + onOff(resolved.SyncObservations))
	fmt.Println(labelStyle.Render("Summaries:    ") + resolved.SummariesFolder + onOff(resolved.SyncSummaries))
	fmt.Println(labelStyle.Render("Tracked tools:") + " " + fmt.Sprint(cfg.TrackedTools))
	if !resolved.Enabled {
		fmt.Println()
		fmt.Println(dimStyle.Render("sync is currently disabled (enabled = false)"))
	}
	return nil
}

func onOff(enabled bool) string {
	if enabled {
		return dimStyle.Render("  (on)")
	}
	return dimStyle.Render("  (off)")
}
