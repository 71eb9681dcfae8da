package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var versionInfo string

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "obsidian-sync",
	Short: "Sync Claude Code sessions to an Obsidian vault",
	Long: `obsidian-sync - turn Claude Code sessions into Obsidian notes

Receives Claude Code hook events, accumulates per-session observations, and
on session end writes Markdown notes with YAML front matter into
date-organized folders inside your vault.`,
}
