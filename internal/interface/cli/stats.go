package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Axioz99/claude-obsidian-sync/internal/core/state"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vault sync statistics",
	Long: `Display statistics about the synced notes in the vault.

Shows note counts by kind, total size, the newest note, and any sessions
with pending (unflushed) state.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadVaultConfig()
	if err != nil {
		return err
	}

	notes, err := collectNotes(cfg)
	if err != nil {
		return fmt.Errorf("failed to scan vault: %w", err)
	}

	observations := 0
	summaries := 0
	var totalSize int64
	for _, n := range notes {
		totalSize += n.size
		switch n.kind {
		case "observation":
			observations++
		case "summary":
			summaries++
		}
	}

	fmt.Println("Vault Sync Statistics")
	fmt.Println("=====================")
	fmt.Println()
	fmt.Printf("Vault:          %s\n", cfg.VaultPath)
	fmt.Printf("Observations:   %d\n", observations)
	fmt.Printf("Summaries:      %d\n", summaries)
	fmt.Printf("Total size:     %s\n", humanize.Bytes(uint64(totalSize)))

	if len(notes) > 0 {
		fmt.Printf("Newest note:    %s (%s)\n", notes[0].path, humanize.Time(notes[0].modTime))
	}

	pending, err := state.NewStore("").List()
	if err == nil {
		fmt.Println()
		fmt.Printf("Pending sessions: %d\n", len(pending))
	}

	return nil
}
