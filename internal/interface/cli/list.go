package cli

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"
)

var (
	listLimit int
	listSince string
	listKind  string
	listCopy  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List synced notes in the vault",
	Long: `List synced notes in reverse chronological order.

Examples:
  obsidian-sync list
  obsidian-sync list --limit 10
  obsidian-sync list --kind summary
  obsidian-sync list --since "yesterday"
  obsidian-sync list --since "3 days ago" --copy`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of notes to display")
	listCmd.Flags().StringVar(&listSince, "since", "", "Only notes written after this time (natural language ok)")
	listCmd.Flags().StringVar(&listKind, "kind", "", "Filter by kind (observation or summary)")
	listCmd.Flags().BoolVar(&listCopy, "copy", false, "Copy the newest matching note's path to the clipboard")
}

var (
	obsBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Render("obs")
	sumBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("sum")
)

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadVaultConfig()
	if err != nil {
		return err
	}

	notes, err := collectNotes(cfg)
	if err != nil {
		return fmt.Errorf("failed to scan vault: %w", err)
	}

	if listSince != "" {
		cutoff, err := parseSince(listSince)
		if err != nil {
			return err
		}
		filtered := notes[:0]
		for _, n := range notes {
			if n.modTime.After(cutoff) {
				filtered = append(filtered, n)
			}
		}
		notes = filtered
	}

	if listKind != "" {
		filtered := notes[:0]
		for _, n := range notes {
			if n.kind == listKind {
				filtered = append(filtered, n)
			}
		}
		notes = filtered
	}

	if len(notes) == 0 {
		fmt.Println("No notes found.")
		return nil
	}

	if listCopy {
		if err := clipboard.WriteAll(notes[0].path); err != nil {
			return fmt.Errorf("failed to copy path: %w", err)
		}
		fmt.Printf("Copied to clipboard: %s\n", notes[0].path)
		return nil
	}

	shown := notes
	if len(shown) > listLimit {
		shown = shown[:listLimit]
	}
	for _, n := range shown {
		badge := obsBadge
		if n.kind == "summary" {
			badge = sumBadge
		}
		fmt.Printf("%s  %-14s %s\n", badge, humanize.Time(n.modTime), n.path)
	}
	if len(notes) > len(shown) {
		fmt.Println(dimStyle.Render(fmt.Sprintf("… and %d more (use --limit)", len(notes)-len(shown))))
	}
	return nil
}

// parseSince accepts natural-language times like "yesterday" or "last week"
// as well as plain dates.
func parseSince(s string) (time.Time, error) {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	if r, err := w.Parse(s, time.Now()); err == nil && r != nil {
		return r.Time, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("could not understand time %q", s)
}
