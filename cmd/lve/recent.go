package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/milk9111/leveleditor/history"
)

var (
	flagRecentLimit int
	flagForget      string
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently opened levels",
	Long: `List the levels most recently created, opened or saved by the editor and
by lve, newest first.

Examples:
  lve recent
  lve recent --limit 3
  lve recent --forget old.lve`,
	Args: cobra.NoArgs,
	RunE: runRecent,
}

func init() {
	recentCmd.Flags().IntVarP(&flagRecentLimit, "limit", "n", 10, "Number of entries to show")
	recentCmd.Flags().StringVar(&flagForget, "forget", "", "Remove a level from the history")
}

func runRecent(cmd *cobra.Command, _ []string) error {
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagForget != "" {
		if err := store.Forget(flagForget); err != nil {
			return err
		}
		fmt.Fprintf(out, "forgot %s\n", flagForget)
		return nil
	}

	entries, err := store.Recent(flagRecentLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No levels opened yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-16s  %-7s  %-5s  %s\n", "Opened", "Cells", "Times", "Path")
	fmt.Fprintf(out, "  %-16s  %-7s  %-5s  %s\n", "------", "-----", "-----", "----")
	for _, e := range entries {
		fmt.Fprintf(out, "  %-16s  %-7s  %-5d  %s\n",
			humanize.Time(e.LastOpened),
			fmt.Sprintf("%dx%d", e.CellWidth, e.CellHeight),
			e.Opens,
			e.Path)
	}
	return nil
}
