package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display storage statistics",
	Long: `Display how often each collection has been written and the size
of its latest snapshot.

Example:
  fintrack stats`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	a := openApp(ctx)
	defer closeApp(a)

	stats, err := a.Stats.Stats(ctx)
	abortOnError(a, err, "failed to get statistics")

	fmt.Println("\n=== Storage Statistics ===")
	fmt.Printf("Driver:   %s\n", a.Config.Storage.Driver)
	fmt.Printf("Database: %s\n\n", a.Paths.GetDatabasePath())

	w := newTable()
	fmt.Fprintln(w, "COLLECTION\tSAVES\tBYTES\tLAST SAVED")
	for _, st := range stats {
		last := "(never)"
		if !st.LastSaved.IsZero() {
			last = st.LastSaved.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", st.Collection, st.Saves, st.Bytes, last)
	}
	w.Flush()
	fmt.Println()

	slog.Debug("Statistics displayed", "collections", len(stats))
}
