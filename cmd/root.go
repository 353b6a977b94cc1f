package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/abhisek/examforge/internal/store"
	"github.com/abhisek/examforge/internal/ui/theme"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "examforge",
	Short: "Build randomized exam versions from a question bank",
	Long: "examforge parses a pipe-delimited question bank and generates exam versions\n" +
		"that follow per-level and per-type quotas.",
	SilenceUsage: true,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite history database (overrides EXAMFORGE_DB env var)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(blueprintCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then EXAMFORGE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the history database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func warnf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, paint(theme.Warn, "warning:"), fmt.Sprintf(format, args...))
}
