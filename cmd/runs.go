package cmd

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/abhisek/examforge/internal/store"
	"github.com/abhisek/examforge/internal/ui/theme"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the history of generation runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		runs, err := s.RunRepo().ListRuns(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query runs: %w", err)
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		fmt.Println(paint(theme.TableHeader, fmt.Sprintf("%-8s  %-16s  %4s  %5s  %5s  %-20s  %s",
			"ID", "When", "Vers", "MCQ", "Essay", "Seed", "Bank")))
		for _, r := range runs {
			fmt.Printf("%-8s  %-16s  %4d  %5d  %5d  %-20d  %s\n",
				r.ID[:min(8, len(r.ID))],
				humanize.Time(r.CreatedAt),
				r.Versions, r.MCQ, r.Essay, r.Seed,
				r.BankPath,
			)
		}
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one run, including the questions of every version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.RunRepo().GetRun(cmd.Context(), args[0])
		if errors.Is(err, store.ErrRunNotFound) {
			return fmt.Errorf("run %q not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("get run: %w", err)
		}

		fmt.Printf("ID:        %s\n", r.ID)
		fmt.Printf("Time:      %s (%s)\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"), humanize.Time(r.CreatedAt))
		fmt.Printf("Bank:      %s\n", r.BankPath)
		fmt.Printf("Seed:      %d\n", r.Seed)
		fmt.Printf("Quotas:    %d version(s), %d MCQ + %d ESSAY\n", r.Versions, r.MCQ, r.Essay)
		if len(r.Levels) > 0 {
			var parts []string
			for _, l := range slices.Sorted(maps.Keys(r.Levels)) {
				parts = append(parts, fmt.Sprintf("%s=%d", l, r.Levels[l]))
			}
			fmt.Printf("Levels:    %s\n", strings.Join(parts, " "))
		}

		fmt.Println()
		fmt.Println(strings.Repeat("\u2500", 60))
		for i, ids := range r.Selected {
			fmt.Printf("VERSION %d (%d questions)\n", i+1, len(ids))
			fmt.Printf("  %s\n", strings.Join(ids, " "))
		}
		return nil
	},
}

func init() {
	runsListCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
}
