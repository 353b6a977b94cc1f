package cmd

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/abhisek/examforge/internal/bank"
	"github.com/abhisek/examforge/internal/render"
	"github.com/abhisek/examforge/internal/session"
	"github.com/abhisek/examforge/internal/ui/theme"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <bank-file>",
	Short: "Parse a question bank and show what was recovered",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := session.Open(args[0], nil)
		if err != nil {
			return err
		}
		defer sess.Close()

		printReport(os.Stdout, sess.Report)
		fmt.Println()
		printIndexTable(sess.Index)

		if list, _ := cmd.Flags().GetBool("list"); list {
			showAnswers, _ := cmd.Flags().GetBool("show-answers")
			fmt.Println()
			fmt.Println(render.Questions(sess.Questions, render.Options{ShowAnswers: showAnswers, ShowHints: showAnswers}))
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolP("list", "l", false, "Print every recovered question")
	parseCmd.Flags().Bool("show-answers", false, "Include answers and hints with --list")
}

func printReport(w io.Writer, r *bank.ParseReport) {
	if r == nil {
		return
	}
	fmt.Fprintf(w, "%s %d lines, %d questions recovered, %d skipped\n",
		paint(theme.Label, "parse:"), r.Lines, r.Recovered, r.Skipped)
	for _, name := range slices.Sorted(maps.Keys(r.Hits)) {
		fmt.Fprintf(w, "  %-12s %d\n", name, r.Hits[name])
	}
	for _, rn := range r.Renamed {
		fmt.Fprintf(w, "  line %d: duplicate id %s renamed to %s\n", rn.Line, rn.From, rn.To)
	}
}

func printIndexTable(idx *bank.Index) {
	fmt.Println(paint(theme.TableHeader, fmt.Sprintf("%-6s  %6s  %6s  %6s", "Level", "MCQ", "ESSAY", "Total")))
	totals := make(map[bank.Type]int)
	for _, l := range bank.AllLevels() {
		mcq, essay := idx.Count(l, bank.TypeMCQ), idx.Count(l, bank.TypeEssay)
		totals[bank.TypeMCQ] += mcq
		totals[bank.TypeEssay] += essay
		fmt.Printf("%-6s  %6d  %6d  %6d\n", l, mcq, essay, mcq+essay)
	}
	fmt.Println(strings.Repeat("─", 30))
	fmt.Printf("%-6s  %6d  %6d  %6d\n", "TOTAL", totals[bank.TypeMCQ], totals[bank.TypeEssay], idx.Total())
}
