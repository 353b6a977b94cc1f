package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/examforge/internal/bank"
	"github.com/abhisek/examforge/internal/blueprint"
	"github.com/abhisek/examforge/internal/generator"
	"github.com/abhisek/examforge/internal/render"
	"github.com/abhisek/examforge/internal/session"
	"github.com/abhisek/examforge/internal/store"
	"github.com/abhisek/examforge/internal/ui/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var generateCmd = &cobra.Command{
	Use:   "generate <bank-file>",
	Short: "Generate exam versions from a question bank",
	Long: "Generate parses the bank file and builds the requested number of exam versions.\n" +
		"Quotas come from --blueprint and can be overridden by flags.",
	Example: "  examforge generate bank.txt -n 3 --mcq 20 --essay 2 --nb 8 --th 8 --vd 4 --vdh 2\n" +
		"  examforge generate bank.txt --blueprint midterm.yaml --combined -o out/all.txt\n" +
		"  examforge generate bank.txt -n 2 --mcq 10 --attach Q001,Q004=figs/graph.png",
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd.Flags())
}

func addGenerateFlags(f *pflag.FlagSet) {
	f.IntP("versions", "n", 1, "Number of exam versions")
	f.Int("mcq", 0, "Multiple-choice questions per version")
	f.Int("essay", 0, "Essay questions per version")
	f.Int("nb", 0, "Desired NB (recognition) questions per version")
	f.Int("th", 0, "Desired TH (comprehension) questions per version")
	f.Int("vd", 0, "Desired VD (application) questions per version")
	f.Int("vdh", 0, "Desired VDH (advanced application) questions per version")
	f.Uint64("seed", 0, "Random seed (0 picks one and prints it)")
	f.Int("workers", generator.DefaultConfig().Workers, "Versions generated in parallel")
	f.String("blueprint", "", "YAML blueprint with quotas and export settings")
	f.StringP("out", "o", "", "Output directory, or output file with --combined")
	f.Bool("combined", false, "Write all versions into a single file")
	f.String("format", string(render.FormatText), "Export format: txt or json")
	f.StringArray("attach", nil, "Attach files to questions: ID[,ID...]=PATH[,PATH...] (repeatable)")
	f.Bool("show-answers", true, "Include answers in exported files")
	f.Bool("show-hints", true, "Include hints in exported files")
	f.Bool("no-history", false, "Do not record this run in the history database")
	f.BoolP("verbose", "v", false, "Print the parse report to stderr")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	bp, err := loadBlueprint(cmd)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, bp)

	req := bp.Request()
	if err := req.Validate(); err != nil {
		return err
	}
	format, err := render.ParseFormat(bp.Export.Format)
	if err != nil {
		return err
	}

	sess, err := session.Open(args[0], nil)
	if err != nil {
		if bank.IsNoData(err) {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		return err
	}
	defer sess.Close()

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		printReport(os.Stderr, sess.Report)
	}

	attachArgs, _ := cmd.Flags().GetStringArray("attach")
	for _, arg := range attachArgs {
		ids, paths, err := parseAttachSpec(arg)
		if err != nil {
			return err
		}
		unknown, err := sess.Attach(ids, paths)
		if err != nil {
			return err
		}
		for _, id := range unknown {
			warnf("attachment target %s is not in the bank", id)
		}
	}

	workers, _ := cmd.Flags().GetInt("workers")
	stratified := generator.New(generator.Config{Seed: bp.Seed, Workers: workers})

	var g generator.Generator = stratified
	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		st, err := openStore(cmd)
		if err != nil {
			warnf("run history disabled: %v", err)
		} else {
			defer st.Close()
			bankPath, _ := filepath.Abs(args[0])
			g = generator.WithRecording(stratified, store.WithRetry(st.RunRepo(), store.DefaultRetryConfig()), bankPath)
		}
	}

	versions, err := sess.Generate(cmd.Context(), g, req)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	printSummary(sess.BuildSummary(req, versions, stratified.Seed()))
	if rec, ok := g.(*generator.RecordingGenerator); ok && rec.LastRunID() != "" {
		fmt.Println(paint(theme.Dim, "run "+rec.LastRunID()))
	}

	e := sess.Exporter(format, bp.RenderOptions())
	out, _ := cmd.Flags().GetString("out")

	var res *render.Result
	if bp.Combined() {
		res, err = e.WriteCombined(combinedPath(out, sess.BaseName(), format, time.Now()), versions)
	} else {
		if out == "" {
			out = "."
		}
		res, err = e.WriteFiles(out, sess.BaseName(), versions)
	}
	for _, w := range res.Warnings {
		warnf("%v", w)
	}
	for _, p := range res.Written {
		fmt.Println(paint(theme.OK, "wrote"), p)
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func loadBlueprint(cmd *cobra.Command) (*blueprint.Blueprint, error) {
	path, _ := cmd.Flags().GetString("blueprint")
	if path == "" {
		return blueprint.Default(), nil
	}
	return blueprint.Load(path)
}

// applyFlagOverrides copies explicitly set flags over blueprint values.
// Flags left at their defaults never replace blueprint settings.
func applyFlagOverrides(cmd *cobra.Command, bp *blueprint.Blueprint) {
	f := cmd.Flags()
	if f.Changed("versions") {
		bp.Versions, _ = f.GetInt("versions")
	}
	if f.Changed("mcq") {
		bp.MCQ, _ = f.GetInt("mcq")
	}
	if f.Changed("essay") {
		bp.Essay, _ = f.GetInt("essay")
	}
	for _, l := range bank.AllLevels() {
		name := strings.ToLower(string(l))
		if !f.Changed(name) {
			continue
		}
		if bp.Levels == nil {
			bp.Levels = make(map[string]int)
		}
		bp.Levels[string(l)], _ = f.GetInt(name)
	}
	if f.Changed("seed") {
		bp.Seed, _ = f.GetUint64("seed")
	}
	if f.Changed("combined") {
		if combined, _ := f.GetBool("combined"); combined {
			bp.Export.Mode = blueprint.ModeCombined
		} else {
			bp.Export.Mode = blueprint.ModeFiles
		}
	}
	if f.Changed("format") {
		bp.Export.Format, _ = f.GetString("format")
	}
	if f.Changed("show-answers") {
		v, _ := f.GetBool("show-answers")
		bp.Export.ShowAnswers = &v
	}
	if f.Changed("show-hints") {
		v, _ := f.GetBool("show-hints")
		bp.Export.ShowHints = &v
	}
}

// parseAttachSpec splits "Q1,Q2=a.png,b.png" into ids and paths.
func parseAttachSpec(arg string) (ids, paths []string, err error) {
	left, right, ok := strings.Cut(arg, "=")
	if !ok {
		return nil, nil, fmt.Errorf("invalid --attach %q: want ID[,ID...]=PATH[,PATH...]", arg)
	}
	ids = splitList(left)
	paths = splitList(right)
	if len(ids) == 0 || len(paths) == 0 {
		return nil, nil, fmt.Errorf("invalid --attach %q: needs at least one id and one path", arg)
	}
	return ids, paths, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// combinedPath resolves --out for combined exports. An empty value or an
// existing directory gets a generated file name.
func combinedPath(out, base string, format render.Format, now time.Time) string {
	if base == "" {
		base = "exam"
	}
	name := fmt.Sprintf("%s_all_versions_%s.%s", base, now.Format("20060102_150405"), format)
	if out == "" {
		return name
	}
	if fi, err := os.Stat(out); err == nil && fi.IsDir() {
		return filepath.Join(out, name)
	}
	return out
}

func printSummary(sum *session.Summary) {
	fmt.Println(paint(theme.Title, fmt.Sprintf("Generated %d version(s)", len(sum.Versions))) +
		paint(theme.Dim, fmt.Sprintf("  seed %d", sum.Seed)))
	for _, v := range sum.Versions {
		fmt.Printf("VERSION %d (%d questions: %d MCQ + %d ESSAY)\n",
			v.Number, v.Counts.Total(), v.Counts.MCQ, v.Counts.Essay)
	}
	if !sum.AnyShort() {
		return
	}
	short := slices.IndexFunc(sum.Versions, session.VersionSummary.Short)
	v := sum.Versions[short]
	warnf("requested %d MCQ + %d ESSAY per version but the bank has only %d MCQ and %d ESSAY questions (version %d is short by %d MCQ, %d ESSAY)",
		sum.Requested.MCQ, sum.Requested.Essay,
		sum.Available[bank.TypeMCQ], sum.Available[bank.TypeEssay],
		v.Number, v.MissingMCQ, v.MissingEssay)
}
