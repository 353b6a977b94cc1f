package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examforge/internal/blueprint"
	"github.com/abhisek/examforge/internal/render"
	"github.com/abhisek/examforge/internal/store"
)

func newGenerateFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "generate"}
	addGenerateFlags(c.Flags())
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func TestApplyFlagOverrides_OnlyChangedFlags(t *testing.T) {
	bp, err := blueprint.Parse([]byte("versions: 3\nmcq: 10\nessay: 2\nlevels: {NB: 4}\nexport: {mode: combined}\n"))
	require.NoError(t, err)

	c := newGenerateFlags(t, "--mcq", "5", "--vd", "2", "--show-answers=false")
	applyFlagOverrides(c, bp)

	assert.Equal(t, 3, bp.Versions, "unset flag keeps blueprint value")
	assert.Equal(t, 5, bp.MCQ)
	assert.Equal(t, 2, bp.Essay)
	assert.Equal(t, map[string]int{"NB": 4, "VD": 2}, bp.Levels)
	assert.True(t, bp.Combined())
	assert.False(t, bp.RenderOptions().ShowAnswers)
	assert.True(t, bp.RenderOptions().ShowHints)
}

func TestApplyFlagOverrides_CombinedCanBeTurnedOff(t *testing.T) {
	bp, err := blueprint.Parse([]byte("export: {mode: combined}\n"))
	require.NoError(t, err)

	applyFlagOverrides(newGenerateFlags(t, "--combined=false", "--format", "json", "--seed", "9"), bp)
	assert.False(t, bp.Combined())
	assert.Equal(t, render.FormatJSON, bp.Format())
	assert.Equal(t, uint64(9), bp.Seed)
}

func TestParseAttachSpec(t *testing.T) {
	ids, paths, err := parseAttachSpec("Q1, Q2 =a.png,,b.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1", "Q2"}, ids)
	assert.Equal(t, []string{"a.png", "b.png"}, paths)

	for _, bad := range []string{"Q1", "=a.png", "Q1="} {
		_, _, err := parseAttachSpec(bad)
		assert.Error(t, err, bad)
	}
}

func TestCombinedPath(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	dir := t.TempDir()

	assert.Equal(t, "bank_all_versions_20240102_030405.txt", combinedPath("", "bank", render.FormatText, now))
	assert.Equal(t, filepath.Join(dir, "exam_all_versions_20240102_030405.json"), combinedPath(dir, "", render.FormatJSON, now))
	assert.Equal(t, "out/all.txt", combinedPath("out/all.txt", "bank", render.FormatText, now))
}

func TestGenerateCommand_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	bankPath := filepath.Join(dir, "bio.txt")
	require.NoError(t, os.WriteFile(bankPath, []byte(
		"Q001|NB|MCQ|Bio|Cell has?|Nucleus|Wall|Sun|Moon|A\n"+
			"Q002|TH|MCQ|Bio|Plants need?|Light; Salt; Sand|A\n"+
			"Q003|VD|ESSAY|Bio|Explain osmosis|water moves\n",
	), 0o644))
	outDir := filepath.Join(dir, "out")
	dbPath := filepath.Join(dir, "history.db")

	rootCmd.SetArgs([]string{
		"generate", bankPath,
		"--db", dbPath,
		"-n", "2", "--mcq", "2", "--essay", "1", "--seed", "11",
		"-o", outDir,
	})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "bio_version_A_"))
	assert.True(t, strings.HasPrefix(entries[1].Name(), "bio_version_B_"))

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()
	runs, err := st.RunRepo().ListRuns(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, uint64(11), runs[0].Seed)
	assert.Len(t, runs[0].Selected, 2)
}
