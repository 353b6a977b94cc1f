package blueprint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examforge/internal/bank"
	"github.com/abhisek/examforge/internal/render"
)

func TestParse_Full(t *testing.T) {
	doc := `
versions: 3
mcq: 20
essay: 2
levels: {NB: 8, TH: 8, VD: 4, VDH: 2}
seed: 42
export:
  mode: combined
  format: json
  show_answers: false
`
	b, err := Parse([]byte(doc))
	require.NoError(t, err)

	req := b.Request()
	assert.Equal(t, 3, req.Versions)
	assert.Equal(t, 20, req.MCQ)
	assert.Equal(t, 2, req.Essay)
	assert.Equal(t, map[bank.Level]int{bank.LevelNB: 8, bank.LevelTH: 8, bank.LevelVD: 4, bank.LevelVDH: 2}, req.Levels)
	assert.Equal(t, uint64(42), b.Seed)

	assert.True(t, b.Combined())
	assert.Equal(t, render.FormatJSON, b.Format())
	assert.Equal(t, render.Options{ShowAnswers: false, ShowHints: true}, b.RenderOptions())
}

func TestParse_Defaults(t *testing.T) {
	b, err := Parse([]byte("mcq: 5\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, b.Versions)
	assert.Nil(t, b.Request().Levels)
	assert.False(t, b.Combined())
	assert.Equal(t, render.FormatText, b.Format())
	assert.Equal(t, render.Options{ShowAnswers: true, ShowHints: true}, b.RenderOptions())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "versions: 2\ncolour: red\n"},
		{"zero versions", "versions: 0\n"},
		{"negative quota", "mcq: -1\n"},
		{"unknown level", "levels: {XX: 1}\n"},
		{"bad mode", "export: {mode: zip}\n"},
		{"bad format", "export: {format: docx}\n"},
		{"not a mapping", "- 1\n- 2\n"},
		{"malformed yaml", "versions: [1\n"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			var inv *InvalidError
			assert.ErrorAs(t, err, &inv)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("versions: 2\nessay: 1\n"), 0o644))

	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Versions)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("versions: -3\n"), 0o644))
	_, err = Load(bad)
	var inv *InvalidError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, bad, inv.Path)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshal_RoundTrip(t *testing.T) {
	b := Default()
	b.MCQ = 4
	b.Levels = map[string]int{"TH": 2}

	data, err := b.Marshal()
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, b, back)
}
