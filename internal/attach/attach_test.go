package attach

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRegistry_Assign(t *testing.T) {
	r := NewRegistry()
	r.Assign([]string{"Q1", " Q2 ", ""}, []string{"a.png", "b.svg", " "})
	r.Assign([]string{"Q1"}, []string{"a.png", "c.jpg"})

	assert.Equal(t, []string{"a.png", "b.svg", "c.jpg"}, r.Paths("Q1"))
	assert.Equal(t, []string{"a.png", "b.svg"}, r.Paths("Q2"))
	assert.Equal(t, []string{"Q1", "Q2"}, r.IDs())
	assert.Equal(t, 2, r.Len())

	r.Remove("Q2")
	assert.Empty(t, r.Paths("Q2"))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_PathsIsACopy(t *testing.T) {
	r := NewRegistry()
	r.Assign([]string{"Q1"}, []string{"a.png"})
	p := r.Paths("Q1")
	p[0] = "changed"
	assert.Equal(t, []string{"a.png"}, r.Paths("Q1"))
}

func TestCopier_RenamesOnCollision(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	writeFile(t, filepath.Join(src, "one", "graph.png"), "first")
	writeFile(t, filepath.Join(src, "two", "graph.png"), "second")
	writeFile(t, filepath.Join(out, ImagesDir, "graph_1.png"), "pre-existing")

	reg := NewRegistry()
	reg.Assign([]string{"Q1"}, []string{filepath.Join(src, "one", "graph.png")})
	reg.Assign([]string{"Q2"}, []string{filepath.Join(src, "two", "graph.png")})
	reg.Assign([]string{"Q3"}, []string{filepath.Join(src, "one", "graph.png")})

	c := NewCopier(out)
	got, errs := c.Copy(reg, []string{"Q1", "Q2", "Q3"})
	require.Empty(t, errs)

	assert.Equal(t, []string{"images/graph.png"}, got["Q1"])
	assert.Equal(t, []string{"images/graph_2.png"}, got["Q2"])
	assert.Equal(t, []string{"images/graph.png"}, got["Q3"], "same source reused")

	data, err := os.ReadFile(filepath.Join(out, ImagesDir, "graph_2.png"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestCopier_MissingSourceSkipped(t *testing.T) {
	reg := NewRegistry()
	reg.Assign([]string{"Q1"}, []string{filepath.Join(t.TempDir(), "nope.png")})

	got, errs := NewCopier(t.TempDir()).Copy(reg, []string{"Q1", "Q9"})
	assert.Empty(t, errs)
	assert.Empty(t, got)
}

func TestCopier_UnwritableDestination(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.png")
	writeFile(t, src, "x")

	// A regular file where the export directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	writeFile(t, blocker, "")

	reg := NewRegistry()
	reg.Assign([]string{"Q1"}, []string{src})
	got, errs := NewCopier(blocker).Copy(reg, []string{"Q1"})

	assert.Empty(t, got)
	require.Len(t, errs, 1)
	var copyErr *CopyError
	require.ErrorAs(t, errs[0], &copyErr)
	assert.Equal(t, "Q1", copyErr.ID)
}
