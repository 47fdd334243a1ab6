package consolidate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 7, 9, 30, 0, 0, time.UTC)
}

func TestRunWritesFencedBlocks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.py":                "print('b')",
		"a.sql":               "SELECT 1;\n",
		"pkg/inner.go":        "package pkg\n",
		"node_modules/x.js":   "skip me",
		".git/config":         "hidden dir",
		".env":                "SECRET=1",
		"README.md":           "skip by name",
		"data/rows.csv":       "1,2,3",
		"pkg/deep/keep.txt":   "kept",
		"pkg/deep/drop.ipynb": "{}",
	})
	out := filepath.Join(t.TempDir(), "consolidated_code.md")

	result, err := Run(Options{
		Root:      root,
		Output:    out,
		SkipDirs:  DefaultSkipDirs,
		SkipFiles: append(DefaultSkipFiles, "**/*.ipynb"),
		Now:       fixedNow,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.sql", "b.py", "pkg/inner.go", "pkg/deep/keep.txt"}, result.Files)
	assert.ElementsMatch(t, []string{"README.md", "pkg/deep/drop.ipynb"}, result.Skipped)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	want := "<Date> May 07, 2024 09:30</Date>\n\n" +
		"```a.sql\nSELECT 1;\n```\n\n" +
		"```b.py\nprint('b')\n```\n\n" +
		"```pkg/inner.go\npackage pkg\n```\n\n" +
		"```pkg/deep/keep.txt\nkept\n```\n\n"
	assert.Equal(t, want, string(got))
}

func TestRunWritesDirectoryFilesBeforeSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/x.txt":   "x",
		"a/z/y.txt": "y",
		"a/w.txt":   "w",
		"b.txt":     "b",
	})

	result, err := Run(Options{Root: root, Output: filepath.Join(t.TempDir(), "out.md"), Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt", "a/w.txt", "a/x.txt", "a/z/y.txt"}, result.Files)
}

func TestRunSkipsOutputInsideRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"main.go": "package main\n"})
	out := filepath.Join(root, "bundle.md")
	writeTree(t, root, map[string]string{"bundle.md": "stale"})

	result, err := Run(Options{Root: root, Output: out, Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, result.Files)
}

func TestRunRecordsReadErrors(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root can read any file")
	}
	root := t.TempDir()
	writeTree(t, root, map[string]string{"locked.txt": "secret"})
	require.NoError(t, os.Chmod(filepath.Join(root, "locked.txt"), 0))
	out := filepath.Join(t.TempDir(), "out.md")

	result, err := Run(Options{Root: root, Output: out, Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, []string{"locked.txt"}, result.Files)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(got), "```locked.txt\n*** Error reading file:")
}

func TestRunRejectsMissingOrFileRoot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.md")

	_, err := Run(Options{Root: filepath.Join(t.TempDir(), "missing"), Output: out})
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = Run(Options{Root: file, Output: out})
	assert.ErrorContains(t, err, "not a directory")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMatches(t *testing.T) {
	assert.True(t, matches([]string{"*.sql"}, "3_insert_data.sql", "db/seed/3_insert_data.sql"))
	assert.True(t, matches([]string{"db/**"}, "x.sql", "db/seed/x.sql"))
	assert.True(t, matches([]string{`db\seed`}, "seed", "db/seed"))
	assert.False(t, matches([]string{"*.go"}, "main.py", "main.py"))
}
