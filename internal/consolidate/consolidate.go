package consolidate

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/export"
	"github.com/bmatcuk/doublestar/v4"
)

const dateLayout = "January 02, 2006 15:04"

var DefaultSkipDirs = []string{
	".venv", "dataset", "data", ".git", ".vscode", ".idea",
	"target", "build", "__pycache__", "node_modules", "output_folder",
}

var DefaultSkipFiles = []string{
	"consolidated_code.md", "3_insert_data.sql", "__init__.py", "setup.py",
	".env", ".env.example", "README.md",
}

type Options struct {
	Root   string
	Output string
	// SkipDirs and SkipFiles hold names or doublestar patterns, matched against
	// both the base name and the slash-separated path relative to Root.
	SkipDirs  []string
	SkipFiles []string
	Now       func() time.Time
}

type Result struct {
	Files   []string
	Skipped []string
}

// Run concatenates every file under Root into one Markdown document with a
// fenced block per file. Hidden entries are always skipped.
func Run(opts Options) (*Result, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", opts.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("target directory not found: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("target %s is not a directory", root)
	}

	output, err := filepath.Abs(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", opts.Output, err)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	result := &Result{}
	err = export.WriteFileAtomic(output, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		if _, err := fmt.Fprintf(bw, "<Date> %s</Date>\n\n", now().Format(dateLayout)); err != nil {
			return err
		}
		if err := walk(root, output, opts, bw, result); err != nil {
			return err
		}
		return bw.Flush()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// walk writes a directory's own files, sorted by name, before descending
// into its subdirectories.
func walk(root, output string, opts Options, w io.Writer, result *Result) error {
	return visitDir(root, "", output, opts, w, result)
}

func visitDir(root, relDir, output string, opts Options, w io.Writer, result *Result) error {
	dir := filepath.Join(root, filepath.FromSlash(relDir))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var subdirs []fs.DirEntry
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		rel := path.Join(relDir, name)

		if entry.IsDir() {
			if !matches(opts.SkipDirs, name, rel) {
				subdirs = append(subdirs, entry)
			}
			continue
		}

		if filepath.Join(dir, name) == output {
			continue
		}
		if matches(opts.SkipFiles, name, rel) {
			result.Skipped = append(result.Skipped, rel)
			continue
		}
		if err := writeBlock(w, root, rel); err != nil {
			return err
		}
		result.Files = append(result.Files, rel)
	}

	for _, sub := range subdirs {
		if err := visitDir(root, path.Join(relDir, sub.Name()), output, opts, w, result); err != nil {
			return err
		}
	}
	return nil
}

func writeBlock(w io.Writer, root, rel string) error {
	content, readErr := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))

	var body string
	if readErr != nil {
		body = fmt.Sprintf("*** Error reading file: %v ***\n", readErr)
	} else {
		body = strings.ToValidUTF8(string(content), "")
		if body != "" && !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
	}

	_, err := fmt.Fprintf(w, "```%s\n%s```\n\n", rel, body)
	return err
}

func matches(patterns []string, name, rel string) bool {
	for _, pat := range patterns {
		pat = strings.ReplaceAll(pat, "\\", "/")
		if pat == name || pat == rel {
			return true
		}
		if ok, err := doublestar.Match(pat, name); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}
