package export

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/seeder"
)

// SQLWriter renders generated rows as an insert script, one statement per row,
// grouped under numbered banners.
type SQLWriter struct {
	w       *bufio.Writer
	dialect *Dialect
	rows    int
}

func NewSQLWriter(w io.Writer, dialect *Dialect) *SQLWriter {
	return &SQLWriter{
		w:       bufio.NewWriterSize(w, 256*1024),
		dialect: dialect,
	}
}

func (s *SQLWriter) WriteHeader() error {
	return s.writeLines(append(s.dialect.Header(), ""))
}

func (s *SQLWriter) WriteFooter() error {
	if err := s.writeLines(s.dialect.Footer()); err != nil {
		return err
	}
	return s.w.Flush()
}

func (s *SQLWriter) BeginEntity(_ context.Context, ordinal int, e seeder.Entity) error {
	_, err := fmt.Fprintf(s.w, "-- (%d) %s\n", ordinal, e.Plural)
	return err
}

func (s *SQLWriter) WriteRow(_ context.Context, row seeder.Row) error {
	stmt, err := s.dialect.Statement(row.Entity, row.Values)
	if err != nil {
		return err
	}
	if _, err := s.w.WriteString(stmt); err != nil {
		return err
	}
	s.rows++
	return s.w.WriteByte('\n')
}

func (s *SQLWriter) EndEntity(_ context.Context, _ seeder.Entity) error {
	return s.w.WriteByte('\n')
}

// Rows reports how many statements have been written.
func (s *SQLWriter) Rows() int {
	return s.rows
}

func (s *SQLWriter) writeLines(lines []string) error {
	for _, line := range lines {
		if _, err := s.w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteFileAtomic streams fn's output to a temp file next to path and renames
// it into place only when fn and the close both succeed.
func WriteFileAtomic(path string, fn func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = fn(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// GenerateFile runs gen and writes the full script to path.
func GenerateFile(ctx context.Context, gen *seeder.Generator, dialect *Dialect, path string) (*seeder.Summary, error) {
	var summary *seeder.Summary
	err := WriteFileAtomic(path, func(w io.Writer) error {
		sw := NewSQLWriter(w, dialect)
		if err := sw.WriteHeader(); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		var err error
		summary, err = gen.Run(ctx, sw)
		if err != nil {
			return err
		}
		if err := sw.WriteFooter(); err != nil {
			return fmt.Errorf("failed to write footer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
