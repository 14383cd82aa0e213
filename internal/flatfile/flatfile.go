// Package flatfile reads and writes the semicolon-delimited subnet table
// used for bulk import and export. Numbers use a decimal comma, matching
// the spreadsheet exports the table originates from.
package flatfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Row is one subnet entry in the flat table.
type Row struct {
	Name                 string  `json:"name"`
	ServiceResearch      float64 `json:"service_research"`
	IntelligenceResource float64 `json:"intelligence_resource"`
	Score                float64 `json:"score"`
	Notes                string  `json:"notes,omitempty"`
}

// header columns, in order. The notes column is optional on read and
// always written.
var header = []string{"Name", "Service-Research", "Intelligence-Resource", "custom-eval", "personal-notes"}

// File binds the table to a path and an optional backup path that
// receives the previous contents before every overwrite.
type File struct {
	Path       string
	BackupPath string
	logger     *slog.Logger
}

// NewFile returns a File for path. backupPath may be empty to disable
// backups.
func NewFile(path, backupPath string, logger *slog.Logger) *File {
	return &File{Path: path, BackupPath: backupPath, logger: logger}
}

// Load reads all rows. A missing file is not an error: it yields an
// empty table and a warning, so a fresh deployment starts blank.
func (f *File) Load() ([]Row, error) {
	file, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		f.logger.Warn("subnet table not found, starting empty", "path", f.Path)
		return []Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening subnet table: %w", err)
	}
	defer file.Close()

	rows, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return rows, nil
}

// Save writes rows, backing up the current file first when a backup
// path is configured.
func (f *File) Save(rows []Row) error {
	if f.BackupPath != "" {
		if err := f.backup(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("creating table directory: %w", err)
	}

	file, err := os.Create(f.Path)
	if err != nil {
		return fmt.Errorf("writing subnet table: %w", err)
	}
	defer file.Close()

	if err := Encode(file, rows); err != nil {
		return fmt.Errorf("encoding subnet table: %w", err)
	}
	return nil
}

func (f *File) backup() error {
	src, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening table for backup: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(f.BackupPath), 0o755); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}
	dst, err := os.Create(f.BackupPath)
	if err != nil {
		return fmt.Errorf("creating table backup: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copying table backup: %w", err)
	}
	return nil
}

// Decode parses the semicolon-delimited table from r. The first record
// must be the standard header; the notes column may be absent.
func Decode(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []Row{}, nil
	}
	if err := validateHeader(records[0]); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < 4 {
			return nil, fmt.Errorf("row %d: expected at least 4 columns, got %d", i+2, len(rec))
		}
		row := Row{Name: strings.TrimSpace(rec[0])}
		if row.ServiceResearch, err = parseDecimal(rec[1]); err != nil {
			return nil, fmt.Errorf("row %d: service-research: %w", i+2, err)
		}
		if row.IntelligenceResource, err = parseDecimal(rec[2]); err != nil {
			return nil, fmt.Errorf("row %d: intelligence-resource: %w", i+2, err)
		}
		if row.Score, err = parseDecimal(rec[3]); err != nil {
			return nil, fmt.Errorf("row %d: custom-eval: %w", i+2, err)
		}
		if len(rec) > 4 {
			row.Notes = strings.TrimSpace(rec[4])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// validateHeader checks the first record against the expected column
// names so a reordered or foreign table is rejected instead of being
// read positionally. The trailing notes column may be absent.
func validateHeader(rec []string) error {
	if len(rec) < 4 {
		return fmt.Errorf("header: expected at least 4 columns, got %d", len(rec))
	}
	if len(rec) > len(header) {
		return fmt.Errorf("header: expected at most %d columns, got %d", len(header), len(rec))
	}
	for i, name := range rec {
		if !strings.EqualFold(strings.TrimSpace(name), header[i]) {
			return fmt.Errorf("header: column %d: expected %q, got %q", i+1, header[i], name)
		}
	}
	return nil
}

// Encode writes rows to w with the standard header.
func Encode(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			row.Name,
			formatDecimal(row.ServiceResearch),
			formatDecimal(row.IntelligenceResource),
			formatDecimal(row.Score),
			row.Notes,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// parseDecimal accepts both decimal comma and decimal point.
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func formatDecimal(v float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', -1, 64), ".", ",")
}
