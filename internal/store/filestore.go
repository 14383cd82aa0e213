package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	frameworksDir = "frameworks"
	compassDir    = "compass"
)

// FileStore keeps one JSON document per framework and per compass under the
// data directory, with a backup directory mirroring the layout 1:1. Every
// save over an existing file and every delete writes a byte-identical backup
// copy first. One backup per document is kept: the last state before the
// most recent change, not a versioned history.
//
// Writes are not guarded by locks. Concurrent writers to the same document
// race and the last writer wins; the tool targets single-operator use.
type FileStore struct {
	dataDir   string
	backupDir string
	logger    *slog.Logger
}

func NewFileStore(dataDir, backupDir string, logger *slog.Logger) (*FileStore, error) {
	for _, dir := range []string{
		filepath.Join(dataDir, frameworksDir),
		filepath.Join(dataDir, compassDir),
		filepath.Join(backupDir, frameworksDir),
		filepath.Join(backupDir, compassDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return &FileStore{dataDir: dataDir, backupDir: backupDir, logger: logger}, nil
}

// SeedBackups backs up every existing document whose backup directory is
// still empty, so a fresh backup tree starts from the current state.
func (fs *FileStore) SeedBackups() error {
	for _, sub := range []string{frameworksDir, compassDir} {
		backupSub := filepath.Join(fs.backupDir, sub)
		entries, err := os.ReadDir(backupSub)
		if err != nil {
			return fmt.Errorf("read %s: %w", backupSub, err)
		}
		if len(entries) > 0 {
			continue
		}
		srcEntries, err := os.ReadDir(filepath.Join(fs.dataDir, sub))
		if err != nil {
			return fmt.Errorf("read %s: %w", sub, err)
		}
		for _, e := range srcEntries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			src := filepath.Join(fs.dataDir, sub, e.Name())
			dst := filepath.Join(backupSub, e.Name())
			if err := copyFile(src, dst); err != nil {
				fs.logger.Warn("seed backup failed", "file", src, "error", err)
				continue
			}
			fs.logger.Info("seeded backup", "file", e.Name())
		}
	}
	return nil
}

// --- Frameworks ---

func (fs *FileStore) ListFrameworks(onlyActive bool) ([]*Framework, error) {
	dir := filepath.Join(fs.dataDir, frameworksDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frameworks dir: %w", err)
	}

	var frameworks []*Framework
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		fw, err := readFramework(path)
		if err != nil {
			// A malformed document never fails the whole listing.
			fs.logger.Warn("skipping malformed framework", "file", path, "error", err)
			continue
		}
		if onlyActive && !fw.Active {
			continue
		}
		frameworks = append(frameworks, fw)
	}
	return frameworks, nil
}

func (fs *FileStore) GetFramework(name string) (*Framework, error) {
	frameworks, err := fs.ListFrameworks(false)
	if err != nil {
		return nil, err
	}
	for _, fw := range frameworks {
		if fw.Name == name {
			return fw, nil
		}
	}
	return nil, nil
}

// SaveFramework writes the framework document, backing up any pre-existing
// file first. The timestamp fields are refreshed here; Active is left to the
// caller. Returns the file path written.
func (fs *FileStore) SaveFramework(fw *Framework) (string, error) {
	if err := fw.Validate(); err != nil {
		return "", err
	}

	path := fw.FilePath
	if path == "" {
		path = filepath.Join(fs.dataDir, frameworksDir, slug(fw.Name)+".json")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if fw.CreatedAt == "" {
		fw.CreatedAt = now
	}
	fw.UpdatedAt = now

	if fileExists(path) {
		if err := fs.backup(path, frameworksDir); err != nil {
			return "", fmt.Errorf("backup before save: %w", err)
		}
	}
	if err := writeDocument(path, fw); err != nil {
		return "", err
	}
	fw.FilePath = path
	return path, nil
}

func (fs *FileStore) DeleteFramework(name string) error {
	fw, err := fs.GetFramework(name)
	if err != nil {
		return err
	}
	if fw == nil {
		return fmt.Errorf("framework %q not found", name)
	}
	if err := fs.backup(fw.FilePath, frameworksDir); err != nil {
		return fmt.Errorf("backup before delete: %w", err)
	}
	return os.Remove(fw.FilePath)
}

func (fs *FileStore) BackupFramework(name string) error {
	fw, err := fs.GetFramework(name)
	if err != nil {
		return err
	}
	if fw == nil {
		return fmt.Errorf("framework %q not found", name)
	}
	return fs.backup(fw.FilePath, frameworksDir)
}

// --- Compasses ---

func (fs *FileStore) ListCompasses() ([]*Compass, error) {
	dir := filepath.Join(fs.dataDir, compassDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read compass dir: %w", err)
	}

	var compasses []*Compass
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		c, err := readCompass(path)
		if err != nil {
			fs.logger.Warn("skipping malformed compass", "file", path, "error", err)
			continue
		}
		compasses = append(compasses, c)
	}
	return compasses, nil
}

func (fs *FileStore) GetCompass(name string) (*Compass, error) {
	compasses, err := fs.ListCompasses()
	if err != nil {
		return nil, err
	}
	for _, c := range compasses {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

// SaveCompass writes the compass document. A compass being re-saved keeps its
// file (after a backup); a new compass gets a fresh file, with a numeric
// suffix when another evaluation already claimed the slug.
func (fs *FileStore) SaveCompass(c *Compass) (string, error) {
	if c.Name == "" {
		return "", fmt.Errorf("compass name required")
	}

	path := c.FilePath
	if path == "" {
		base := filepath.Join(fs.dataDir, compassDir, slug(c.Name))
		path = base + ".json"
		for counter := 1; fileExists(path); counter++ {
			path = fmt.Sprintf("%s_%d.json", base, counter)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if c.CreatedAt == "" {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	if fileExists(path) {
		if err := fs.backup(path, compassDir); err != nil {
			return "", fmt.Errorf("backup before save: %w", err)
		}
	}
	if err := writeDocument(path, c); err != nil {
		return "", err
	}
	c.FilePath = path
	return path, nil
}

func (fs *FileStore) DeleteCompass(name string) error {
	c, err := fs.GetCompass(name)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("compass %q not found", name)
	}
	if err := fs.backup(c.FilePath, compassDir); err != nil {
		return fmt.Errorf("backup before delete: %w", err)
	}
	return os.Remove(c.FilePath)
}

func (fs *FileStore) BackupCompass(name string) error {
	c, err := fs.GetCompass(name)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("compass %q not found", name)
	}
	return fs.backup(c.FilePath, compassDir)
}

// --- helpers ---

func (fs *FileStore) backup(path, sub string) error {
	dst := filepath.Join(fs.backupDir, sub, filepath.Base(path))
	if err := copyFile(path, dst); err != nil {
		return err
	}
	fs.logger.Info("created backup", "file", filepath.Base(path))
	return nil
}

func readFramework(path string) (*Framework, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fw Framework
	if err := json.Unmarshal(data, &fw); err != nil {
		return nil, err
	}
	if fw.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	fw.FilePath = path
	return &fw, nil
}

func readCompass(path string) (*Compass, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Compass
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if c.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	c.FilePath = path
	return &c, nil
}

func writeDocument(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
