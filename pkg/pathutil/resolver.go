// Package pathutil provides centralized path management for the data store and the document archive.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PathResolver manages paths for the data store, backups and archived documents.
type PathResolver struct {
	dataDir      string
	databasePath string
	archiveDir   string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DataDir is the root directory for all local data (e.g., ~/sppd-data)
	DataDir string
	// DatabasePath is the path to the key-value store file
	DatabasePath string
	// ArchiveDir is the directory for printed documents and backups
	ArchiveDir string
}

// New creates a new PathResolver with the given configuration.
// If DatabasePath is empty, it defaults to {DataDir}/sppd.db
// If ArchiveDir is empty, it defaults to {DataDir}/arsip
func New(config Config) *PathResolver {
	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(config.DataDir, "sppd.db")
	}

	archiveDir := config.ArchiveDir
	if archiveDir == "" {
		archiveDir = filepath.Join(config.DataDir, "arsip")
	}

	return &PathResolver{
		dataDir:      config.DataDir,
		databasePath: dbPath,
		archiveDir:   archiveDir,
	}
}

// GetDataDir returns the data directory.
func (p *PathResolver) GetDataDir() string {
	return p.dataDir
}

// GetDatabasePath returns the store file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetArchiveDir returns the archive directory.
func (p *PathResolver) GetArchiveDir() string {
	return p.archiveDir
}

// GetYearDir returns the archive directory for a year.
// Example: arsip/2024
func (p *PathResolver) GetYearDir(year string) string {
	return filepath.Join(p.archiveDir, year)
}

// GetMonthDir returns the archive directory for a month.
// yearMonth should be in YYYY-MM format.
// Example: arsip/2024/03
func (p *PathResolver) GetMonthDir(yearMonth string) (string, error) {
	parts := strings.Split(yearMonth, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return "", fmt.Errorf("invalid year-month format: %s. Expected YYYY-MM", yearMonth)
	}
	return filepath.Join(p.GetYearDir(parts[0]), parts[1]), nil
}

// GetArchivePath returns the archive file path for a given date and filename.
// Example: arsip/2024/03/sppd_090_001_2024.pdf
func (p *PathResolver) GetArchivePath(date, filename string) (string, error) {
	if len(date) < 7 {
		return "", fmt.Errorf("invalid date format: %s. Expected YYYY-MM-DD", date)
	}
	dir, err := p.GetMonthDir(date[:7])
	if err != nil {
		return "", err
	}
	if filename == "" || filename != filepath.Base(filename) {
		return "", fmt.Errorf("invalid file name: %q", filename)
	}
	return filepath.Join(dir, filename), nil
}

// BackupFileName returns the name of a backup taken on day t.
// Example: sppd_backup_2024-03-15.json
func BackupFileName(t time.Time) string {
	return fmt.Sprintf("sppd_backup_%s.json", t.Format("2006-01-02"))
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
