// Package archive keeps printed documents and backups on disk, filed by year and month.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shunichi-ikebuchi/sppd/pkg/pathutil"
)

// Archive defines the interface for archived file operations.
type Archive interface {
	// Save writes data under the month of date and returns the file path
	Save(date, name string, data []byte) (string, error)

	// Read reads an archived file
	Read(date, name string) ([]byte, error)

	// Exists checks if an archived file exists
	Exists(date, name string) bool

	// List lists the archived file names of a month
	List(yearMonth string) ([]string, error)
}

// FileSystemArchive is a file system implementation of Archive.
type FileSystemArchive struct {
	pathResolver *pathutil.PathResolver
}

// NewFileSystemArchive creates a new FileSystemArchive.
func NewFileSystemArchive(pathResolver *pathutil.PathResolver) *FileSystemArchive {
	return &FileSystemArchive{
		pathResolver: pathResolver,
	}
}

// Save writes data to {archive}/{yyyy}/{mm}/{name}, replacing any previous file.
func (a *FileSystemArchive) Save(date, name string, data []byte) (string, error) {
	filePath, err := a.pathResolver.GetArchivePath(date, name)
	if err != nil {
		return "", fmt.Errorf("failed to get archive path: %w", err)
	}

	if err := a.pathResolver.EnsureParentDir(filePath); err != nil {
		return "", fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	// Written beside the target, then renamed into place.
	tmp, err := os.CreateTemp(filepath.Dir(filePath), "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}

	return filePath, nil
}

// Read reads an archived file.
func (a *FileSystemArchive) Read(date, name string) ([]byte, error) {
	filePath, err := a.pathResolver.GetArchivePath(date, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get archive path: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Exists checks if an archived file exists.
func (a *FileSystemArchive) Exists(date, name string) bool {
	filePath, err := a.pathResolver.GetArchivePath(date, name)
	if err != nil {
		return false
	}
	return a.pathResolver.FileExists(filePath)
}

// List lists the archived file names of a month in lexical order.
// Returns an empty slice if nothing has been archived that month.
func (a *FileSystemArchive) List(yearMonth string) ([]string, error) {
	monthDir, err := a.pathResolver.GetMonthDir(yearMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to get month directory: %w", err)
	}
	if !a.pathResolver.FileExists(monthDir) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(monthDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read month directory: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}
