// Package pathutil provides centralized path management for the
// Beancount export tree.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathResolver manages paths for exported Beancount files and the
// export-history database.
type PathResolver struct {
	exportRoot   string
	databasePath string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// ExportRoot is the root directory for all exported Beancount files.
	ExportRoot string
	// DatabasePath is the path to the SQLite export-history database.
	// Defaults to {ExportRoot}/.export/history.db.
	DatabasePath string
}

// New creates a new PathResolver with the given configuration.
func New(config Config) *PathResolver {
	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(config.ExportRoot, ".export", "history.db")
	}
	return &PathResolver{
		exportRoot:   config.ExportRoot,
		databasePath: dbPath,
	}
}

// ExportRoot returns the export root directory.
func (p *PathResolver) ExportRoot() string {
	return p.exportRoot
}

// DatabasePath returns the history database file path.
func (p *PathResolver) DatabasePath() string {
	return p.databasePath
}

// YearDir returns the directory path for a year.
// Example: {root}/2026
func (p *PathResolver) YearDir(year string) string {
	return filepath.Join(p.exportRoot, year)
}

// MonthFilePath returns the file path for a month. yearMonth must be in
// YYYY-MM format. Example: {root}/2026/2026-01.beancount
func (p *PathResolver) MonthFilePath(yearMonth string) (string, error) {
	parts := strings.Split(yearMonth, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return "", fmt.Errorf("invalid year-month format: %s. Expected YYYY-MM", yearMonth)
	}
	return filepath.Join(p.YearDir(parts[0]), fmt.Sprintf("%s.beancount", yearMonth)), nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
