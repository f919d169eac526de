// Package pathutil provides centralized path management for fintrack data files.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Default file names under the data root.
const (
	BoltFileName    = "fintrack.db"
	SQLiteFileName  = "fintrack.sqlite"
	CatalogFileName = "categories.yaml"
	ExportDirName   = "exports"
	BeancountDir    = "beancount"
	MappingFileName = "beancount-accounts.yaml"
)

// PathResolver manages paths for the record store, category catalog and exports.
type PathResolver struct {
	dataRoot     string
	databasePath string
	catalogPath  string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DataRoot is the base directory for all fintrack files (e.g., ~/.fintrack)
	DataRoot string
	// Driver selects the default database file name: "sqlite" or anything else for bbolt
	Driver string
	// DatabasePath overrides the record store file
	DatabasePath string
	// CatalogPath overrides the category catalog file
	CatalogPath string
}

// New creates a new PathResolver with the given configuration.
// If DatabasePath is empty, it defaults to {DataRoot}/fintrack.db ({DataRoot}/fintrack.sqlite for sqlite).
// If CatalogPath is empty, it defaults to {DataRoot}/categories.yaml
func New(config Config) *PathResolver {
	dbPath := config.DatabasePath
	if dbPath == "" {
		name := BoltFileName
		if config.Driver == "sqlite" {
			name = SQLiteFileName
		}
		dbPath = filepath.Join(config.DataRoot, name)
	}

	catalogPath := config.CatalogPath
	if catalogPath == "" {
		catalogPath = filepath.Join(config.DataRoot, CatalogFileName)
	}

	return &PathResolver{
		dataRoot:     config.DataRoot,
		databasePath: dbPath,
		catalogPath:  catalogPath,
	}
}

// GetDataRoot returns the data root directory.
func (p *PathResolver) GetDataRoot() string {
	return p.dataRoot
}

// GetDatabasePath returns the record store file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetCatalogPath returns the category catalog file path.
func (p *PathResolver) GetCatalogPath() string {
	return p.catalogPath
}

// GetExportPath returns the file path for an export taken on date.
// date should be in YYYY-MM-DD format.
// Example: ~/.fintrack/exports/fintrack-2024-03-15.yaml
func (p *PathResolver) GetExportPath(date string) (string, error) {
	if len(date) != len("2006-01-02") {
		return "", fmt.Errorf("invalid date format: %s. Expected YYYY-MM-DD", date)
	}
	return filepath.Join(p.dataRoot, ExportDirName, fmt.Sprintf("fintrack-%s.yaml", date)), nil
}

// GetBeancountRoot returns the directory holding the Beancount journal.
// Example: ~/.fintrack/beancount
func (p *PathResolver) GetBeancountRoot() string {
	return filepath.Join(p.dataRoot, BeancountDir)
}

// GetMainFilePath returns the Beancount file that includes all others.
func (p *PathResolver) GetMainFilePath() string {
	return filepath.Join(p.GetBeancountRoot(), "main.beancount")
}

// GetAccountsFilePath returns the Beancount file holding open directives
// and opening balances.
func (p *PathResolver) GetAccountsFilePath() string {
	return filepath.Join(p.GetBeancountRoot(), "accounts.beancount")
}

// GetMappingPath returns the Beancount account mapping file path.
func (p *PathResolver) GetMappingPath() string {
	return filepath.Join(p.dataRoot, MappingFileName)
}

// GetYearDir returns the directory path for a year.
// Example: ~/.fintrack/beancount/2024
func (p *PathResolver) GetYearDir(year string) string {
	return filepath.Join(p.GetBeancountRoot(), year)
}

// GetMonthFilePath returns the file path for a month.
// yearMonth should be in YYYY-MM format.
// Example: ~/.fintrack/beancount/2024/2024-01.beancount
func (p *PathResolver) GetMonthFilePath(yearMonth string) (string, error) {
	parts := strings.Split(yearMonth, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return "", fmt.Errorf("invalid year-month format: %s. Expected YYYY-MM", yearMonth)
	}

	yearDir := p.GetYearDir(parts[0])
	filename := fmt.Sprintf("%s.beancount", yearMonth)

	return filepath.Join(yearDir, filename), nil
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
	dir := filepath.Dir(filePath)
	return p.EnsureDir(dir)
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
