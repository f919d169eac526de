package beancount

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pigeonworks-llc/fintrack/pkg/pathutil"
)

// Repository defines the interface for Beancount file operations.
type Repository interface {
	// WriteMonthFile replaces a monthly file with the given entries
	WriteMonthFile(yearMonth string, entries []string) error

	// ReadMonthFile reads the content of a monthly file
	ReadMonthFile(yearMonth string) (string, error)

	// MonthFileExists checks if a monthly file exists
	MonthFileExists(yearMonth string) bool

	// GetMonthFilesInYear gets all monthly files in a year
	GetMonthFilesInYear(year string) ([]string, error)

	// WriteAccountsFile replaces the file holding account directives
	WriteAccountsFile(entries []string) error

	// WriteMainFile replaces the file that includes every other file
	WriteMainFile(months []string) error

	// PruneMonths removes monthly files for months not in keep
	PruneMonths(keep []string) ([]string, error)
}

// FileSystemRepository is a file system implementation of Repository.
type FileSystemRepository struct {
	pathResolver *pathutil.PathResolver
	now          func() time.Time
}

// NewFileSystemRepository creates a new FileSystemRepository.
func NewFileSystemRepository(pathResolver *pathutil.PathResolver) *FileSystemRepository {
	return &FileSystemRepository{
		pathResolver: pathResolver,
		now:          time.Now,
	}
}

// WriteMonthFile replaces a monthly file with a header and the entries,
// separated by blank lines.
func (r *FileSystemRepository) WriteMonthFile(yearMonth string, entries []string) error {
	filePath, err := r.pathResolver.GetMonthFilePath(yearMonth)
	if err != nil {
		return fmt.Errorf("failed to get month file path: %w", err)
	}
	return r.writeFile(filePath, fmt.Sprintf("Beancount file for %s", yearMonth), entries)
}

// ReadMonthFile reads the content of a monthly file.
// Returns empty string if file doesn't exist.
func (r *FileSystemRepository) ReadMonthFile(yearMonth string) (string, error) {
	filePath, err := r.pathResolver.GetMonthFilePath(yearMonth)
	if err != nil {
		return "", fmt.Errorf("failed to get month file path: %w", err)
	}

	if !r.pathResolver.FileExists(filePath) {
		return "", nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return string(data), nil
}

// MonthFileExists checks if a monthly file exists.
func (r *FileSystemRepository) MonthFileExists(yearMonth string) bool {
	filePath, err := r.pathResolver.GetMonthFilePath(yearMonth)
	if err != nil {
		return false
	}

	return r.pathResolver.FileExists(filePath)
}

// GetMonthFilesInYear gets all monthly files in a year.
// Returns a slice of year-month strings (e.g., ["2024-01", "2024-02"]).
func (r *FileSystemRepository) GetMonthFilesInYear(year string) ([]string, error) {
	yearDir := r.pathResolver.GetYearDir(year)
	if !r.pathResolver.FileExists(yearDir) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(yearDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read year directory: %w", err)
	}

	var monthFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if filepath.Ext(name) == ".beancount" {
			monthFiles = append(monthFiles, strings.TrimSuffix(name, ".beancount"))
		}
	}

	return monthFiles, nil
}

// WriteAccountsFile replaces the accounts file.
func (r *FileSystemRepository) WriteAccountsFile(entries []string) error {
	return r.writeFile(r.pathResolver.GetAccountsFilePath(), "Accounts and opening balances", entries)
}

// WriteMainFile replaces the main file with an option line and includes for
// the accounts file and each month, in order.
func (r *FileSystemRepository) WriteMainFile(months []string) error {
	sorted := slices.Sorted(slices.Values(months))

	includes := []string{`option "title" "fintrack"`, `include "accounts.beancount"`}
	for _, ym := range sorted {
		includes = append(includes, fmt.Sprintf("include \"%s/%s.beancount\"", ym[:4], ym))
	}
	return r.writeFile(r.pathResolver.GetMainFilePath(), "fintrack journal", []string{strings.Join(includes, "\n")})
}

// PruneMonths removes monthly files left over from months that no longer
// have transactions. It returns the removed months.
func (r *FileSystemRepository) PruneMonths(keep []string) ([]string, error) {
	root := r.pathResolver.GetBeancountRoot()
	if !r.pathResolver.FileExists(root) {
		return nil, nil
	}

	years, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read beancount directory: %w", err)
	}

	var removed []string
	for _, year := range years {
		if !year.IsDir() {
			continue
		}
		months, err := r.GetMonthFilesInYear(year.Name())
		if err != nil {
			return removed, err
		}
		for _, ym := range months {
			if slices.Contains(keep, ym) {
				continue
			}
			filePath, err := r.pathResolver.GetMonthFilePath(ym)
			if err != nil {
				continue
			}
			if err := os.Remove(filePath); err != nil {
				return removed, fmt.Errorf("failed to remove %s: %w", filePath, err)
			}
			removed = append(removed, ym)
		}
	}
	return removed, nil
}

func (r *FileSystemRepository) writeFile(filePath, title string, entries []string) error {
	if err := r.pathResolver.EnsureParentDir(filePath); err != nil {
		return fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(r.generateFileHeader(title))
	for _, entry := range entries {
		sb.WriteString(entry)
		if !strings.HasSuffix(entry, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if err := os.WriteFile(filePath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// generateFileHeader generates a header comment for a file.
func (r *FileSystemRepository) generateFileHeader(title string) string {
	now := r.now().Format(time.RFC3339)
	return fmt.Sprintf("; %s\n; Generated at %s\n\n", title, now)
}
