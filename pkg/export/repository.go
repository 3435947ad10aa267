package export

import (
	"fmt"
	"os"
	"time"

	"github.com/ledgerline/ledgerline-go/pkg/pathutil"
)

// FileSystemRepository appends Beancount transactions to monthly files
// under the export root.
type FileSystemRepository struct {
	resolver *pathutil.PathResolver
}

// NewFileSystemRepository creates a repository over the given resolver.
func NewFileSystemRepository(resolver *pathutil.PathResolver) *FileSystemRepository {
	return &FileSystemRepository{resolver: resolver}
}

// EnsureMonthFile ensures a monthly file exists with a header.
// If the file already exists, this is a no-op.
func (r *FileSystemRepository) EnsureMonthFile(yearMonth string) error {
	filePath, err := r.resolver.MonthFilePath(yearMonth)
	if err != nil {
		return fmt.Errorf("failed to get month file path: %w", err)
	}

	if r.resolver.FileExists(filePath) {
		return nil
	}

	if err := r.resolver.EnsureParentDir(filePath); err != nil {
		return fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	header := fmt.Sprintf("; Beancount file for %s\n; Generated at %s\n\n", yearMonth, time.Now().Format(time.RFC3339))
	if err := os.WriteFile(filePath, []byte(header), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// AppendTransactions appends formatted transactions to a monthly file,
// creating it with a header when needed. Returns the file path.
func (r *FileSystemRepository) AppendTransactions(yearMonth string, transactions []Transaction) (string, error) {
	if err := r.EnsureMonthFile(yearMonth); err != nil {
		return "", err
	}

	filePath, err := r.resolver.MonthFilePath(yearMonth)
	if err != nil {
		return "", fmt.Errorf("failed to get month file path: %w", err)
	}

	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open month file: %w", err)
	}
	defer f.Close()

	for _, tx := range transactions {
		if _, err := f.WriteString(Format(tx) + "\n"); err != nil {
			return "", fmt.Errorf("failed to append transaction: %w", err)
		}
	}
	return filePath, nil
}

// ReadMonthFile reads the content of a monthly file.
// Returns empty string if the file doesn't exist.
func (r *FileSystemRepository) ReadMonthFile(yearMonth string) (string, error) {
	filePath, err := r.resolver.MonthFilePath(yearMonth)
	if err != nil {
		return "", fmt.Errorf("failed to get month file path: %w", err)
	}

	if !r.resolver.FileExists(filePath) {
		return "", nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}
