// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/example/moviedq/internal/ports/secondary"
)

// ArtifactWriter writes backups, JSON snapshots and text reports to disk.
type ArtifactWriter struct {
	backupDir string
	outputDir string
}

// NewArtifactWriter creates a new filesystem artifact writer.
// Directories are created on first write.
func NewArtifactWriter(backupDir, outputDir string) *ArtifactWriter {
	return &ArtifactWriter{
		backupDir: backupDir,
		outputDir: outputDir,
	}
}

// TimestampedName returns prefix_YYYYMMDD_HHMMSS.ext.
func TimestampedName(prefix, ext string, t time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, t.Format("20060102_150405"), ext)
}

// WriteBackup streams a dump into backupDir/name. A failed write leaves no file behind.
func (a *ArtifactWriter) WriteBackup(ctx context.Context, name string, write func(w io.Writer) error) (string, error) {
	return a.writeFile(ctx, a.backupDir, name, write)
}

// RemoveBackup deletes a backup written by WriteBackup.
func (a *ArtifactWriter) RemoveBackup(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove backup %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes v as indented JSON into outputDir/name.
func (a *ArtifactWriter) WriteJSON(ctx context.Context, name string, v any) (string, error) {
	return a.writeFile(ctx, a.outputDir, name, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

// WriteText writes a rendered text report into outputDir/name.
func (a *ArtifactWriter) WriteText(ctx context.Context, name string, render func(w io.Writer) error) (string, error) {
	return a.writeFile(ctx, a.outputDir, name, render)
}

func (a *ArtifactWriter) writeFile(ctx context.Context, dir, name string, write func(w io.Writer) error) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := a.CreateDirectory(ctx, dir); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to finalize %s: %w", path, err)
	}

	return path, nil
}

// CreateDirectory creates a directory with all parent directories.
func (a *ArtifactWriter) CreateDirectory(ctx context.Context, path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// DirectoryExists checks if a directory exists.
func (a *ArtifactWriter) DirectoryExists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check directory: %w", err)
	}
	return info.IsDir(), nil
}

// Ensure ArtifactWriter implements the interface
var _ secondary.BackupWriter = (*ArtifactWriter)(nil)
