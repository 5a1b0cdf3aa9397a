package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/prioritas/internal/service"
)

// outputPath picks where an export goes: the suggested filename in the
// current directory, inside out when it is a directory, or out itself.
func outputPath(out, suggested string) string {
	if out == "" {
		return suggested
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, suggested)
	}
	return out
}

// writeExport stores a finished export. Data goes to a temp file in the
// target directory first so a failed write never leaves a partial file
// under the final name.
func writeExport(res *service.ExportResult, out string) (string, error) {
	path := outputPath(out, res.Filename)
	tmp, err := os.CreateTemp(filepath.Dir(path), ".prioritas-*")
	if err != nil {
		return "", fmt.Errorf("creating output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(res.Data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("saving %s: %w", path, err)
	}
	return path, nil
}
