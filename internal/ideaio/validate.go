package ideaio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotCSV     = errors.New("only CSV files are supported")
	ErrNoDataRows = errors.New("CSV file must contain a header and at least one data row")
)

// ValidateFile checks an import candidate before parsing: the name must end
// in .csv (any case) and the content must hold at least two non-blank lines.
func ValidateFile(name, content string) error {
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		return fmt.Errorf("%s: %w", name, ErrNotCSV)
	}
	lines := 0
	for _, l := range splitLines(content) {
		if strings.TrimSpace(l) != "" {
			lines++
		}
	}
	if lines < 2 {
		return fmt.Errorf("%s: %w", name, ErrNoDataRows)
	}
	return nil
}
