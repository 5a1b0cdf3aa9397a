package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/prioritas/internal/domain"
)

var ErrExportFailed = errors.New("report export failed")

// SurfaceFactory creates a fresh surface for one export.
type SurfaceFactory func(Style) Surface

// PDF is the SurfaceFactory for fpdf output.
func PDF(st Style) Surface { return NewPDFSurface(st) }

// Export renders report into an in-memory document and copies it to w only
// once rendering has fully succeeded. Panics and surface errors are turned
// into ErrExportFailed; in that case nothing is written to w.
func Export(w io.Writer, newSurface SurfaceFactory, style Style, report *domain.InsightsReport, meta Meta) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrExportFailed, r)
		}
	}()

	s := newSurface(style)
	if err := NewAssembler(style, SectionsFor(style.Variant)).Render(s, report, meta); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	var buf bytes.Buffer
	if err := s.Output(&buf); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
