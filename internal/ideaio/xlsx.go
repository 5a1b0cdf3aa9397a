package ideaio

import (
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Ideas"

// WriteXLSX writes the CSV columns to a single "Ideas" worksheet. Positions
// are stored as numbers so spreadsheet users can sort by them.
func WriteXLSX(w io.Writer, ideas []*domain.Idea) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for n, idea := range ideas {
		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		row := []any{
			idea.ID, idea.Content, idea.Details, string(idea.Priority), idea.X, idea.Y,
			idea.CreatedBy, formatTimestamp(idea.CreatedAt), formatTimestamp(idea.UpdatedAt),
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", n+1, err)
		}
	}

	if err := f.SetPanes(xlsxSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}

// XLSXFilename is the default name for a spreadsheet export made at now.
func XLSXFilename(now time.Time) string {
	return "prioritas-ideas-" + now.Format("2006-01-02") + ".xlsx"
}
