package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/prioritas/internal/domain"
)

const previewWidth = 60

func FormatFileList(files []*domain.ProjectFile, now time.Time) string {
	if len(files) == 0 {
		return Dim("No files attached.") + "\n"
	}
	headers := []string{"ID", "NAME", "TYPE", "SIZE", "ADDED", "PREVIEW"}
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		preview := Dim("(no preview)")
		if f.ContentPreview != "" {
			preview = Dim(Truncate(strings.ReplaceAll(f.ContentPreview, "\n", " "), previewWidth))
		}
		rows = append(rows, []string{
			Dim(TruncID(f.ID)),
			Truncate(f.Name, 32),
			domain.CoalesceStr(f.MimeType, "-"),
			HumanBytes(f.SizeBytes),
			RelativeDateFrom(f.CreatedAt, now),
			preview,
		})
	}
	return RenderTable(headers, rows)
}
