package domain

import "time"

// ProjectFile is an uploaded project document. ContentPreview holds text
// extracted at upload time; it is shown next to reports and never parsed.
type ProjectFile struct {
	ID             string
	ProjectID      string
	Name           string
	MimeType       string
	SizeBytes      int64
	ContentPreview string
	UploadedBy     string
	CreatedAt      time.Time
}
