package service

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	// maxPreviewPages bounds how much of a PDF is read for its preview.
	maxPreviewPages = 10
	// PreviewLimit is the number of runes kept from a file's text.
	PreviewLimit = 2000
)

// detectMime prefers the extension and falls back to sniffing.
func detectMime(name string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

// extractPreview returns the leading text of a document. PDFs are read
// page by page; text types are used as-is; anything else has no preview.
func extractPreview(mimeType string, data []byte) (string, error) {
	switch {
	case strings.HasPrefix(mimeType, "application/pdf"):
		text, err := pdfText(data)
		if err != nil {
			return "", err
		}
		return truncateRunes(cleanText(text), PreviewLimit), nil
	case strings.HasPrefix(mimeType, "text/"), strings.HasPrefix(mimeType, "application/json"):
		if !utf8.Valid(data) {
			return "", nil
		}
		return truncateRunes(cleanText(string(data)), PreviewLimit), nil
	default:
		return "", nil
	}
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("invalid PDF: %w", err)
	}

	var b strings.Builder
	pages := min(r.NumPage(), maxPreviewPages)
	for n := 1; n <= pages; n++ {
		page := r.Page(n)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
		if b.Len() > PreviewLimit*4 {
			break
		}
	}
	return b.String(), nil
}

// cleanText collapses runs of whitespace and drops control characters.
func cleanText(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = b.Len() > 0
		case unicode.IsControl(r):
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
