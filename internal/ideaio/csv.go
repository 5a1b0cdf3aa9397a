// Package ideaio converts idea records to and from CSV and XLSX.
package ideaio

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/prioritas/internal/domain"
)

// Header is the exported column order. Import is positional and ignores the
// header text.
var Header = []string{
	"ID", "Title", "Details", "Priority", "X Position", "Y Position",
	"Created By", "Created At", "Updated At",
}

// Positional columns read on import.
const (
	colContent   = 1
	colDetails   = 2
	colPriority  = 3
	colX         = 4
	colY         = 5
	colCreatedBy = 6

	minColumns = 4
)

// WriteCSV writes the header and one row per idea. Every field is quoted
// with embedded quotes doubled.
func WriteCSV(w io.Writer, ideas []*domain.Idea) error {
	bw := bufio.NewWriter(w)
	writeRow(bw, Header)
	for _, idea := range ideas {
		writeRow(bw, ideaRow(idea))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// ExportCSV returns the CSV document as a string.
func ExportCSV(ideas []*domain.Idea) string {
	var sb strings.Builder
	_ = WriteCSV(&sb, ideas)
	return sb.String()
}

// ExportFilename is the default name for a CSV export made at now.
func ExportFilename(now time.Time) string {
	return "prioritas-ideas-" + now.Format("2006-01-02") + ".csv"
}

func ideaRow(i *domain.Idea) []string {
	return []string{
		i.ID,
		i.Content,
		i.Details,
		string(i.Priority),
		fmt.Sprint(i.X),
		fmt.Sprint(i.Y),
		i.CreatedBy,
		formatTimestamp(i.CreatedAt),
		formatTimestamp(i.UpdatedAt),
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func writeRow(w *bufio.Writer, fields []string) {
	for n, f := range fields {
		if n > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteString("\n")
}

// ParseCSV builds idea records from CSV text. The first line is always
// treated as a header. Rows with fewer than four fields are skipped; every
// other row yields an idea with a coerced priority and clamped position.
// Field text is kept as written. IDs, project and timestamps are left for
// the caller to assign.
// ParseCSV never fails: malformed input yields fewer ideas.
func ParseCSV(text, fallbackUser string) []domain.Idea {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil
	}

	var ideas []domain.Idea
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := SplitLine(line)
		if len(fields) < minColumns {
			continue
		}
		idea := domain.Idea{
			Content:   field(fields, colContent),
			Details:   field(fields, colDetails),
			Priority:  domain.ParsePriority(strings.TrimSpace(field(fields, colPriority))),
			X:         parsePosition(field(fields, colX)),
			Y:         parsePosition(field(fields, colY)),
			CreatedBy: field(fields, colCreatedBy),
		}
		if strings.TrimSpace(idea.CreatedBy) == "" {
			idea.CreatedBy = fallbackUser
		}
		ideas = append(ideas, idea)
	}
	return ideas
}

// SplitLine splits one CSV line on commas outside quotes. A quote toggles
// quoted mode and is not emitted; a doubled quote inside a quoted field
// emits one literal quote.
func SplitLine(line string) []string {
	var (
		fields   []string
		cur      strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && inQuotes && i+1 < len(line) && line[i+1] == '"':
			cur.WriteByte('"')
			i++
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String())
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// parsePosition reads a leading integer the way a lenient number parser
// does ("120px" is 120). Anything without a leading integer yields the
// default position.
func parsePosition(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return domain.DefaultPosition
	}
	n := 0
	for _, c := range s[digits:end] {
		n = n*10 + int(c-'0')
		if n > 1_000_000 {
			break
		}
	}
	if s[0] == '-' {
		n = -n
	}
	return domain.ClampPosition(n)
}
