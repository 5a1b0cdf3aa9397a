package report

import (
	"strings"
	"time"
)

const maxFilenameProject = 30

// Filename builds "<Project>_<suffix>_YYYY-MM-DD.pdf" from a project name
// stripped to ASCII letters and digits and cut to 30 characters. Without a
// usable project name it is "<suffix>_YYYY-MM-DD.pdf".
func Filename(projectName, suffix string, now time.Time) string {
	var b strings.Builder
	for _, r := range projectName {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if len(name) > maxFilenameProject {
		name = name[:maxFilenameProject]
	}
	date := now.Format("2006-01-02")
	if name == "" {
		return suffix + "_" + date + ".pdf"
	}
	return name + "_" + suffix + "_" + date + ".pdf"
}
