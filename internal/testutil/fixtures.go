package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/google/uuid"
)

var shortIDSeq atomic.Int64

type ProjectOption func(*domain.Project)

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) { p.ShortID = id }
}

func WithProjectType(t domain.ProjectType) ProjectOption {
	return func(p *domain.Project) { p.ProjectType = t }
}

func WithDescription(d string) ProjectOption {
	return func(p *domain.Project) { p.Description = d }
}

func WithOwner(id string) ProjectOption {
	return func(p *domain.Project) { p.OwnerID = id }
}

// uniqueShortID builds LETTERS+counter so fixtures never collide on the
// unique short_id index.
func uniqueShortID(name string) string {
	var letters []byte
	for _, c := range []byte(strings.ToUpper(name)) {
		if c >= 'A' && c <= 'Z' && len(letters) < 3 {
			letters = append(letters, c)
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	return fmt.Sprintf("%s%02d", letters, shortIDSeq.Add(1))
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:          uuid.New().String(),
		ShortID:     uniqueShortID(name),
		Name:        name,
		ProjectType: domain.ProjectGeneral,
		OwnerID:     "tester",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type IdeaOption func(*domain.Idea)

func WithPriority(pr domain.Priority) IdeaOption {
	return func(i *domain.Idea) { i.Priority = pr }
}

func WithPosition(x, y int) IdeaOption {
	return func(i *domain.Idea) { i.X, i.Y = x, y }
}

func WithDetails(d string) IdeaOption {
	return func(i *domain.Idea) { i.Details = d }
}

func WithCreatedBy(u string) IdeaOption {
	return func(i *domain.Idea) { i.CreatedBy = u }
}

func NewTestIdea(projectID, content string, opts ...IdeaOption) *domain.Idea {
	now := time.Now().UTC().Truncate(time.Second)
	i := &domain.Idea{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Content:   content,
		Priority:  domain.PriorityModerate,
		X:         domain.DefaultPosition,
		Y:         domain.DefaultPosition,
		CreatedBy: "tester",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// NewTestInsight returns an unsaved record carrying only an executive
// summary; the repository assigns Version on save.
func NewTestInsight(projectID, summary string) *domain.InsightRecord {
	return &domain.InsightRecord{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      "Insights",
		OwnerID:   "tester",
		Report:    domain.InsightsReport{ExecutiveSummary: &summary},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func NewTestFile(projectID, name string) *domain.ProjectFile {
	return &domain.ProjectFile{
		ID:             uuid.New().String(),
		ProjectID:      projectID,
		Name:           name,
		MimeType:       "text/plain",
		SizeBytes:      42,
		ContentPreview: "preview of " + name,
		UploadedBy:     "tester",
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}
}
