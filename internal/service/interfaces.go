package service

import (
	"context"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/report"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve accepts a project ID, a short ID, or an unambiguous ID prefix.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type IdeaService interface {
	Create(ctx context.Context, i *domain.Idea) error
	GetByID(ctx context.Context, id string) (*domain.Idea, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Idea, error)
	Update(ctx context.Context, i *domain.Idea) error
	// Move repositions an idea on the matrix; coordinates are clamped.
	Move(ctx context.Context, id string, x, y int) (*domain.Idea, error)
	Delete(ctx context.Context, id string) error
}

// ImportResult holds the outcome of a CSV import.
type ImportResult struct {
	ProjectID string
	Created   int
	// Untitled counts rows whose blank title was stored as UntitledIdea.
	Untitled int
}

// ExportResult is a fully rendered document. Callers write Data to disk
// only after the export call returned without error.
type ExportResult struct {
	Filename string
	Data     []byte
}

type TransferService interface {
	// ImportCSV validates and parses content, then creates every idea in
	// one transaction. A failure leaves the project unchanged. userID is the
	// author for rows that do not name one.
	ImportCSV(ctx context.Context, projectID, fileName, content, userID string) (*ImportResult, error)
	ExportCSV(ctx context.Context, projectID string) (*ExportResult, error)
	ExportXLSX(ctx context.Context, projectID string) (*ExportResult, error)
}

// GenerateRequest selects how an insights report is produced.
type GenerateRequest struct {
	ProjectID string
	OwnerID   string
	// Offline derives the report from matrix placement without a model.
	Offline bool
	// Roadmap asks for a roadmap-focused report.
	Roadmap bool
	Model   string
}

// PDFRequest names what to export. InsightID wins; otherwise the latest
// record of ProjectID is used.
type PDFRequest struct {
	InsightID string
	ProjectID string
	Style     report.Style
}

type InsightService interface {
	Generate(ctx context.Context, req GenerateRequest) (*domain.InsightRecord, error)
	Save(ctx context.Context, projectID string, rep domain.InsightsReport, ownerID string, ideaCount int) (string, error)
	Get(ctx context.Context, id string) (*domain.InsightRecord, error)
	Latest(ctx context.Context, projectID string) (*domain.InsightRecord, error)
	List(ctx context.Context, projectID string) ([]*domain.InsightRecord, error)
	Delete(ctx context.Context, id string) error
	ExportPDF(ctx context.Context, req PDFRequest) (*ExportResult, error)
}

type FileService interface {
	// Attach stores metadata and a text preview for the file at path.
	Attach(ctx context.Context, projectID, path, uploadedBy string) (*domain.ProjectFile, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectFile, error)
	Delete(ctx context.Context, id string) error
}

// Workspace is what a user sees after signing in to one project.
type Workspace struct {
	UserID       string
	ProjectCount int
	Project      *domain.Project
	Ideas        []*domain.Idea
}

type WorkspaceService interface {
	// Open runs the sign-in flow: session check, profile fetch, project
	// load. Each step is timed on the shared counters.
	Open(ctx context.Context, userID, projectRef string) (*Workspace, error)
}
