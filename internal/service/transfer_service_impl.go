package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/prioritas/internal/db"
	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/ideaio"
	"github.com/alexanderramin/prioritas/internal/perf"
	"github.com/alexanderramin/prioritas/internal/repository"
	"github.com/google/uuid"
)

// Counter channels written by the transfer service.
const (
	ChannelImportCSV  = "import.csv"
	ChannelExportCSV  = "export.csv"
	ChannelExportXLSX = "export.xlsx"
)

type transferService struct {
	projects repository.ProjectRepo
	ideas    repository.IdeaRepo
	uow      db.UnitOfWork
	counters *perf.Counters
	observer UseCaseObserver
	now      func() time.Time
}

// NewTransferService wires CSV and XLSX transfer.
func NewTransferService(
	projects repository.ProjectRepo,
	ideas repository.IdeaRepo,
	uow db.UnitOfWork,
	counters *perf.Counters,
	observers ...UseCaseObserver,
) TransferService {
	return &transferService{
		projects: projects,
		ideas:    ideas,
		uow:      uow,
		counters: counters,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *transferService) ImportCSV(ctx context.Context, projectID, fileName, content, userID string) (result *ImportResult, err error) {
	timer := s.counters.Start(ChannelImportCSV)
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID, "file": fileName}
	defer func() {
		_ = timer.Finish(err)
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name: "import-csv", StartedAt: startedAt, Duration: time.Since(startedAt),
			Success: err == nil, Err: err, Fields: fields,
		})
	}()

	if err = ideaio.ValidateFile(fileName, content); err != nil {
		return nil, err
	}
	parsed := ideaio.ParseCSV(content, userID)
	fields["rows"] = len(parsed)
	result = &ImportResult{ProjectID: projectID}

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID); err != nil {
			return err
		}
		txIdeas := repository.NewSQLiteIdeaRepo(tx)
		for i := range parsed {
			idea := parsed[i]
			idea.ID = uuid.New().String()
			idea.ProjectID = projectID
			idea.CreatedAt = now
			idea.UpdatedAt = now
			if strings.TrimSpace(idea.Content) == "" {
				idea.Content = domain.UntitledIdea
				result.Untitled++
			}
			if err := txIdeas.Create(ctx, &idea); err != nil {
				return fmt.Errorf("creating idea %q: %w", idea.Content, err)
			}
			result.Created++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", fileName, err)
	}
	return result, nil
}

func (s *transferService) ExportCSV(ctx context.Context, projectID string) (result *ExportResult, err error) {
	timer := s.counters.Start(ChannelExportCSV)
	defer func() { _ = timer.Finish(err) }()

	ideas, err := s.projectIdeas(ctx, projectID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err = ideaio.WriteCSV(&buf, ideas); err != nil {
		return nil, fmt.Errorf("writing csv: %w", err)
	}
	return &ExportResult{Filename: ideaio.ExportFilename(s.now()), Data: buf.Bytes()}, nil
}

func (s *transferService) ExportXLSX(ctx context.Context, projectID string) (result *ExportResult, err error) {
	timer := s.counters.Start(ChannelExportXLSX)
	defer func() { _ = timer.Finish(err) }()

	ideas, err := s.projectIdeas(ctx, projectID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err = ideaio.WriteXLSX(&buf, ideas); err != nil {
		return nil, fmt.Errorf("writing xlsx: %w", err)
	}
	return &ExportResult{Filename: ideaio.XLSXFilename(s.now()), Data: buf.Bytes()}, nil
}

func (s *transferService) projectIdeas(ctx context.Context, projectID string) ([]*domain.Idea, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.ideas.ListByProject(ctx, projectID)
}
