package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/prioritas/internal/cli"
	"github.com/alexanderramin/prioritas/internal/db"
	"github.com/alexanderramin/prioritas/internal/intelligence"
	"github.com/alexanderramin/prioritas/internal/llm"
	"github.com/alexanderramin/prioritas/internal/perf"
	"github.com/alexanderramin/prioritas/internal/repository"
	"github.com/alexanderramin/prioritas/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Fix the problem above and run the command again.")
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal; a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	dbPath := os.Getenv("PRIORITAS_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".prioritas", "prioritas.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logger := newLogger(os.Getenv("PRIORITAS_LOG_FORMAT"))
	var observers []service.UseCaseObserver
	if envBool("PRIORITAS_LOG_USE_CASES") {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}

	counters := perf.NewCounters(envBool("PRIORITAS_PERF"), perf.DefaultCapacity)
	observers = append(observers, service.NewCountingObserver(counters))
	observer := service.MultiObserver(observers...)
	auth := perf.NewAuthMonitor(counters)

	projectRepo := repository.NewSQLiteProjectRepo(database)
	ideaRepo := repository.NewSQLiteIdeaRepo(database)
	insightRepo := repository.NewSQLiteInsightRepo(database)
	fileRepo := repository.NewSQLiteProjectFileRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	llmCfg := llm.LoadConfig()
	var client llm.LLMClient
	if llmCfg.Enabled {
		var callObserver llm.Observer
		if llmCfg.LogCalls {
			callObserver = llm.NewLogObserver(logger.With("component", "llm"))
		}
		client = llm.NewOllamaClient(llmCfg, callObserver)
	}
	generator := intelligence.NewInsightsGenerator(client, llmCfg)

	userID := currentUser()
	projects := service.NewProjectService(projectRepo)
	app := &cli.App{
		Projects:  projects,
		Ideas:     service.NewIdeaService(ideaRepo, projectRepo, perf.NewMatrixMonitor()),
		Transfer:  service.NewTransferService(projectRepo, ideaRepo, uow, counters, observer),
		Insights:  service.NewInsightService(projectRepo, ideaRepo, insightRepo, fileRepo, generator, counters, observer),
		Files:     service.NewFileService(fileRepo, projectRepo),
		Workspace: service.NewWorkspaceService(database, projects, ideaRepo, auth),
		Counters:  counters,
		Auth:      auth,
		UserID:    userID,
		IsInteractive: func() bool {
			in, out := os.Stdin.Fd(), os.Stdout.Fd()
			return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
				(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
		},
	}

	return cli.NewRootCmd(app).Execute()
}

// newLogger writes to stderr so command output on stdout stays clean.
func newLogger(format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func envBool(name string) bool {
	v, _ := strconv.ParseBool(os.Getenv(name))
	return v
}

// currentUser prefers PRIORITAS_USER and falls back to the OS account.
func currentUser() string {
	if id := strings.TrimSpace(os.Getenv("PRIORITAS_USER")); id != "" {
		return id
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
