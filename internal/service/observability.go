package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/prioritas/internal/perf"
)

// UseCaseEvent describes one finished service call.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver logs one line per use case. A nil logger yields a
// no-op observer.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger.With("component", "service")}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]slog.Attr, 0, 4+len(event.Fields))
	attrs = append(attrs,
		slog.String("use_case", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.Bool("success", event.Success),
	)
	for k, v := range event.Fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	level := slog.LevelInfo
	if event.Err != nil {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
		level = slog.LevelError
	}
	o.logger.LogAttrs(ctx, level, "service_use_case", attrs...)
}

// countingObserver feeds use-case durations into the perf counters under
// "usecase.<name>".
type countingObserver struct {
	counters *perf.Counters
}

func NewCountingObserver(c *perf.Counters) UseCaseObserver {
	return countingObserver{counters: c}
}

func (o countingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.counters.RecordOutcome("usecase."+event.Name, event.Duration, perf.OutcomeOf(event.Err))
}

type multiObserver []UseCaseObserver

// MultiObserver fans events out to every non-nil observer.
func MultiObserver(observers ...UseCaseObserver) UseCaseObserver {
	var out multiObserver
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return NoopUseCaseObserver{}
	}
	return out
}

func (m multiObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, o := range m {
		o.ObserveUseCase(ctx, event)
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	return MultiObserver(observers...)
}
