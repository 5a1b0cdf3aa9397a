package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/prioritas/internal/cli/formatter"
	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var errGenerationCancelled = errors.New("insight generation cancelled")

type generateFunc func(ctx context.Context) (*domain.InsightRecord, error)

type generatedMsg struct {
	rec *domain.InsightRecord
	err error
}

// progressModel shows a spinner while a report is generated. Ctrl+C, Esc
// or q cancel the generation's context.
type progressModel struct {
	spinner spinner.Model
	label   string
	started time.Time
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	run    generateFunc

	rec       *domain.InsightRecord
	err       error
	done      bool
	cancelled bool
}

func newProgressModel(parent context.Context, label string, run generateFunc) *progressModel {
	ctx, cancel := context.WithCancel(parent)
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(formatter.StyleHeader),
	)
	return &progressModel{
		spinner: s,
		label:   label,
		started: time.Now(),
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
		run:     run,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.generate)
}

func (m *progressModel) generate() tea.Msg {
	rec, err := m.run(m.ctx)
	return generatedMsg{rec: rec, err: err}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			m.cancel()
			return m, tea.Quit
		}
	case generatedMsg:
		m.done = true
		m.rec, m.err = msg.rec, msg.err
		m.cancel()
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	elapsed := m.now().Sub(m.started).Round(time.Second)
	return fmt.Sprintf("%s %s %s\n%s\n", m.spinner.View(), m.label,
		formatter.Dim(elapsed.String()), formatter.Dim("esc to cancel"))
}

// result is what the command reports once the view has closed.
func (m *progressModel) result() (*domain.InsightRecord, error) {
	switch {
	case m.cancelled && !m.done:
		return nil, errGenerationCancelled
	case m.err != nil:
		return nil, m.err
	default:
		return m.rec, nil
	}
}
