package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"pkt.systems/pslog"

	"github.com/jask/teasheet/internal/config"
	"github.com/jask/teasheet/tui"
)

var (
	bgStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#45475a"))
	itemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closeLog, err := newLogger(cfg.Log.Path)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()

	edge, err := config.ParseEdge(cfg.Sheet.Edge)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	snaps, err := config.ParseSizes(cfg.Sheet.Snaps)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	opts := []tui.Option{
		tui.WithSnapSizes(snaps...),
		tui.WithEdge(edge),
		tui.WithTitle(cfg.Sheet.Title),
		tui.WithBarrierDismiss(cfg.Sheet.Barrier),
		tui.WithInitialSnapIndex(cfg.Sheet.InitialAt),
		tui.WithLogger(logger),
	}
	if cfg.Sheet.CellUnit > 0 {
		opts = append(opts, tui.WithCellUnit(cfg.Sheet.CellUnit))
	}
	if !cfg.Sheet.Handle {
		opts = append(opts, tui.WithoutHandle())
	}

	sh, err := tui.New(demoContent(), opts...)
	if err != nil {
		log.Fatalf("sheet: %v", err)
	}

	p := tea.NewProgram(app{sheet: sh},
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// app is the host model: it renders a plain background and composites
// the sheet over it, dropping the sheet once it dismisses.
type app struct {
	sheet  tui.Model
	width  int
	height int
	status string
}

func (a app) Init() tea.Cmd { return a.sheet.Init() }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		}
	case tui.SnappedMsg:
		a.status = fmt.Sprintf("snapped to %.0f points", msg.Height)
	case tui.WillDismissMsg:
		a.status = "dismissing"
	case tui.DismissedMsg:
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.sheet, cmd = a.sheet.Update(msg)
	return a, cmd
}

func (a app) View() string {
	if a.width == 0 || a.height == 0 {
		return ""
	}
	rows := make([]string, a.height)
	for i := range rows {
		rows[i] = bgStyle.Render(strings.Repeat("░", a.width))
	}
	rows[0] = dimStyle.Render(" drag the handle · shift+↑/↓ resize · esc dismiss · q quit")
	if a.status != "" {
		rows[1] = dimStyle.Render(" " + a.status)
	}
	return a.sheet.Overlay(strings.Join(rows, "\n"))
}

func demoContent() string {
	var b strings.Builder
	for i := 1; i <= 40; i++ {
		fmt.Fprintln(&b, itemStyle.Render(fmt.Sprintf("  %2d · sample row", i)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// newLogger builds a file-backed structured logger, or a discard logger
// when no path is configured. Gesture logs must never hit stdout while
// the program owns the terminal.
func newLogger(path string) (pslog.Logger, func(), error) {
	if path == "" {
		return pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured, NoColor: true}), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := pslog.NewWithOptions(f, pslog.Options{Mode: pslog.ModeStructured, NoColor: true})
	return logger, func() { f.Close() }, nil
}
