package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/paramsynth/internal/analysis"
	"github.com/san-kum/paramsynth/internal/params/interval"
	"github.com/san-kum/paramsynth/internal/storage"
)

const (
	stateList = iota
	stateRun
)

// Loader reads the result of a stored run.
type Loader func(runID string) (*storage.ResultFile, error)

// Browser is a Bubble Tea model over a list of runs.
type Browser struct {
	state  int
	cursor int
	runs   []storage.RunMetadata
	load   Loader
	result *storage.ResultFile
	err    error
	width  int
}

func NewBrowser(runs []storage.RunMetadata, load Loader) Browser {
	return Browser{runs: runs, load: load, width: 80}
}

func (m Browser) Init() tea.Cmd { return nil }

func (m Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Browser) handleKey(msg tea.KeyMsg) (Browser, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	switch m.state {
	case stateList:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.runs)-1 {
				m.cursor++
			}
		case "enter", " ":
			if len(m.runs) == 0 {
				return m, nil
			}
			m.result, m.err = m.load(m.runs[m.cursor].ID)
			m.state = stateRun
		}
	case stateRun:
		switch msg.String() {
		case "esc", "backspace", "h":
			m.state, m.result, m.err = stateList, nil, nil
		}
	}
	return m, nil
}

func (m Browser) View() string {
	if m.state == stateRun {
		return m.viewRun()
	}
	return m.viewList()
}

func (m Browser) viewList() string {
	var b strings.Builder
	b.WriteString("\n  " + Title.Render("PARAMSYNTH RUNS") + "\n\n")
	if len(m.runs) == 0 {
		b.WriteString("  " + Subtle.Render("no runs yet, try: paramsynth run ring small") + "\n")
	}
	for i, r := range m.runs {
		line := fmt.Sprintf("%-48s %-10s %3d comp  max %d", r.ID, r.Model, r.Components, r.MaxAttractors)
		if i == m.cursor {
			b.WriteString("  " + Selected.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("    " + Subtle.Render(line) + "\n")
		}
	}
	b.WriteString("\n  " + hints("j/k", "navigate", "enter", "open", "q", "quit") + "\n")
	return b.String()
}

func (m Browser) viewRun() string {
	meta := m.runs[m.cursor]
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(Panel.Render(RenderSummary(&meta)) + "\n\n")

	if m.err != nil {
		b.WriteString("  " + CountStyle(3).Render("error: "+m.err.Error()) + "\n")
	} else if m.result != nil {
		counts := m.result.Counts()
		sv := interval.NewSolver(meta.Low, meta.High)

		width := m.width - 4
		if width < 20 {
			width = 20
		}
		sweep := analysis.Sweep(counts, meta.Low, meta.High, width)
		strip := make([]int, len(sweep))
		for i, p := range sweep {
			strip[i] = p.Attractors
		}
		b.WriteString("  " + Strip(strip) + "\n")
		b.WriteString("  " + Separator(width) + "\n")
		for _, line := range strings.Split(RenderBands(analysis.Bands(sv, counts)), "\n") {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
		for _, line := range strings.Split(RenderComponents(m.result.Components, 10), "\n") {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n  " + hints("esc", "back", "q", "quit") + "\n")
	return b.String()
}

// RunBrowser starts the browser on the alternate screen.
func RunBrowser(runs []storage.RunMetadata, load Loader) error {
	_, err := tea.NewProgram(NewBrowser(runs, load), tea.WithAltScreen()).Run()
	return err
}
