package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nugraph/nugraph/pkg/deps/repofile"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// packagePickerModel is the bubbletea model for interactive package selection.
type packagePickerModel struct {
	repo     *repofile.Repository
	packages []repofile.ID
	cursor   int
	offset   int
	height   int
	selected repofile.ID
}

// newPackagePicker creates a picker over the repository's sorted packages.
func newPackagePicker(repo *repofile.Repository) packagePickerModel {
	return packagePickerModel{
		repo:     repo,
		packages: repo.Packages(),
		height:   15,
	}
}

func (m packagePickerModel) Init() tea.Cmd {
	return nil
}

func (m packagePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.packages)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			if len(m.packages) > 0 {
				m.selected = m.packages[m.cursor]
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 5
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m packagePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Package"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ resolve  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.packages) {
		end = len(m.packages)
	}

	for i := m.offset; i < end; i++ {
		id := m.packages[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-20s %s", cursor, id, listDimStyle.Render(packageNote(m.repo, id)))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.packages))))

	return b.String()
}

// packageNote annotates a package with its direct dependency count.
func packageNote(repo *repofile.Repository, id repofile.ID) string {
	deps, _ := repo.DirectDependenciesOf(id)
	if len(deps) == 0 {
		return "leaf"
	}
	if len(deps) == 1 {
		return "1 dep"
	}
	return fmt.Sprintf("%d deps", len(deps))
}

// pickPackage runs the interactive picker and returns the chosen package,
// or "" when the user quit without selecting.
func pickPackage(repo *repofile.Repository) (repofile.ID, error) {
	final, err := tea.NewProgram(newPackagePicker(repo)).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(packagePickerModel)
	if !ok {
		return "", nil
	}
	return m.selected, nil
}
