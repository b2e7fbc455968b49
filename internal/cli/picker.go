package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FileListModel - Interactive document selection
// =============================================================================

// FileListModel is the bubbletea model for picking an input document when
// a command is invoked without a file argument.
type FileListModel struct {
	Files    []string
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewFileListModel creates a file list model over the given paths.
func NewFileListModel(files []string) FileListModel {
	return FileListModel{
		Files:  files,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m FileListModel) Init() tea.Cmd {
	return nil
}

func (m FileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Files[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FileListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Document"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Files) {
		end = len(m.Files)
	}

	for i := m.Offset; i < end; i++ {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(cursor + style.Render(m.Files[i]) + "\n")
	}

	if len(m.Files) > m.Height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%d/%d", m.Cursor+1, len(m.Files))))
		b.WriteString("\n")
	}

	return b.String()
}

// pickFile runs the interactive picker over the SBGN-ML documents found in
// dir. It fails when the directory has none.
func pickFile(dir string) (string, error) {
	files, err := listDocuments(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no .sbgn or .xml files in %s", dir)
	}

	final, err := tea.NewProgram(NewFileListModel(files)).Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}

	m, ok := final.(FileListModel)
	if !ok || m.Selected == "" {
		return "", fmt.Errorf("no document selected")
	}
	return filepath.Join(dir, m.Selected), nil
}

// listDocuments returns the SBGN-ML candidates in dir, sorted by name.
func listDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".sbgn", ".xml":
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
