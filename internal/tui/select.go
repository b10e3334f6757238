// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultListWidth  = 64
	defaultListHeight = 16
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected an item.
	ActionSelected
	// ActionSkipped indicates the user skipped the selection.
	ActionSkipped
	// ActionStopped indicates the user stopped processing entirely.
	ActionStopped
)

// Template describes a post scaffold the user can pick from.
type Template struct {
	Key         string // stable identifier, also accepted by --template
	Name        string
	Description string
}

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *Template
}

type templateItem struct {
	tmpl Template
}

func (i templateItem) Title() string       { return i.tmpl.Name }
func (i templateItem) FilterValue() string { return i.tmpl.Name }
func (i templateItem) Description() string { return i.tmpl.Description }

type itemStyles struct {
	normal     lipgloss.Style
	selected   lipgloss.Style
	keyStyle   lipgloss.Style
	titleStyle lipgloss.Style
	descStyle  lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		keyStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")),
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		descStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
	}
}

type templateDelegate struct {
	styles itemStyles
}

func newDelegate() templateDelegate {
	return templateDelegate{styles: newItemStyles()}
}

func (d templateDelegate) Height() int                         { return 4 }
func (d templateDelegate) Spacing() int                        { return 1 }
func (d templateDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d templateDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	tmpl, ok := item.(templateItem)
	if !ok {
		return
	}

	keyLine := d.styles.keyStyle.Render(fmt.Sprintf("[%s]", strings.ToUpper(tmpl.tmpl.Key)))
	titleLine := d.styles.titleStyle.Render(tmpl.tmpl.Name)
	descLine := d.styles.descStyle.Render(truncate(tmpl.tmpl.Description, m.Width()-4))

	content := lipgloss.JoinVertical(lipgloss.Left, keyLine, titleLine, descLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type model struct {
	list      list.Model
	postTitle string
	result    SelectionResult
}

func newModel(postTitle string, items []templateItem) *model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	delegate := newDelegate()
	l := list.New(listItems, delegate, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:      l,
		postTitle: postTitle,
		result: SelectionResult{
			Action: ActionNone,
		},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(templateItem); ok {
				tmpl := selected.tmpl
				m.result = SelectionResult{
					Action:    ActionSelected,
					Selection: &tmpl,
				}
				return m, tea.Quit
			}
		case "s", "esc":
			m.result = SelectionResult{Action: ActionSkipped}
			return m, tea.Quit
		case "ctrl+c", "q":
			m.result = SelectionResult{Action: ActionStopped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render(fmt.Sprintf("Choose a template for: %s", m.postTitle))
	listView := m.list.View()
	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		skipButtonStyle.Render(" Skip "),
		lipgloss.NewStyle().Padding(0, 2).Render(""),
		stopButtonStyle.Render(" Stop "),
	)
	help := helpStyle.Render("Up/Down navigate | Enter select | s skip | q stop")
	return lipgloss.JoinVertical(lipgloss.Left, header, listView, buttons, help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	skipButtonStyle = lipgloss.NewStyle().
			MarginTop(1).
			Padding(0, 2).
			Background(lipgloss.Color("178")).
			Foreground(lipgloss.Color("0")).
			Bold(true)

	stopButtonStyle = lipgloss.NewStyle().
			MarginTop(1).
			Padding(0, 2).
			Background(lipgloss.Color("161")).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// SelectTemplate presents an interactive template picker for a new post.
// An empty template list skips straight through without opening the UI.
func SelectTemplate(postTitle string, templates []Template) (SelectionResult, error) {
	if len(templates) == 0 {
		return SelectionResult{Action: ActionSkipped}, nil
	}

	items := make([]templateItem, len(templates))
	for i, tmpl := range templates {
		items[i] = templateItem{tmpl: tmpl}
	}
	m := newModel(postTitle, items)
	finalModel, err := runProgram(m)
	if err != nil {
		return SelectionResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}

	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
