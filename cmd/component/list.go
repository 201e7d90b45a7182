package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type ListItem struct {
	ID              string
	TitleText       string
	DescriptionText string
}

var _ list.DefaultItem = ListItem{}

func (i ListItem) Title() string       { return i.TitleText }
func (i ListItem) Description() string { return i.DescriptionText }
func (i ListItem) FilterValue() string {
	return strings.Join([]string{i.TitleText, i.DescriptionText}, " ")
}

// ListModel lets the user pick one item. Selected is empty when the user
// quits without choosing.
type ListModel struct {
	list     list.Model
	selected string
	export   bool
}

var (
	selectBinding = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show"))
	exportBinding = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export"))
)

func NewListModel(items []ListItem, title string) ListModel {
	listItems := make([]list.Item, 0, len(items))
	for _, i := range items {
		listItems = append(listItems, i)
	}
	m := ListModel{
		list: list.New(listItems, list.NewDefaultDelegate(), 0, 0),
	}
	m.list.Title = title

	m.list.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{selectBinding, exportBinding}
	}
	m.list.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{selectBinding, exportBinding}
	}
	return m
}

func (m ListModel) Init() tea.Cmd {
	return nil
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// keys typed into the filter belong to the filter
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, selectBinding), key.Matches(msg, exportBinding):
			if item, ok := m.list.SelectedItem().(ListItem); ok {
				m.selected = item.ID
				m.export = key.Matches(msg, exportBinding)
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m ListModel) View() string {
	return docStyle.Render(m.list.View())
}

// Selected returns the chosen item id and whether the user asked to export it.
func (m ListModel) Selected() (string, bool) {
	return m.selected, m.export
}
