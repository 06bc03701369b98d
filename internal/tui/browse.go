// Package tui provides the interactive terminal result browser.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rkoski/bookdex/internal/book"
	"github.com/rkoski/bookdex/internal/search"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// BrowseAction represents the user's action in the result browser.
type BrowseAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone BrowseAction = iota
	// ActionOpened indicates the user opened a book's detail view.
	ActionOpened
	// ActionFavorited indicates the user toggled a favorite.
	ActionFavorited
	// ActionQuit indicates the user left the browser.
	ActionQuit
)

// BrowseResult holds the outcome of one browse interaction.
type BrowseResult struct {
	Action    BrowseAction
	Selection *book.Book
}

type bookItem struct {
	book.Book
}

func (i bookItem) Title() string {
	return fmt.Sprintf("%s (%s)", i.Book.Title, i.Year)
}

func (i bookItem) FilterValue() string {
	return i.Book.Title
}

func (i bookItem) Description() string {
	return i.Book.Description
}

type itemStyles struct {
	normal        lipgloss.Style
	selected      lipgloss.Style
	titleStyle    lipgloss.Style
	ratingStyle   lipgloss.Style
	metadataStyle lipgloss.Style
	summaryStyle  lipgloss.Style
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
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		ratingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
		summaryStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
	}
}

type bookDelegate struct {
	styles itemStyles
}

func newDelegate() bookDelegate {
	return bookDelegate{styles: newItemStyles()}
}

func (d bookDelegate) Height() int                         { return 5 }
func (d bookDelegate) Spacing() int                        { return 1 }
func (d bookDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d bookDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	bi, ok := item.(bookItem)
	if !ok {
		return
	}

	b := bi.Book

	titleLine := d.styles.titleStyle.Render(fmt.Sprintf("%s (%s)", b.Title, b.Year))
	ratingLine := d.styles.ratingStyle.Render(formatRating(b))
	metadataLine := d.styles.metadataStyle.Render(formatMetadata(b, m.Width()-4))
	summaryLine := d.styles.summaryStyle.Render(truncate(b.Description, m.Width()-4))

	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, ratingLine, metadataLine, summaryLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

// FetchFunc runs a fresh free-text search. The browser debounces rapid
// keystrokes so only the last composed term within the quiet period fires.
type FetchFunc func(term string) (search.ResultSet, error)

// searchDoneMsg carries a debounced search result back into the program.
type searchDoneMsg struct {
	rs  search.ResultSet
	err error
}

type model struct {
	list     list.Model
	input    textinput.Model
	state    *search.State
	heading  string
	result   BrowseResult
	fetch    FetchFunc
	deb      *search.Debouncer
	results  chan searchDoneMsg
	fetchErr string
}

func newModel(heading string, state *search.State, fetch FetchFunc) *model {
	delegate := newDelegate()
	l := list.New(pageItems(state), delegate, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	input := textinput.New()
	input.Placeholder = "type to search"
	input.CharLimit = 80
	input.Width = 40

	return &model{
		list:    l,
		input:   input,
		state:   state,
		heading: heading,
		result:  BrowseResult{Action: ActionNone},
		fetch:   fetch,
		deb:     search.NewDebouncer(search.DefaultDebounce),
		results: make(chan searchDoneMsg, 1),
	}
}

func pageItems(state *search.State) []list.Item {
	page := state.Page()
	items := make([]list.Item, len(page))
	for i, b := range page {
		items[i] = bookItem{Book: b}
	}
	return items
}

func (m *model) Init() tea.Cmd {
	if m.fetch == nil {
		return nil
	}
	return m.waitForSearch()
}

// waitForSearch relays the next debounced search result into the program.
// Exactly one listener is in flight at a time; it is re-armed after every
// delivered result.
func (m *model) waitForSearch() tea.Cmd {
	return func() tea.Msg { return <-m.results }
}

// scheduleSearch debounces a keystroke. Only the last term within the
// quiet period reaches the fetcher.
func (m *model) scheduleSearch(term string) {
	m.deb.Trigger(func() {
		rs, err := m.fetch(term)
		m.results <- searchDoneMsg{rs: rs, err: err}
	})
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDoneMsg:
		if msg.err != nil {
			m.fetchErr = msg.err.Error()
			return m, m.waitForSearch()
		}
		m.fetchErr = ""
		m.state.Replace(msg.rs)
		m.heading = "Results for: " + msg.rs.Query
		return m, tea.Batch(m.list.SetItems(pageItems(m.state)), m.waitForSearch())
	case tea.KeyMsg:
		if m.input.Focused() {
			switch msg.String() {
			case "esc", "enter":
				m.input.Blur()
				return m, nil
			}
			before := m.input.Value()
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			if m.input.Value() != before {
				m.scheduleSearch(m.input.Value())
			}
			return m, cmd
		}
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(bookItem); ok {
				b := selected.Book
				m.result = BrowseResult{Action: ActionOpened, Selection: &b}
				return m, tea.Quit
			}
		case "f":
			if selected, ok := m.list.SelectedItem().(bookItem); ok {
				b := selected.Book
				m.result = BrowseResult{Action: ActionFavorited, Selection: &b}
				return m, tea.Quit
			}
		case "right", "n":
			if m.state.Next() {
				return m, m.list.SetItems(pageItems(m.state))
			}
		case "left", "p":
			if m.state.Prev() {
				return m, m.list.SetItems(pageItems(m.state))
			}
		case "/":
			if m.fetch != nil {
				m.input.Focus()
				return m, textinput.Blink
			}
		case "ctrl+c", "q", "esc":
			m.deb.Stop()
			m.result = BrowseResult{Action: ActionQuit}
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
	header := headerStyle.Render(m.heading)

	var searchLine string
	if m.fetch != nil {
		searchLine = searchStyle.Render("search: " + m.input.View())
	}

	var notice string
	switch {
	case m.fetchErr != "":
		notice = noticeStyle.Render(m.fetchErr)
	case m.state.Notice() != "":
		notice = noticeStyle.Render(m.state.Notice())
	}

	pages := pageStyle.Render(fmt.Sprintf("Page %d/%d", m.state.CurrentPage(), m.state.PageCount()))
	help := helpStyle.Render("Up/Down navigate | Left/Right page | Enter open | f favorite | / search | q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, searchLine, notice, m.list.View(), pages, help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")).
			Italic(true)

	pageStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("110"))

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))

	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("110"))
)

// Browse presents the paged result browser for the current result state.
// A non-nil fetch enables search-as-you-type: "/" focuses the input and
// each debounced term replaces the result set in place.
func Browse(heading string, state *search.State, fetch FetchFunc) (BrowseResult, error) {
	m := newModel(heading, state, fetch)
	finalModel, err := runProgram(m)
	if err != nil {
		return BrowseResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}
	return BrowseResult{}, fmt.Errorf("unexpected program result")
}

func formatRating(b book.Book) string {
	if !b.HasRating() {
		return "unrated"
	}
	return fmt.Sprintf("%.1f/5", b.Rating)
}

func formatMetadata(b book.Book, availableWidth int) string {
	parts := []string{b.Author, b.Genre}
	if b.Pages > 0 {
		parts = append(parts, fmt.Sprintf("%dp", b.Pages))
	}
	if b.Price > 0 {
		parts = append(parts, fmt.Sprintf("$%.2f", b.Price))
	}

	metadata := strings.Join(parts, " | ")
	return truncate(metadata, availableWidth)
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
