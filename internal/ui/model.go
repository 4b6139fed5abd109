package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"moviecompare/internal/autocomplete"
	"moviecompare/internal/compare"
	"moviecompare/internal/config"
	"moviecompare/internal/domain"
	"moviecompare/internal/eventbus"
	"moviecompare/internal/ui/views"
)

// headerHeight is the number of rows above the two panels
const headerHeight = 2

// panel is one side of the comparison
type panel struct {
	search *autocomplete.Model[domain.Movie]
	// seq numbers the selections of this side; events for older ones are dropped.
	seq     int
	loading bool
	err     string
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config

	styles    *views.Styles
	summaries *views.SummaryRenderer
	helpText  *HelpRenderer
	keys      keyMap
	help      help.Model

	dispatcher *autocomplete.Dispatcher
	panels     [2]*panel
	pair       compare.Pair
	outcomes   []compare.Outcome
	focus      domain.Side

	tutorial  bool
	status    string
	statusErr bool

	width       int
	height      int
	inPagerMode bool // tracks if we're currently in pager mode

	// Program reference for terminal management
	program *tea.Program
	pager   *Pager
}

// NewModel creates a new UI model. search backs both search boxes.
func NewModel(bus eventbus.EventBus, cfg *config.Config, search autocomplete.FetchFunc[domain.Movie]) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	styles := views.NewStyles()

	m := &Model{
		bus:        bus,
		config:     cfg,
		styles:     styles,
		summaries:  views.NewSummaryRenderer(styles),
		helpText:   NewHelpRenderer(),
		keys:       newKeyMap(),
		help:       help.New(),
		dispatcher: autocomplete.NewDispatcher(),
		tutorial:   cfg.UISettings.ShowTutorial,
	}

	options := views.NewMovieOptionRenderer(styles)
	for _, side := range domain.Sides {
		m.panels[side] = &panel{
			search: autocomplete.New(autocomplete.Config[domain.Movie]{
				Host:         autocomplete.Rect{Y: headerHeight},
				RenderOption: options.Render,
				InputValue:   views.MovieTitle,
				OnOptionSelect: func(movie domain.Movie) tea.Cmd {
					return m.selectMovie(side, movie)
				},
				FetchData: search,
				OnError: func(query string, err error) {
					m.setError(fmt.Sprintf("Search for %q failed: %v", query, err))
				},
				Placeholder: cfg.Search.Placeholder,
				Delay:       cfg.Search.Debounce(),
				Dispatcher:  m.dispatcher,
			}),
		}
	}
	m.panels[domain.Left].search.Focus()

	return m
}

// SetSender routes the search boxes' debounce timers into the event loop
func (m *Model) SetSender(send func(tea.Msg)) {
	for _, p := range m.panels {
		p.search.SetSender(send)
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPager(p)
	m.SetSender(p.Send)
}

// Close releases both search boxes
func (m *Model) Close() {
	for _, p := range m.panels {
		p.search.Close()
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case pagerMsg:
		m.inPagerMode = false
		if msg.err != nil {
			log.Error("pager failed", "err", msg.err)
			m.setError(fmt.Sprintf("Pager failed: %v", msg.err))
		}
		return m, nil
	}

	// Debounce fires, fetch results and cursor blinks
	var cmds []tea.Cmd
	for _, p := range m.panels {
		cmds = append(cmds, p.search.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

// layout splits the width between the two panels
func (m *Model) layout() {
	colW := m.width / 2
	for _, side := range domain.Sides {
		m.panels[side].search.SetHost(autocomplete.Rect{
			X: int(side) * colW,
			Y: headerHeight,
			W: max(colW-2, 1),
		})
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Dismiss):
		for _, p := range m.panels {
			p.search.Dismiss()
		}
		return nil

	case key.Matches(msg, m.keys.NextPanel), key.Matches(msg, m.keys.PrevPanel):
		return m.setFocus(m.focus.Other())

	case key.Matches(msg, m.keys.Details):
		s, ok := m.pair.Get(m.focus)
		if !ok {
			m.setStatus("Pick a movie first")
			return nil
		}
		return m.showPager(views.RenderText(s))

	case key.Matches(msg, m.keys.Help):
		return m.showPager(m.helpText.RenderHelpContent())
	}

	return m.panels[m.focus].search.Update(msg)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	// Close every dropdown the click landed outside of
	m.dispatcher.Click(msg.X, msg.Y)

	var cmds []tea.Cmd
	for _, side := range domain.Sides {
		search := m.panels[side].search
		if !search.Contains(msg.X, msg.Y) {
			continue
		}
		if side != m.focus {
			cmds = append(cmds, m.setFocus(side))
		}
		cmds = append(cmds, search.Click(msg.X, msg.Y))
	}
	return tea.Batch(cmds...)
}

func (m *Model) setFocus(side domain.Side) tea.Cmd {
	m.panels[m.focus].search.Blur()
	m.focus = side
	return m.panels[side].search.Focus()
}

// selectMovie starts loading the details of a picked search result
func (m *Model) selectMovie(side domain.Side, movie domain.Movie) tea.Cmd {
	p := m.panels[side]
	p.seq++
	p.loading = true
	p.err = ""
	m.tutorial = false
	m.setStatus("Loading " + movie.Title + "...")

	event := eventbus.MovieSelectedEvent{Side: side, Seq: p.seq, Movie: movie}
	log.Info("movie selected", "side", side, "seq", p.seq, "title", movie.Title, "imdbID", movie.IMDbID)

	bus := m.bus
	return func() tea.Msg {
		bus.Publish(event)
		return nil
	}
}

// handleEvent processes domain events
func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.DetailsLoadedEvent:
		p := m.panels[e.Side]
		if e.Seq != p.seq {
			log.Debug("dropping details of an older selection", "side", e.Side, "seq", e.Seq, "latest", p.seq)
			return
		}
		p.loading = false
		p.err = ""
		m.pair.Set(e.Side, compare.Summarize(e.Detail))
		m.outcomes = m.pair.Compare()
		m.setStatus("")

	case eventbus.ErrorEvent:
		if e.Seq > 0 {
			p := m.panels[e.Side]
			if e.Seq != p.seq {
				return
			}
			p.loading = false
			p.err = e.Message
		}
		msg := e.Message
		if e.Err != nil {
			msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		m.setError(msg)
	}
}

// showPager returns a command that shows content using the ov pager
func (m *Model) showPager(content string) tea.Cmd {
	if m.program == nil {
		m.setError("Pager unavailable")
		return nil
	}
	program, pager := m.program, m.pager
	return func() tea.Msg {
		// Send pause message to stop rendering
		program.Send(pauseRenderingMsg{})
		err := pager.Show(content)
		return pagerMsg{err: err}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Movie Compare"),
		"",
	)

	colW := m.width / 2
	columns := make([]string, len(m.panels))
	for _, side := range domain.Sides {
		columns[side] = lipgloss.NewStyle().Width(colW).Render(m.renderPanel(side, colW-2))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	rows := []string{header, body}
	if m.tutorial {
		rows = append(rows, "", m.styles.Tutorial.Render(
			"Search for a movie on both sides.\nWe will tell you which is best."))
	}
	rows = append(rows, "", m.renderStatus(), m.styles.Help.Render(m.help.View(m.keys)))

	return strings.Join(rows, "\n")
}

func (m *Model) renderPanel(side domain.Side, width int) string {
	p := m.panels[side]
	rows := []string{p.search.View()}

	if p.loading {
		rows = append(rows, m.styles.Loading.Render("Loading..."))
	}
	if p.err != "" {
		rows = append(rows, m.styles.StatusError.Render(p.err))
	}
	if s, ok := m.pair.Get(side); ok {
		rows = append(rows, "", m.summaries.Render(s, side, m.outcomes, width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.styles.StatusError.Render(m.status)
	}
	return m.styles.Status.Render(m.status)
}
