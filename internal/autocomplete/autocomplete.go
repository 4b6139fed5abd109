// Package autocomplete provides a search box with a debounced remote lookup
// and a clickable dropdown of results, as a Bubble Tea component.
//
// The widget renders a label, a text input and, while results are shown, a
// bordered dropdown holding one row block per result. Typing restarts a quiet
// period; when it ends the current input text is handed to the configured
// fetch function and the results replace the dropdown content. Clicking a
// result closes the dropdown, writes the result's text into the input and
// calls the selection callback. Clicks outside the widget close the dropdown
// through a Dispatcher.
package autocomplete

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"moviecompare/internal/debounce"
)

// DefaultDelay is the quiet period between the last keystroke and the lookup.
const DefaultDelay = 500 * time.Millisecond

// DefaultLabel is rendered above the input when Config.Label is empty.
const DefaultLabel = "Search"

// labelRows is the label line plus the input line.
const labelRows = 2

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// FetchFunc looks up the items matching query.
type FetchFunc[T any] func(ctx context.Context, query string) ([]T, error)

// Config carries the collaborator hooks of one widget. It is fixed once the
// widget is created, apart from the host which follows terminal resizes.
type Config[T any] struct {
	// Host is the region the widget renders into. A non-positive H means the
	// host grows with the rendered content.
	Host Rect

	// RenderOption returns the markup of one result row block.
	RenderOption func(item T) string
	// OnOptionSelect is called once per selection, after the input has been
	// updated and the dropdown closed.
	OnOptionSelect func(item T) tea.Cmd
	// InputValue returns the text written into the input on selection.
	InputValue func(item T) string
	// FetchData performs the search.
	FetchData FetchFunc[T]
	// OnError is called when FetchData fails. The dropdown keeps its state.
	OnError func(query string, err error)

	Label       string
	Placeholder string
	Delay       time.Duration
	Dispatcher  *Dispatcher
}

// Styles holds the lipgloss styles of the widget
type Styles struct {
	Label    lipgloss.Style
	Error    lipgloss.Style
	Dropdown lipgloss.Style
}

// DefaultStyles returns the styles used by New.
func DefaultStyles() Styles {
	return Styles{
		Label: lipgloss.NewStyle().Bold(true),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Dropdown: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")),
	}
}

// fireMsg is sent by the debouncer when the quiet period ends.
type fireMsg struct {
	id int
}

// resultMsg carries the outcome of one fetch cycle.
type resultMsg[T any] struct {
	id    int
	seq   uint64
	query string
	items []T
	err   error
}

// Model is one mounted autocomplete widget. All methods except the debouncer
// callback run on the Bubble Tea event loop.
type Model[T any] struct {
	Styles Styles

	id    int
	cfg   Config[T]
	host  Rect
	input textinput.Model

	debouncer  *debounce.Debouncer[struct{}]
	send       func(tea.Msg)
	unregister func()

	ctx    context.Context
	cancel context.CancelFunc

	// issued is the generation of the most recent fetch; only its result applies.
	issued  uint64
	items   []T
	options []string
	open    bool
	err     error
}

// New creates a widget and registers it with its dispatcher.
func New[T any](cfg Config[T]) *Model[T] {
	if cfg.Label == "" {
		cfg.Label = DefaultLabel
	}
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.Dispatcher == nil {
		cfg.Dispatcher = DefaultDispatcher
	}
	if cfg.RenderOption == nil {
		cfg.RenderOption = func(item T) string { return fmt.Sprint(item) }
	}
	if cfg.InputValue == nil {
		cfg.InputValue = func(item T) string { return fmt.Sprint(item) }
	}

	ti := textinput.New()
	ti.Placeholder = cfg.Placeholder
	ti.Prompt = "> "

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model[T]{
		Styles: DefaultStyles(),
		id:     nextID(),
		cfg:    cfg,
		input:  ti,
		ctx:    ctx,
		cancel: cancel,
	}
	m.debouncer = debounce.New(func(struct{}) { m.fire() }, cfg.Delay)
	m.SetHost(cfg.Host)
	m.unregister = cfg.Dispatcher.Register(m)
	return m
}

// SetSender sets how the debouncer re-enters the event loop, normally
// (*tea.Program).Send. It must be called before the program starts.
func (m *Model[T]) SetSender(send func(tea.Msg)) {
	m.send = send
}

func (m *Model[T]) fire() {
	if m.send == nil {
		log.Debug("autocomplete: debounce fired without sender", "widget", m.id)
		return
	}
	m.send(fireMsg{id: m.id})
}

// SetHost moves the widget to a new region.
func (m *Model[T]) SetHost(r Rect) {
	m.host = r
	w := r.W - lipgloss.Width(m.input.Prompt) - 1
	if w < 1 {
		w = 0
	}
	m.input.Width = w
}

// Bounds returns the region currently covered by the widget.
func (m *Model[T]) Bounds() Rect {
	r := m.host
	if r.H <= 0 {
		r.H = m.height()
	}
	return r
}

// Contains reports whether (x, y) lies inside the widget's host.
func (m *Model[T]) Contains(x, y int) bool {
	return m.Bounds().Contains(x, y)
}

// Dismiss closes the dropdown.
func (m *Model[T]) Dismiss() {
	m.open = false
}

// Close releases the widget: it leaves its dispatcher, drops a pending
// lookup and cancels the context of the fetches in flight.
func (m *Model[T]) Close() {
	if m.unregister != nil {
		m.unregister()
	}
	m.debouncer.Stop()
	m.cancel()
}

// Focus focuses the text input.
func (m *Model[T]) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes focus from the text input.
func (m *Model[T]) Blur() {
	m.input.Blur()
}

// Focused reports whether the text input has focus.
func (m *Model[T]) Focused() bool {
	return m.input.Focused()
}

// Value returns the input text.
func (m *Model[T]) Value() string {
	return m.input.Value()
}

// Open reports whether the dropdown is shown.
func (m *Model[T]) Open() bool {
	return m.open
}

// Options returns the rendered markup of the current result list.
func (m *Model[T]) Options() []string {
	return append([]string(nil), m.options...)
}

// Items returns the current result list.
func (m *Model[T]) Items() []T {
	return append([]T(nil), m.items...)
}

// Err returns the error of the last fetch, or nil if it succeeded.
func (m *Model[T]) Err() error {
	return m.err
}

// Update handles key input, debounce fires and fetch results.
func (m *Model[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.input.Focused() {
			return nil
		}
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.debouncer.Trigger(struct{}{})
		}
		return cmd

	case fireMsg:
		if msg.id != m.id {
			return nil
		}
		return m.fetch()

	case resultMsg[T]:
		if msg.id != m.id {
			return nil
		}
		m.apply(msg)
		return nil
	}

	// Cursor blinks and other input internals.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// fetch starts a fetch cycle for the current input text.
func (m *Model[T]) fetch() tea.Cmd {
	m.issued++
	msg := resultMsg[T]{id: m.id, seq: m.issued, query: m.input.Value()}
	fetch := m.cfg.FetchData
	ctx := m.ctx

	return func() tea.Msg {
		if fetch != nil {
			msg.items, msg.err = fetch(ctx, msg.query)
		}
		return msg
	}
}

func (m *Model[T]) apply(msg resultMsg[T]) {
	if msg.seq != m.issued {
		log.Debug("autocomplete: dropping stale results", "widget", m.id, "query", msg.query, "seq", msg.seq, "latest", m.issued)
		return
	}
	if msg.err != nil {
		m.err = msg.err
		log.Warn("autocomplete: fetch failed", "widget", m.id, "query", msg.query, "err", msg.err)
		if m.cfg.OnError != nil {
			m.cfg.OnError(msg.query, msg.err)
		}
		return
	}
	m.err = nil

	if len(msg.items) == 0 {
		m.open = false
		return
	}

	options := make([]string, len(msg.items))
	for i, item := range msg.items {
		options[i] = m.cfg.RenderOption(item)
	}
	m.items = msg.items
	m.options = options
	m.open = true
}

// Click selects the option under (x, y) when the dropdown is open.
func (m *Model[T]) Click(x, y int) tea.Cmd {
	if !m.open || !m.Contains(x, y) {
		return nil
	}
	i := m.optionAt(y - m.host.Y)
	if i < 0 {
		return nil
	}
	return m.selectOption(i)
}

func (m *Model[T]) selectOption(i int) tea.Cmd {
	item := m.items[i]

	m.open = false
	m.input.SetValue(m.cfg.InputValue(item))
	m.input.CursorEnd()

	if m.cfg.OnOptionSelect == nil {
		return nil
	}
	return m.cfg.OnOptionSelect(item)
}

// dropdownTop is the row of the dropdown's top border, relative to the host.
func (m *Model[T]) dropdownTop() int {
	row := labelRows
	if m.err != nil {
		row++
	}
	return row
}

// optionAt maps a host-relative row to an option index, or -1.
func (m *Model[T]) optionAt(row int) int {
	top := m.dropdownTop() + 1
	for i, opt := range m.options {
		h := lipgloss.Height(opt)
		if row >= top && row < top+h {
			return i
		}
		top += h
	}
	return -1
}

func (m *Model[T]) height() int {
	h := m.dropdownTop()
	if m.open {
		h += 2
		for _, opt := range m.options {
			h += lipgloss.Height(opt)
		}
	}
	return h
}

// View renders the widget.
func (m *Model[T]) View() string {
	rows := []string{
		m.Styles.Label.Render(m.cfg.Label),
		m.input.View(),
	}

	if m.err != nil {
		line := strings.ReplaceAll(m.err.Error(), "\n", " ")
		style := m.Styles.Error
		if m.host.W > 0 {
			style = style.MaxWidth(m.host.W)
		}
		rows = append(rows, style.Render("search failed: "+line))
	}

	if m.open {
		inner := m.host.W - 2
		box := m.Styles.Dropdown
		opts := make([]string, len(m.options))
		for i, opt := range m.options {
			if inner > 0 {
				opt = lipgloss.NewStyle().MaxWidth(inner).Render(opt)
			}
			opts[i] = opt
		}
		if inner > 0 {
			box = box.Width(inner)
		}
		rows = append(rows, box.Render(lipgloss.JoinVertical(lipgloss.Left, opts...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
