// Package tui is a terminal front end for the portfolio controller
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"drive-portfolio/pkg/models"
	"drive-portfolio/pkg/portfolio"
)

// screen is the portfolio.View the controller renders into
type screen struct {
	loading   string
	errMsg    string
	empty     string
	filters   []models.Category
	active    string
	cards     []portfolio.Card
	modalOpen bool
	modal     portfolio.ModalContent
	hover     bool
}

func (s *screen) RenderLoading(message string) {
	s.loading = message
	s.errMsg = ""
	s.empty = ""
	s.cards = nil
}

func (s *screen) RenderError(message string) {
	s.loading = ""
	s.errMsg = message
	s.cards = nil
}

func (s *screen) RenderFilters(categories []models.Category) { s.filters = categories }
func (s *screen) SetActiveFilter(id string)                 { s.active = id }

func (s *screen) RenderEmpty(message string) {
	s.loading = ""
	s.empty = message
	s.cards = nil
}

func (s *screen) RenderGrid(cards []portfolio.Card) {
	s.loading = ""
	s.empty = ""
	s.cards = cards
}

func (s *screen) ShowModal()                                     { s.modalOpen = true }
func (s *screen) HideModal()                                     { s.modalOpen = false }
func (s *screen) SetModalContent(content portfolio.ModalContent) { s.modal = content }
func (s *screen) ClearModalContent()                             { s.modal = portfolio.ModalContent{} }
func (s *screen) SetCursorHover(on bool)                         { s.hover = on }

// Model is the Bubble Tea model of the portfolio browser
type Model struct {
	ctx       context.Context
	ctrl      *portfolio.Controller
	sched     *cmdQueue
	scroll    *scrollLock
	screen    *screen
	preloader portfolio.Preloader

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	cursor int
	offset int
	width  int
	height int
}

// New creates the browser model. preloader may be nil.
func New(ctx context.Context, fetcher portfolio.Fetcher, preloader portfolio.Preloader) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &Model{
		ctx:       ctx,
		sched:     &cmdQueue{},
		scroll:    &scrollLock{},
		screen:    &screen{},
		preloader: preloader,
		keys:      defaultKeyMap(),
		help:      help.New(),
		spinner:   s,
		width:     80,
		height:    24,
	}
	m.ctrl = portfolio.New(portfolio.Params{
		View:       m.screen,
		Fetcher:    fetcher,
		Scheduler:  m.sched,
		Preloader:  preloader,
		ScrollLock: m.scroll,
	})
	return m
}

// Controller returns the underlying portfolio controller
func (m *Model) Controller() *portfolio.Controller {
	return m.ctrl
}

// Cursor returns the highlighted card position
func (m *Model) Cursor() int {
	return m.cursor
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	if err := m.ctrl.Initialize(m.ctx); err != nil {
		logrus.Warnf("Portfolio init: %v", err)
	}
	return tea.Batch(m.spinner.Tick, m.sched.flush())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case continuationMsg:
		if msg.fn != nil {
			msg.fn()
		}
		m.clampCursor()
		return m, m.sched.flush()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.screen.loading == "" && m.ctrl.ModalState() != portfolio.ModalLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.ctrl.ModalState() != portfolio.ModalClosed {
		m.ctrl.KeyPress(msg.String())
		return m, m.afterEvent()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.PrevCategory):
		m.stepCategory(-1)
	case key.Matches(msg, m.keys.NextCategory):
		m.stepCategory(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Open):
		m.ctrl.ClickCard(m.cursor)
	}

	return m, m.afterEvent()
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		if m.ctrl.ModalState() != portfolio.ModalClosed {
			m.ctrl.ClickBackdrop(m.insideModal(msg.X, msg.Y))
		}
	}
	return m, m.afterEvent()
}

func (m *Model) afterEvent() tea.Cmd {
	cmd := m.sched.flush()
	if m.ctrl.ModalState() == portfolio.ModalLoading {
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

func (m *Model) stepCategory(delta int) {
	categories := m.screen.filters
	if len(categories) == 0 {
		return
	}

	current := 0
	for i, c := range categories {
		if c.ID == m.ctrl.ActiveCategory() {
			current = i
			break
		}
	}
	next := (current + delta + len(categories)) % len(categories)

	if m.ctrl.SelectCategory(categories[next].ID) {
		m.cursor = 0
		m.offset = 0
	}
}

func (m *Model) moveCursor(delta int) {
	if m.scroll.suspended || len(m.screen.cards) == 0 {
		return
	}
	m.cursor += delta
	m.clampCursor()
	m.ctrl.HoverCard(true)
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.screen.cards) {
		m.cursor = len(m.screen.cards) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	visible := m.visibleCards()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

// insideModal reports whether the cell at x, y belongs to the modal box
func (m *Model) insideModal(x, y int) bool {
	box := m.renderModalBox()
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	left := (m.width - w) / 2
	top := (m.height - h) / 2
	return x >= left && x < left+w && y >= top && y < top+h
}
