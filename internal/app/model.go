// Package app implements the Bubble Tea dashboard for the shop week tracker.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zavlong/etsy-task-tracker/internal/core/tracker"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
	"github.com/zavlong/etsy-task-tracker/internal/services/navigation"
	"github.com/zavlong/etsy-task-tracker/internal/services/network"
	"github.com/zavlong/etsy-task-tracker/internal/types"
	"github.com/zavlong/etsy-task-tracker/internal/ui/board"
	"github.com/zavlong/etsy-task-tracker/internal/ui/compact"
	"github.com/zavlong/etsy-task-tracker/internal/ui/overlay"
	"github.com/zavlong/etsy-task-tracker/internal/ui/styles"
	"github.com/zavlong/etsy-task-tracker/internal/ui/toast"
)

// Backend loads and saves week records. Load never fails: it falls back
// to an empty week. Save only logs failures.
type Backend interface {
	Load(ctx context.Context, weekKey string) domain.WeekRecord
	Save(ctx context.Context, weekKey string, rec domain.WeekRecord)
}

// Options wires the model to its collaborators
type Options struct {
	Catalog        domain.Catalog
	Backend        Backend
	Health         *network.StatusChecker
	Logger         *slog.Logger
	Week           time.Time // any day of the week to open; zero means today
	Timeout        time.Duration
	HealthInterval time.Duration
	Now            func() time.Time
}

// Model is the dashboard state
type Model struct {
	// Week record and its lifecycle
	state tracker.State

	// Navigation and view narrowing
	nav    *navigation.Service
	filter *domain.Filter
	sort   *domain.Sort

	// UI state
	overlayStack *overlay.Stack
	toasts       []types.Toast
	width        int
	height       int
	styles       *styles.Styles
	spinner      spinner.Model
	progress     progress.Model

	// Backend
	backend        Backend
	networkChecker *network.StatusChecker
	isOnline       bool
	lastHealth     time.Time
	healthInterval time.Duration
	timeout        time.Duration

	// placeCursor moves the cursor to today once the first week loads
	placeCursor bool
	// compact shows the single-day list even when the grid would fit
	compact bool

	logger *slog.Logger
	now    func() time.Time
}

// New creates a new dashboard model
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Catalog == nil {
		opts.Catalog = domain.DefaultCatalog()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.HealthInterval <= 0 {
		opts.HealthInterval = 30 * time.Second
	}
	ref := opts.Week
	if ref.IsZero() {
		ref = opts.Now()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	p := progress.New(
		progress.WithGradient(string(styles.ProgressColors[0]), string(styles.ProgressColors[1])),
		progress.WithoutPercentage(),
	)

	state, _ := tracker.New(opts.Catalog, ref)

	return Model{
		state:          state,
		nav:            navigation.NewService(),
		filter:         domain.NewFilter(),
		sort:           &domain.Sort{Field: domain.SortByCatalog, Order: domain.SortAsc},
		overlayStack:   overlay.NewStack(),
		styles:         styles.New(),
		spinner:        s,
		progress:       p,
		backend:        opts.Backend,
		networkChecker: opts.Health,
		isOnline:       true, // Optimistically assume online
		healthInterval: opts.HealthInterval,
		timeout:        opts.Timeout,
		placeCursor:    true,
		logger:         opts.Logger,
		now:            opts.Now,
	}
}

// Init loads the opening week and starts the background ticks
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		m.loadCmd(tracker.LoadRequest{WeekKey: m.state.WeekKey()}),
		tickEvery(time.Second),
	}
	if m.networkChecker != nil {
		cmds = append(cmds, m.networkChecker.CheckCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.overlayStack.IsEmpty() {
			return m.handleOverlayKey(msg)
		}
		return m.handleKey(msg)

	case overlay.CloseOverlayMsg:
		m.overlayStack.Pop()
		return m, nil

	case overlay.SelectionMsg:
		m.logger.Debug("view changed", "key", msg.Key, "filter", m.filter.Describe(), "sort", m.sort.Field)
		return m, nil

	case overlay.SearchMsg:
		m.filter.SearchQuery = msg.Query
		m.followSearch()
		if s, ok := m.overlayStack.Current().(*overlay.SearchOverlay); ok {
			s.SetMatchCount(len(m.filter.Apply(m.state.Catalog)))
		}
		return m, nil

	case overlay.StatSubmitMsg:
		m.overlayStack.Pop()
		return m.updateStat(msg.Field, msg.Raw)

	case weekLoadedMsg:
		return m.handleLoaded(msg)

	case weekSavedMsg:
		m.logger.Debug("save finished", "week", msg.weekKey)
		return m, nil

	case network.StatusMsg:
		return m.handleStatus(msg)

	case tickMsg:
		now := time.Time(msg)
		m.toasts = toast.Expire(m.toasts, now)
		cmds := []tea.Cmd{tickEvery(time.Second)}
		if m.networkChecker != nil && now.Sub(m.lastHealth) >= m.healthInterval {
			m.lastHealth = now
			cmds = append(cmds, m.networkChecker.CheckCmd())
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) handleLoaded(msg weekLoadedMsg) (tea.Model, tea.Cmd) {
	next, ok := m.state.Loaded(msg.weekKey, msg.record)
	if !ok {
		m.logger.Debug("discarding stale week load", "loaded", msg.weekKey, "showing", m.state.WeekKey())
		return m, nil
	}
	m.state = next
	m.logger.Info("week loaded", "week", msg.weekKey, "completions", len(next.Record.Completions))

	if m.placeCursor {
		m.placeCursor = false
		if today := m.state.Today(m.now()); today >= 0 {
			m.nav.GotoDay(m.buildColumns(), today)
		}
	}
	return m, nil
}

func (m Model) handleStatus(msg network.StatusMsg) (tea.Model, tea.Cmd) {
	if msg.Online != m.isOnline {
		if msg.Online {
			m.addToast(types.ToastSuccess, "Backend reachable again")
		} else {
			m.addToast(types.ToastWarning, "Backend offline, changes may not be saved")
		}
		m.logger.Info("backend status changed", "online", msg.Online, "error", msg.Err)
	}
	m.isOnline = msg.Online
	return m, nil
}

// buildColumns lays out the visible grid for the current state
func (m Model) buildColumns() []board.Column {
	return board.BuildColumns(m.state, m.state.Today(m.now()), m.filter, m.sort)
}

// followSearch moves the cursor onto a match when the query hides its task
func (m Model) followSearch() {
	columns := m.buildColumns()
	pos := m.nav.GetPosition(columns)
	if !pos.Valid {
		return
	}
	if m.nav.JumpToTaskByID(columns, m.nav.GetCursor().TaskID) {
		return
	}
	m.nav.JumpToTaskByID(columns, columns[pos.Column].Tasks[0].ID)
}

// compactView reports whether the body shows one day instead of the grid
func (m Model) compactView() bool {
	return m.compact || m.width < compact.MinBoardWidth
}

// handleKey processes keyboard input when no overlay is open
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+l":
		return m, tea.ClearScreen
	case "esc":
		if m.filter.SearchQuery != "" {
			m.filter.SearchQuery = ""
			return m, nil
		}
	}
	return m.handleNormalMode(msg)
}

// handleNormalMode processes keyboard input in normal mode
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	columns := m.buildColumns()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "j", "down":
		m.nav.MoveDown(columns)
	case "k", "up":
		m.nav.MoveUp(columns)
	case "h", "left":
		m.nav.MoveLeft(columns)
	case "l", "right":
		m.nav.MoveRight(columns)
	case "g", "home":
		m.nav.GotoTop(columns)
	case "G", "end":
		m.nav.GotoBottom(columns)

	case " ", "x":
		return m.toggleCurrent(columns)

	case "enter":
		task, _, ok := m.nav.CurrentTask(columns)
		if !ok || !m.state.Ready() {
			return m, nil
		}
		return m, m.overlayStack.Push(overlay.NewTaskDetail(task, m.state.WeekStart, m.state.Record.Completions))

	case "[":
		return m.shiftWeek(-domain.DaysPerWeek)
	case "]":
		return m.shiftWeek(domain.DaysPerWeek)
	case "t":
		next, req := m.state.GoTo(m.now())
		m.state = next
		m.placeCursor = true
		return m, m.loadCmd(req)
	case "r":
		return m.shiftWeek(0)

	case "1", "2", "3":
		field := domain.StatFields[msg.String()[0]-'1']
		if !m.state.Ready() {
			m.addToast(types.ToastWarning, "Week is still loading")
			return m, nil
		}
		return m, m.overlayStack.Push(overlay.NewStatEditor(field, m.state.Record.Stats.Get(field)))

	case "/":
		return m, m.overlayStack.Push(overlay.NewSearchOverlay(m.filter.SearchQuery))
	case "f":
		return m, m.overlayStack.Push(overlay.NewFilterMenu(m.filter))
	case ",":
		return m, m.overlayStack.Push(overlay.NewSortMenu(m.sort))
	case "?":
		return m, m.overlayStack.Push(overlay.NewHelpOverlay())
	case "v":
		m.compact = !m.compact
	}

	return m, nil
}

// handleOverlayKey forwards keys to the top overlay
func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	return m, m.overlayStack.Update(msg)
}

func (m Model) toggleCurrent(columns []board.Column) (tea.Model, tea.Cmd) {
	task, day, ok := m.nav.CurrentTask(columns)
	if !ok {
		return m, nil
	}

	next, req, err := m.state.Toggle(task.ID, day)
	if err != nil {
		m.logger.Debug("toggle refused", "task", task.ID, "day", day, "error", err)
		if errors.Is(err, domain.ErrNotReady) {
			m.addToast(types.ToastWarning, "Week is still loading")
		}
		return m, nil
	}
	m.state = next
	return m, m.saveCmd(req)
}

func (m Model) updateStat(field domain.StatField, raw string) (tea.Model, tea.Cmd) {
	next, req, err := m.state.UpdateStat(field, raw)
	if err != nil {
		m.logger.Warn("stat update refused", "field", field, "error", err)
		m.addToast(types.ToastError, err.Error())
		return m, nil
	}
	m.state = next
	return m, m.saveCmd(req)
}

func (m Model) shiftWeek(deltaDays int) (tea.Model, tea.Cmd) {
	next, req := m.state.ShiftWeek(deltaDays)
	m.state = next
	return m, m.loadCmd(req)
}

func (m *Model) addToast(level types.ToastLevel, msg string) {
	m.toasts = toast.Push(m.toasts, level, msg, m.now())
}

// Mode derives the keyboard mode from the open overlay
func (m Model) Mode() types.Mode {
	switch m.overlayStack.Current().(type) {
	case *overlay.StatEditor:
		return types.ModeStat
	case *overlay.SearchOverlay:
		return types.ModeSearch
	case *overlay.FilterMenu, *overlay.SortMenu:
		return types.ModeFilter
	default:
		return types.ModeNormal
	}
}

// State returns the current tracker state
func (m Model) State() tracker.State {
	return m.state
}
