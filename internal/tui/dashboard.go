package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/smarttask/internal/app"
	"github.com/manav03panchal/smarttask/internal/history"
	"github.com/manav03panchal/smarttask/internal/logging"
	"github.com/manav03panchal/smarttask/internal/model"
	"github.com/manav03panchal/smarttask/internal/notify"
)

// ToastDuration is how long status messages stay on screen.
const ToastDuration = 2 * time.Second

// chromeRows is the vertical space taken by everything but the task rows.
const chromeRows = 10

// Controller is the part of app.Controller the dashboard drives.
type Controller interface {
	ListTasks(filter app.TaskFilter) ([]*model.Task, error)
	CompleteTask(id int64) (*model.Task, error)
	DeleteTask(id int64) (*model.Task, error)
	Undo() (*app.UndoResult, error)
	Check(dueSoonDays int) (*notify.Digest, int, error)
	History() app.HistoryView
	Today() time.Time
}

// tickMsg expires toasts.
type tickMsg time.Time

// refreshMsg re-runs the overdue check and reloads the list.
type refreshMsg struct{}

// DashboardModel is the bubbletea model for the dashboard.
type DashboardModel struct {
	ctrl Controller

	tasks  []*model.Task
	cursor int
	digest *notify.Digest

	width  int
	height int

	message    string
	messageErr bool
	messageExp time.Time

	refreshInterval time.Duration
	dueSoonDays     int
	now             func() time.Time
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Controller      Controller
	RefreshInterval time.Duration
	DueSoonDays     int
	// Now defaults to time.Now; it only drives toast expiry.
	Now func() time.Time
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval <= 0 {
		config.RefreshInterval = time.Minute
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &DashboardModel{
		ctrl:            config.Controller,
		refreshInterval: config.RefreshInterval,
		dueSoonDays:     config.DueSoonDays,
		now:             config.Now,
	}
}

// Init loads the list and starts the timers.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return refreshMsg{} },
		m.tickCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.expireMessage()
		return m, m.tickCmd()

	case refreshMsg:
		m.refresh()
		return m, m.refreshCmd()
	}

	return m, nil
}

func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "c":
		if t := m.Selected(); t != nil {
			if _, err := m.ctrl.CompleteTask(t.ID); err != nil {
				m.setError(err)
			} else {
				m.setMessage(fmt.Sprintf("Completed '%s'", t.Title))
			}
			m.loadTasks()
		}

	case "d":
		if t := m.Selected(); t != nil {
			if _, err := m.ctrl.DeleteTask(t.ID); err != nil {
				m.setError(err)
			} else {
				m.setMessage(fmt.Sprintf("Deleted '%s'", t.Title))
			}
			m.loadTasks()
		}

	case "ctrl+z", "u":
		m.undo()

	case "r":
		if m.refresh() {
			m.setMessage("Refreshed")
		}
	}

	return m, nil
}

func (m *DashboardModel) undo() {
	res, err := m.ctrl.Undo()
	switch {
	case err != nil:
		m.setError(err)
	case res == nil:
		m.setMessage("Nothing to undo")
	default:
		m.setMessage(res.Message)
	}
	m.loadTasks()
	if res != nil && res.Task != nil {
		m.selectTask(res.Task.ID)
	}
}

// refresh marks overdue tasks, rebuilds the digest and reloads the list.
// It reports whether both steps succeeded.
func (m *DashboardModel) refresh() bool {
	digest, marked, err := m.ctrl.Check(m.dueSoonDays)
	if err != nil {
		m.setError(err)
		return false
	}
	m.digest = digest
	if marked > 0 {
		logging.DebugLog("dashboard marked tasks overdue", logging.KeyCount, marked)
	}
	return m.loadTasks()
}

func (m *DashboardModel) loadTasks() bool {
	tasks, err := m.ctrl.ListTasks(app.TaskFilter{})
	if err != nil {
		m.setError(err)
		return false
	}
	m.tasks = tasks
	m.clampCursor()
	return true
}

func (m *DashboardModel) clampCursor() {
	m.cursor = max(0, min(m.cursor, len(m.tasks)-1))
}

func (m *DashboardModel) selectTask(id int64) {
	for i, t := range m.tasks {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

// Selected returns the task under the cursor, nil when the list is empty.
func (m *DashboardModel) Selected() *model.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return m.tasks[m.cursor]
}

// Tasks returns the listed tasks in display order.
func (m *DashboardModel) Tasks() []*model.Task {
	return m.tasks
}

// Message returns the current toast, empty when none is showing.
func (m *DashboardModel) Message() string {
	return m.message
}

// UndoLabel describes what ctrl+z would revert, empty when nothing.
func (m *DashboardModel) UndoLabel() string {
	a, ok := m.ctrl.History().Peek()
	if !ok {
		return ""
	}
	return history.Describe(a)
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if banner := (&BannerComponent{Digest: m.digest, Width: m.width}).View(); banner != "" {
		sections = append(sections, banner)
	}

	list := &TaskListComponent{
		Tasks:  m.tasks,
		Cursor: m.cursor,
		Width:  m.width,
		Rows:   max(m.height-chromeRows, 3),
		Today:  m.ctrl.Today(),
	}
	sections = append(sections, list.View())

	if m.message != "" {
		style := StyleSuccess
		if m.messageErr {
			style = StyleError
		}
		sections = append(sections, style.Render(m.message))
	}

	sections = append(sections, Footer(m.UndoLabel()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("SmartTask")
	day := StyleSubtitle.Render(m.ctrl.Today().Format("Mon Jan 2, 2006"))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", day)
}

func (m *DashboardModel) setMessage(msg string) {
	m.message = msg
	m.messageErr = false
	m.messageExp = m.now().Add(ToastDuration)
}

func (m *DashboardModel) setError(err error) {
	m.message = "Error: " + err.Error()
	m.messageErr = true
	m.messageExp = m.now().Add(ToastDuration)
}

func (m *DashboardModel) expireMessage() {
	if !m.messageExp.IsZero() && !m.now().Before(m.messageExp) {
		m.message = ""
		m.messageErr = false
		m.messageExp = time.Time{}
	}
}

func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *DashboardModel) refreshCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	p := tea.NewProgram(NewDashboardModel(config), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
