package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/assistant"
	"github.com/taskdeck/taskdeck/internal/calendar"
	"github.com/taskdeck/taskdeck/internal/character"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/daily"
	"github.com/taskdeck/taskdeck/internal/dateutil"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/task"
	"github.com/taskdeck/taskdeck/internal/tui/commands"
	"github.com/taskdeck/taskdeck/internal/tui/theme"
	"github.com/taskdeck/taskdeck/internal/updater"
)

// Tab identifies one of the main views.
type Tab int

const (
	TabTasks Tab = iota
	TabDaily
	TabCalendar
	TabWeek
	TabChat
)

var tabNames = []string{"Tasks", "Daily", "Calendar", "Week", "Chat"}

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeTaskForm
	ModeDailyForm
	ModeConfirmDelete
)

// taskForm field indices.
const (
	fieldName = iota
	fieldDate
	fieldPriority
	fieldNotes
	taskFormFields
)

// dailyForm field indices.
const (
	fieldTime = iota
	fieldText
	dailyFormFields
)

// chatLine is one transcript row in the chat tab.
type chatLine struct {
	role string // "you", "assistant" or "action"
	text string
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	cfg        *config.Config
	repo       *store.FileStore
	dailyStore *daily.Store
	charStore  *character.Store
	upd        *updater.Updater

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Data
	tasks   []*task.Task
	entries []*daily.Entry
	stats   *character.Stats

	// Tab state
	activeTab   Tab
	mode        Mode
	taskCursor  int
	dailyCursor int

	// Calendar state
	calYear  int
	calMonth time.Month
	month    *calendar.Month

	// Task/daily form state
	form      []textinput.Model
	formFocus int
	editIndex int // -1 when adding

	// Delete confirmation
	confirmMessage string

	// Chat state
	asst         *assistant.Assistant
	chat         []chatLine
	chatInput    textinput.Model
	chatThinking bool

	// Clock
	today time.Time // midnight of the current day, for rollover detection

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg string
	statusErr bool

	err error
}

// New creates the TUI model.
func New(cfg *config.Config, repo *store.FileStore, dailyStore *daily.Store, charStore *character.Store, upd *updater.Updater) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}

	chatInput := textinput.New()
	chatInput.Placeholder = "Ask the assistant..."
	chatInput.CharLimit = 512

	now := time.Now()
	m := &Model{
		cfg:        cfg,
		repo:       repo,
		dailyStore: dailyStore,
		charStore:  charStore,
		upd:        upd,
		theme:      t,
		styles:     NewStyles(t),
		activeTab:  TabTasks,
		mode:       ModeNormal,
		calYear:    now.Year(),
		calMonth:   now.Month(),
		chatInput:  chatInput,
		editIndex:  -1,
		today:      dateutil.TruncateToDay(now),
		stats:      character.NewStats(),
	}
	return m
}

// Init loads data and starts the clock and, when configured, the assistant.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		commands.LoadTasks(m.repo),
		commands.LoadDaily(m.dailyStore),
		commands.LoadStats(m.charStore),
		commands.Tick(),
	}
	if m.cfg.UI.ShowAssistant {
		cmds = append(cmds, commands.StartAssistant(m.cfg, m.repo, m.charStore))
	}
	if m.upd != nil {
		cmds = append(cmds, commands.CheckUpdate(m.upd))
	}
	return tea.Batch(cmds...)
}

// newTaskForm builds the four-field task entry form.
func (m *Model) newTaskForm(seed *task.Task) []textinput.Model {
	labels := [taskFormFields]string{"Task name", "MM-DD-YYYY (empty = today)", "Priority 1-5", "Notes"}
	form := make([]textinput.Model, taskFormFields)
	for i := range form {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 256
		ti.Width = 40
		form[i] = ti
	}
	if seed != nil {
		form[fieldName].SetValue(seed.Name)
		form[fieldDate].SetValue(seed.DueString())
		form[fieldPriority].SetValue(strconv.Itoa(seed.Priority))
		if seed.Notes != task.DefaultNotes {
			form[fieldNotes].SetValue(seed.Notes)
		}
	}
	form[fieldName].Focus()
	return form
}

// newDailyForm builds the two-field daily entry form.
func (m *Model) newDailyForm(seed *daily.Entry) []textinput.Model {
	labels := [dailyFormFields]string{"HH:MM", "What to do"}
	form := make([]textinput.Model, dailyFormFields)
	for i := range form {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 256
		ti.Width = 40
		form[i] = ti
	}
	if seed != nil {
		form[fieldTime].SetValue(seed.Time)
		form[fieldText].SetValue(seed.Text)
	}
	form[fieldTime].Focus()
	return form
}

// Run starts the TUI.
func Run(cfg *config.Config, repo *store.FileStore, dailyStore *daily.Store, charStore *character.Store, upd *updater.Updater) error {
	model := New(cfg, repo, dailyStore, charStore, upd)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

