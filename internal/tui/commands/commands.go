// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/assistant"
	"github.com/taskdeck/taskdeck/internal/character"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/daily"
	"github.com/taskdeck/taskdeck/internal/llm"
	"github.com/taskdeck/taskdeck/internal/task"
	"github.com/taskdeck/taskdeck/internal/updater"
)

// chatTimeout bounds one assistant round trip; local models can be slow.
const chatTimeout = 120 * time.Second

// TasksLoadedMsg is sent when the task list is (re)loaded from disk.
type TasksLoadedMsg struct {
	Tasks []*task.Task
}

// DailyLoadedMsg is sent when the daily list is (re)loaded from disk.
type DailyLoadedMsg struct {
	Entries []*daily.Entry
}

// StatsLoadedMsg is sent when character stats are loaded.
type StatsLoadedMsg struct {
	Stats *character.Stats
}

// AssistantReadyMsg is sent after the LLM probe, with the opening line.
type AssistantReadyMsg struct {
	Assistant *assistant.Assistant
	Greeting  string
}

// ChatReplyMsg is sent when the assistant answers.
type ChatReplyMsg struct {
	Reply *assistant.Reply
}

// UpdateCheckedMsg is sent with the result of a release check.
type UpdateCheckedMsg struct {
	Plan *updater.Plan
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// TickMsg is the once-a-minute clock tick driving statuses and the
// midnight reset.
type TickMsg time.Time

// TaskLoader loads the full task list.
type TaskLoader interface {
	Load() ([]*task.Task, error)
}

// DailyLoader loads the daily entry list.
type DailyLoader interface {
	Load() ([]*daily.Entry, error)
}

// StatsLoader loads character stats.
type StatsLoader interface {
	Load() (*character.Stats, error)
}

// LoadTasks reloads the task list from disk.
func LoadTasks(repo TaskLoader) tea.Cmd {
	return func() tea.Msg {
		tasks, err := repo.Load()
		if err != nil {
			return ErrMsg{Err: err}
		}
		return TasksLoadedMsg{Tasks: tasks}
	}
}

// LoadDaily reloads the daily list from disk.
func LoadDaily(store DailyLoader) tea.Cmd {
	return func() tea.Msg {
		entries, err := store.Load()
		if err != nil {
			return ErrMsg{Err: err}
		}
		return DailyLoadedMsg{Entries: entries}
	}
}

// LoadStats reloads character stats from disk.
func LoadStats(store StatsLoader) tea.Cmd {
	return func() tea.Msg {
		stats, err := store.Load()
		if err != nil {
			return ErrMsg{Err: err}
		}
		return StatsLoadedMsg{Stats: stats}
	}
}

// StartAssistant connects to the configured LLM provider and fetches the
// greeting. Runs off the update loop; the probe can take seconds.
func StartAssistant(cfg *config.Config, repo task.Repository, stats *character.Store) tea.Cmd {
	return func() tea.Msg {
		client, err := llm.NewClient(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.BaseURL)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating LLM client: %w", err)}
		}
		a := assistant.New(client, repo, stats)
		greeting := a.Greeting(context.Background())
		return AssistantReadyMsg{Assistant: a, Greeting: greeting}
	}
}

// SendChat sends one user message to the assistant.
func SendChat(a *assistant.Assistant, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()

		reply, err := a.Send(ctx, text)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("assistant: %w", err)}
		}
		return ChatReplyMsg{Reply: reply}
	}
}

// CheckUpdate queries the release feed for a newer version.
func CheckUpdate(u *updater.Updater) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		plan, err := u.Check(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("checking for updates: %w", err)}
		}
		return UpdateCheckedMsg{Plan: plan}
	}
}

// Tick schedules the next clock tick on the minute boundary.
func Tick() tea.Cmd {
	now := time.Now()
	next := now.Truncate(time.Minute).Add(time.Minute)
	return tea.Tick(next.Sub(now), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ClearStatusAfter clears the status line after the given delay.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
