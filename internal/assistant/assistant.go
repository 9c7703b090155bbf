// Package assistant implements the AI chat assistant and its task command grammar.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/character"
	"github.com/taskdeck/taskdeck/internal/dateutil"
	"github.com/taskdeck/taskdeck/internal/llm"
	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/task"
)

// commandPattern extracts embedded commands from a model reply.
// (?s) so commands may span lines.
var commandPattern = regexp.MustCompile(`(?s)<command>(.*?)</command>`)

// ErrUnknownCommand is returned for an action the grammar does not define.
var ErrUnknownCommand = errors.New("unknown assistant command")

// probeTimeout bounds the server status check before the first chat.
const probeTimeout = 2 * time.Second

// Assistant wires a chat client to the task store.
type Assistant struct {
	client  llm.Client
	repo    task.Repository
	stats   *character.Store
	history []llm.Message
}

// New creates an Assistant. stats may be nil; finish commands then skip
// character credit.
func New(client llm.Client, repo task.Repository, stats *character.Store) *Assistant {
	return &Assistant{client: client, repo: repo, stats: stats}
}

// Greeting probes the model server and returns an availability banner.
func (a *Assistant) Greeting(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := a.client.Probe(ctx); err != nil {
		logging.Debug("assistant probe failed", "err", err)
		return "AI assistant: model server is not reachable.\n" +
			"Start your local model server (Ollama or LM Studio) and try again."
	}
	return "AI assistant ready. Ask me to add, finish, delete, or edit tasks."
}

// Reply is the outcome of one chat turn.
type Reply struct {
	Text    string   // model reply with command tags stripped
	Actions []string // human-readable results of executed commands
}

// Send runs one chat turn: the user message goes to the model with the
// system prompt and running history, and any commands embedded in the reply
// are executed against the task store. Command failures are reported in
// Actions rather than failing the turn.
func (a *Assistant) Send(ctx context.Context, userMsg string) (*Reply, error) {
	messages := make([]llm.Message, 0, len(a.history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: SystemPrompt(time.Now())})
	messages = append(messages, a.history...)
	messages = append(messages, llm.Message{Role: "user", Content: userMsg})

	text, err := a.client.Chat(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("assistant chat: %w", err)
	}

	a.history = append(a.history,
		llm.Message{Role: "user", Content: userMsg},
		llm.Message{Role: "assistant", Content: text},
	)

	reply := &Reply{Text: StripCommands(text)}
	for _, cmd := range ExtractCommands(text) {
		result, err := a.execute(cmd)
		if err != nil {
			reply.Actions = append(reply.Actions, fmt.Sprintf("Error processing command: %v", err))
			continue
		}
		reply.Actions = append(reply.Actions, result)
	}
	return reply, nil
}

// SystemPrompt builds the system prompt advertising the command grammar.
func SystemPrompt(now time.Time) string {
	return fmt.Sprintf(`You are a TODO assistant.

Available commands (use these to manage tasks):
<command>add;[task];[date];[priority]</command>
<command>finish;[task]</command>
<command>delete;[task]</command>
<command>edit;[old task];[new task];[new date];[new priority]</command>

Current date: %s

Help users manage their tasks. Be concise and helpful.`, dateutil.FormatDate(now))
}

// ExtractCommands returns the contents of every <command> tag in s.
func ExtractCommands(s string) []string {
	var commands []string
	for _, m := range commandPattern.FindAllStringSubmatch(s, -1) {
		cmd := strings.TrimSpace(m[1])
		if cmd != "" {
			commands = append(commands, cmd)
		}
	}
	return commands
}

// StripCommands removes command tags from a reply for display.
func StripCommands(s string) string {
	return strings.TrimSpace(commandPattern.ReplaceAllString(s, ""))
}

// execute dispatches a single semicolon-delimited command.
func (a *Assistant) execute(cmdText string) (string, error) {
	parts := strings.Split(cmdText, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) == 0 || parts[0] == "" {
		return "", ErrUnknownCommand
	}

	action := strings.ToLower(parts[0])
	logging.Debug("assistant command", "action", action)

	switch action {
	case "add":
		if len(parts) < 4 {
			return "", fmt.Errorf("add: want 3 arguments, got %d", len(parts)-1)
		}
		return a.addTask(parts[1], parts[2], parts[3])
	case "finish":
		if len(parts) < 2 {
			return "", errors.New("finish: missing task name")
		}
		return a.finishTask(parts[1])
	case "delete":
		if len(parts) < 2 {
			return "", errors.New("delete: missing task name")
		}
		return a.deleteTask(parts[1])
	case "edit":
		if len(parts) < 5 {
			return "", fmt.Errorf("edit: want 4 arguments, got %d", len(parts)-1)
		}
		return a.editTask(parts[1], parts[2], parts[3], parts[4])
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, action)
	}
}

func (a *Assistant) addTask(name, date, priorityStr string) (string, error) {
	priority, err := strconv.Atoi(priorityStr)
	if err != nil {
		return "", task.ErrInvalidPriority
	}
	t, err := task.New(name, date, priority, "")
	if err != nil {
		return "", err
	}
	if err := a.repo.Add(t); err != nil {
		return "", err
	}
	return fmt.Sprintf("Task %q added successfully!", t.Name), nil
}

func (a *Assistant) finishTask(name string) (string, error) {
	tasks, err := a.repo.Load()
	if err != nil {
		return "", err
	}
	for _, t := range tasks {
		if t.Name == name {
			if _, err := a.repo.Remove(t.Name, t.DueString(), t.Priority); err != nil {
				return "", err
			}
			if err := a.credit(); err != nil {
				return "", err
			}
			return fmt.Sprintf("Task %q completed!", name), nil
		}
	}
	return "", task.ErrTaskNotFound
}

func (a *Assistant) deleteTask(name string) (string, error) {
	if err := a.repo.RemoveByName(name); err != nil {
		return "", err
	}
	return fmt.Sprintf("Task %q deleted!", name), nil
}

func (a *Assistant) editTask(oldName, newName, newDate, newPriorityStr string) (string, error) {
	newPriority, err := strconv.Atoi(newPriorityStr)
	if err != nil {
		return "", task.ErrInvalidPriority
	}

	tasks, err := a.repo.Load()
	if err != nil {
		return "", err
	}
	for _, t := range tasks {
		if t.Name == oldName {
			updated, err := task.New(newName, newDate, newPriority, t.Notes)
			if err != nil {
				return "", err
			}
			if err := a.repo.Replace(t.Name, t.DueString(), t.Priority, updated); err != nil {
				return "", err
			}
			return "Task updated successfully!", nil
		}
	}
	return "", task.ErrTaskNotFound
}

// credit records a completion against the character stats.
func (a *Assistant) credit() error {
	if a.stats == nil {
		return nil
	}
	stats, err := a.stats.Load()
	if err != nil {
		return err
	}
	stats.RecordCompletion()
	return a.stats.Save(stats)
}
