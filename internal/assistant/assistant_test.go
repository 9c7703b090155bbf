package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/character"
	"github.com/taskdeck/taskdeck/internal/llm"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/task"
)

// scriptedClient returns canned replies in order.
type scriptedClient struct {
	replies []string
	calls   int
}

func (c *scriptedClient) Chat(_ context.Context, _ []llm.Message) (string, error) {
	if c.calls >= len(c.replies) {
		return "I have nothing more to say.", nil
	}
	reply := c.replies[c.calls]
	c.calls++
	return reply, nil
}

func (c *scriptedClient) Probe(_ context.Context) error { return nil }

func newAssistant(t *testing.T, replies ...string) (*Assistant, *store.FileStore, *character.Store) {
	t.Helper()
	dir := t.TempDir()
	repo, err := store.New(dir)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	stats, err := character.NewStore(dir)
	if err != nil {
		t.Fatalf("character.NewStore: %v", err)
	}
	return New(&scriptedClient{replies: replies}, repo, stats), repo, stats
}

func TestExtractCommands(t *testing.T) {
	reply := "Sure, adding that now.\n" +
		"<command>add;Buy milk;01-15-2025;2</command>\n" +
		"And removing the other one.\n" +
		"<command>delete;Old chore</command>"

	commands := ExtractCommands(reply)
	if len(commands) != 2 {
		t.Fatalf("got %d commands, want 2", len(commands))
	}
	if commands[0] != "add;Buy milk;01-15-2025;2" {
		t.Errorf("got %q", commands[0])
	}
	if commands[1] != "delete;Old chore" {
		t.Errorf("got %q", commands[1])
	}
}

func TestExtractCommandsMultiline(t *testing.T) {
	reply := "<command>add;Split\ntask;01-15-2025;1</command>"
	commands := ExtractCommands(reply)
	if len(commands) != 1 {
		t.Fatalf("got %d commands, want 1", len(commands))
	}
	if !strings.Contains(commands[0], "\n") {
		t.Error("multiline command content was not preserved")
	}
}

func TestStripCommands(t *testing.T) {
	reply := "Done!<command>add;x;01-15-2025;1</command> Anything else?"
	got := StripCommands(reply)
	if strings.Contains(got, "command") {
		t.Errorf("commands not stripped: %q", got)
	}
}

func TestSystemPromptContainsGrammarAndDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	prompt := SystemPrompt(now)
	for _, want := range []string{
		"<command>add;[task];[date];[priority]</command>",
		"<command>finish;[task]</command>",
		"<command>delete;[task]</command>",
		"<command>edit;[old task];[new task];[new date];[new priority]</command>",
		"06-15-2025",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSendExecutesAdd(t *testing.T) {
	a, repo, _ := newAssistant(t, "Adding it.\n<command>add;Buy milk;01-15-2026;2</command>")

	reply, err := a.Send(context.Background(), "add buy milk for mid january")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(reply.Actions) != 1 || !strings.Contains(reply.Actions[0], "added") {
		t.Errorf("unexpected actions: %v", reply.Actions)
	}
	if strings.Contains(reply.Text, "<command>") {
		t.Errorf("reply text still contains command tags: %q", reply.Text)
	}

	tasks, _ := repo.Load()
	if len(tasks) != 1 || tasks[0].Name != "Buy milk" {
		t.Errorf("task not stored: %v", tasks)
	}
}

func TestSendFinishCreditsCharacter(t *testing.T) {
	a, repo, statsStore := newAssistant(t,
		"<command>add;Buy milk;01-15-2026;2</command>",
		"<command>finish;Buy milk</command>",
	)

	ctx := context.Background()
	if _, err := a.Send(ctx, "add milk"); err != nil {
		t.Fatalf("Send add: %v", err)
	}
	reply, err := a.Send(ctx, "done with milk")
	if err != nil {
		t.Fatalf("Send finish: %v", err)
	}
	if len(reply.Actions) != 1 || !strings.Contains(reply.Actions[0], "completed") {
		t.Errorf("unexpected actions: %v", reply.Actions)
	}

	tasks, _ := repo.Load()
	if len(tasks) != 0 {
		t.Errorf("task not removed: %v", tasks)
	}
	stats, _ := statsStore.Load()
	if stats.TasksCompleted != 1 {
		t.Errorf("got %d completions, want 1", stats.TasksCompleted)
	}
}

func TestSendEditPreservesNotes(t *testing.T) {
	a, repo, _ := newAssistant(t, "<command>edit;Report;Final report;02-01-2026;5</command>")

	initial, err := task.New("Report", "01-15-2026", 2, "with appendix")
	if err != nil {
		t.Fatalf("task.New: %v", err)
	}
	if err := repo.Add(initial); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if _, err := a.Send(context.Background(), "rename the report"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	tasks, _ := repo.Load()
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Name != "Final report" || got.Priority != 5 || got.Notes != "with appendix" {
		t.Errorf("unexpected task after edit: %+v", got)
	}
}

func TestSendReportsCommandErrors(t *testing.T) {
	a, _, _ := newAssistant(t, "<command>finish;No such task</command>")

	reply, err := a.Send(context.Background(), "finish something")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(reply.Actions) != 1 || !strings.Contains(reply.Actions[0], "Error") {
		t.Errorf("expected error action, got %v", reply.Actions)
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	a, _, _ := newAssistant(t)
	if _, err := a.execute("explode;everything"); err == nil {
		t.Error("expected error for unknown action")
	}
}
