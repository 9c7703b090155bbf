// Package share implements ad hoc JSON-over-TCP task sharing on the LAN.
package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/taskdeck/taskdeck/internal/daily"
	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/task"
)

// dialTimeout bounds the import connection attempt.
const dialTimeout = 5 * time.Second

// ErrServerClosed is returned by Serve after Close.
var ErrServerClosed = errors.New("share server closed")

// TaskJSON is the wire form of a task.
type TaskJSON struct {
	Name     string `json:"name"`
	Due      string `json:"due"`
	Priority int    `json:"priority"`
	Notes    string `json:"notes"`
}

// Payload is the single JSON document exchanged per connection.
// Character stats are deliberately absent; only tasks are shared.
type Payload struct {
	Tasks      []TaskJSON `json:"tasks"`
	DailyTasks []string   `json:"daily_tasks"`
}

// BuildPayload snapshots the current task and daily lists.
func BuildPayload(tasks []*task.Task, entries []*daily.Entry) *Payload {
	p := &Payload{}
	for _, t := range tasks {
		p.Tasks = append(p.Tasks, TaskJSON{
			Name:     t.Name,
			Due:      t.DueString(),
			Priority: t.Priority,
			Notes:    t.Notes,
		})
	}
	for _, e := range entries {
		p.DailyTasks = append(p.DailyTasks, e.Line())
	}
	return p
}

// Server shares the task lists with other instances on the LAN.
type Server struct {
	listener net.Listener
	payload  func() (*Payload, error)
}

// NewServer creates a share server listening on an ephemeral port.
// payload is invoked per connection so clients always get a fresh snapshot.
func NewServer(payload func() (*Payload, error)) (*Server, error) {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return nil, fmt.Errorf("listening for share connections: %w", err)
	}
	return &Server{listener: listener, payload: payload}, nil
}

// Addr returns the listen address in host:port form.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Port returns the ephemeral port the server bound to.
func (s *Server) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

// Serve accepts connections until ctx is cancelled or Close is called.
// Every accepted connection receives one JSON document and is closed;
// per-connection failures are logged and do not stop the server.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return ErrServerClosed
			}
			return fmt.Errorf("accepting share connection: %w", err)
		}
		s.handle(conn)
	}
}

// Close stops the server.
func (s *Server) Close() error {
	return s.listener.Close()
}

func (s *Server) handle(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	payload, err := s.payload()
	if err != nil {
		logging.Warn("building share payload", "err", err)
		return
	}
	if err := json.NewEncoder(conn).Encode(payload); err != nil {
		logging.Warn("sending share payload", "remote", conn.RemoteAddr().String(), "err", err)
		return
	}
	logging.Info("shared tasks", "remote", conn.RemoteAddr().String())
}

// Fetch connects to a sharing instance and reads its payload.
func Fetch(ctx context.Context, addr string) (*Payload, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}

	data, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("reading shared tasks: %w", err)
	}
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parsing shared tasks: %w", err)
	}
	return &payload, nil
}

// MergeTasks converts payload tasks and merges them into existing, skipping
// exact duplicates. Returns the merged list and how many were added.
func MergeTasks(existing []*task.Task, incoming []TaskJSON) ([]*task.Task, int, error) {
	added := 0
	for _, in := range incoming {
		t, err := task.New(in.Name, in.Due, in.Priority, in.Notes)
		if err != nil {
			logging.Warn("skipping invalid shared task", "name", in.Name, "err", err)
			continue
		}
		if containsTask(existing, t) {
			continue
		}
		existing = append(existing, t)
		added++
	}
	task.Sort(existing)
	return existing, added, nil
}

// MergeDaily merges incoming daily lines into existing entries, skipping
// duplicates by rendered line. Completion markers from the remote side are
// cleared; finishing a task elsewhere should not finish it here.
func MergeDaily(existing []*daily.Entry, incoming []string) ([]*daily.Entry, int) {
	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[e.Time+" - "+e.Text] = true
	}

	added := 0
	for _, line := range incoming {
		e := daily.ParseLine(line)
		if e == nil {
			continue
		}
		e.Completed = false
		key := e.Time + " - " + e.Text
		if seen[key] {
			continue
		}
		seen[key] = true
		existing = append(existing, e)
		added++
	}
	daily.SortByTime(existing)
	return existing, added
}

// ReplaceDaily converts payload lines as received, completion marks
// included. Replace-mode import promises a byte-level overwrite, so unlike
// MergeDaily nothing is cleared.
func ReplaceDaily(incoming []string) []*daily.Entry {
	var entries []*daily.Entry
	for _, line := range incoming {
		if e := daily.ParseLine(line); e != nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func containsTask(tasks []*task.Task, t *task.Task) bool {
	for _, existing := range tasks {
		if existing.Matches(t.Name, t.DueString(), t.Priority) && existing.Notes == t.Notes {
			return true
		}
	}
	return false
}
