// Package mysqlsync synchronizes the local task files with a shared MySQL
// server on the LAN.
package mysqlsync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/daily"
	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/task"
)

// connectTimeout bounds connection attempts so a dead server fails fast
// instead of hanging the UI.
const connectTimeout = 5 * time.Second

// Connection test outcomes, distinguished so the caller can tell the user
// what to fix.
var (
	ErrUnreachable     = errors.New("mysql server unreachable")
	ErrAccessDenied    = errors.New("mysql access denied, check user and password")
	ErrUnknownDatabase = errors.New("mysql database does not exist")
)

// Client holds an open connection to the sync database.
type Client struct {
	db *sql.DB
}

// DSN builds the driver connection string from the sync settings.
func DSN(cfg config.SyncConfig) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Database
	mc.Timeout = connectTimeout
	mc.ReadTimeout = connectTimeout
	mc.WriteTimeout = connectTimeout
	return mc.FormatDSN()
}

// Connect opens the sync database and creates the tables when missing.
func Connect(ctx context.Context, cfg config.SyncConfig) (*Client, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening sync database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, classify(err)
	}

	c := &Client{db: db}
	if err := c.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

// Close releases the database connection.
func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			due_date VARCHAR(10) NOT NULL,
			priority INT NOT NULL,
			notes TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS daily_tasks (
			id INT AUTO_INCREMENT PRIMARY KEY,
			position INT NOT NULL,
			line VARCHAR(512) NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating sync tables: %w", err)
		}
	}
	return nil
}

// Push replaces the server copy with the local lists. The server is treated
// as a dumb mirror: delete everything, insert everything.
func (c *Client) Push(ctx context.Context, tasks []*task.Task, entries []*daily.Entry) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting push transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clearing remote tasks: %w", err)
	}
	for _, t := range tasks {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (name, due_date, priority, notes) VALUES (?, ?, ?, ?)`,
			t.Name, t.DueString(), t.Priority, t.Notes,
		)
		if err != nil {
			return fmt.Errorf("inserting remote task: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_tasks`); err != nil {
		return fmt.Errorf("clearing remote daily tasks: %w", err)
	}
	for i, e := range entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO daily_tasks (position, line) VALUES (?, ?)`,
			i, e.Line(),
		)
		if err != nil {
			return fmt.Errorf("inserting remote daily task: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing push: %w", err)
	}
	logging.Info("pushed to sync server", "tasks", len(tasks), "daily", len(entries))
	return nil
}

// Pull reads the server copy. The caller overwrites the local files with
// the result.
func (c *Client) Pull(ctx context.Context) ([]*task.Task, []*daily.Entry, error) {
	tasks, err := c.pullTasks(ctx)
	if err != nil {
		return nil, nil, err
	}
	entries, err := c.pullDaily(ctx)
	if err != nil {
		return nil, nil, err
	}
	logging.Info("pulled from sync server", "tasks", len(tasks), "daily", len(entries))
	return tasks, entries, nil
}

func (c *Client) pullTasks(ctx context.Context) ([]*task.Task, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT name, due_date, priority, notes FROM tasks`)
	if err != nil {
		return nil, fmt.Errorf("querying remote tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*task.Task
	for rows.Next() {
		var name, due string
		var priority int
		var notes sql.NullString
		if err := rows.Scan(&name, &due, &priority, &notes); err != nil {
			return nil, fmt.Errorf("scanning remote task: %w", err)
		}
		t, err := task.New(name, due, priority, notes.String)
		if err != nil {
			logging.Warn("skipping invalid remote task", "name", name, "err", err)
			continue
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating remote tasks: %w", err)
	}
	task.Sort(tasks)
	return tasks, nil
}

func (c *Client) pullDaily(ctx context.Context) ([]*daily.Entry, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT line FROM daily_tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying remote daily tasks: %w", err)
	}
	defer rows.Close()

	var entries []*daily.Entry
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scanning remote daily task: %w", err)
		}
		if e := daily.ParseLine(line); e != nil {
			entries = append(entries, e)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating remote daily tasks: %w", err)
	}
	return entries, nil
}

// TestConnection checks the sync server without keeping a connection open.
// The returned error is one of the sentinel values above when the failure
// mode is recognizable.
func TestConnection(ctx context.Context, cfg config.SyncConfig) error {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return fmt.Errorf("opening sync database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return classify(err)
	}
	return nil
}

// ProbePort checks whether anything is listening on the MySQL port. Cheaper
// than a full handshake, used before offering sync in the UI.
func ProbePort(host string, port int) bool {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), 2*time.Second)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// classify maps driver errors to the sentinel errors where possible.
func classify(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1045: // ER_ACCESS_DENIED_ERROR
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		case 1049: // ER_BAD_DB_ERROR
			return fmt.Errorf("%w: %v", ErrUnknownDatabase, err)
		}
		return fmt.Errorf("mysql error: %w", err)
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}
