package mysqlsync

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"

	"github.com/taskdeck/taskdeck/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.SyncConfig{
		Host:     "192.168.1.10",
		Port:     3306,
		User:     "todo",
		Password: "secret",
		Database: "todo_app",
	}

	dsn := DSN(cfg)

	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("ParseDSN: %v", err)
	}
	if parsed.Addr != "192.168.1.10:3306" {
		t.Errorf("addr = %q", parsed.Addr)
	}
	if parsed.User != "todo" || parsed.Passwd != "secret" {
		t.Errorf("credentials = %q/%q", parsed.User, parsed.Passwd)
	}
	if parsed.DBName != "todo_app" {
		t.Errorf("database = %q", parsed.DBName)
	}
	if parsed.Timeout != connectTimeout {
		t.Errorf("timeout = %v, want %v", parsed.Timeout, connectTimeout)
	}
	if strings.Contains(dsn, " ") {
		t.Errorf("dsn contains spaces: %q", dsn)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"access denied", &mysql.MySQLError{Number: 1045, Message: "Access denied"}, ErrAccessDenied},
		{"unknown database", &mysql.MySQLError{Number: 1049, Message: "Unknown database"}, ErrUnknownDatabase},
		{"network failure", errors.New("dial tcp: connection refused"), ErrUnreachable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyOtherMySQLError(t *testing.T) {
	err := &mysql.MySQLError{Number: 1146, Message: "Table doesn't exist"}
	got := classify(err)
	if errors.Is(got, ErrAccessDenied) || errors.Is(got, ErrUnknownDatabase) || errors.Is(got, ErrUnreachable) {
		t.Errorf("unrelated server error misclassified: %v", got)
	}
	var myErr *mysql.MySQLError
	if !errors.As(got, &myErr) {
		t.Error("original driver error should stay unwrappable")
	}
}

func TestProbePortClosed(t *testing.T) {
	// Port 9 (discard) is closed on test machines.
	if ProbePort("127.0.0.1", 9) {
		t.Error("probe of closed port reported a listener")
	}
}
