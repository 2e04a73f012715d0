package shared

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tu "github.com/desertthunder/listenr/internal/testing"
)

func TestLogger(t *testing.T) {
	t.Run("NewLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("navigated", "path", "/diary")

		if !strings.Contains(buf.String(), "path=/diary") {
			t.Errorf("expected key/value in output, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "listenr.log")

		logger, closer, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		tu.AssertDirExists(t, filepath.Dir(path))
		WithLogger(logger, "component", "tui").Error("boom")
		if err := closer.Close(); err != nil {
			t.Fatalf("failed to close log file: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if !strings.Contains(string(data), "component=tui") {
			t.Errorf("expected log entry in file, got %q", data)
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("ids should be unique")
	}
	if len(a) != 36 {
		t.Errorf("expected a uuid string, got %q", a)
	}
}

func TestShareURL(t *testing.T) {
	tc := []struct {
		name string
		base string
		path string
		want string
	}{
		{"profile", "https://musicboxd.example", "/u/alice", "https://musicboxd.example/u/alice"},
		{"trailing slash", "https://musicboxd.example/", "/l/xyz789", "https://musicboxd.example/l/xyz789"},
		{"relative path", "http://localhost:5173", "album/A1", "http://localhost:5173/album/A1"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShareURL(tt.base, tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ShareURL() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("invalid base", func(t *testing.T) {
		if _, err := ShareURL("localhost", "/u/alice"); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestOpenBrowser(t *testing.T) {
	original := getRuntime
	defer func() { getRuntime = original }()

	getRuntime = func() string { return "plan9" }
	if err := OpenBrowser("https://musicboxd.example/u/alice"); err == nil {
		t.Error("expected unsupported platform error")
	}

	for _, rt := range []string{"darwin", "linux", "windows"} {
		cmd, err := command(rt, "https://musicboxd.example")
		if err != nil {
			t.Errorf("%s: unexpected error %v", rt, err)
			continue
		}
		if !strings.Contains(strings.Join(cmd.Args, " "), "https://musicboxd.example") {
			t.Errorf("%s: url missing from %v", rt, cmd.Args)
		}
	}
}

func TestOpenDatabase(t *testing.T) {
	db, err := OpenDatabase(DatabaseConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("INSERT INTO metadata (key, value) VALUES ('k', 'v')"); err != nil {
		t.Errorf("metadata table should exist: %v", err)
	}
}
