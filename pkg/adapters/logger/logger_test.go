package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ideamans/go-l10n"

	"github.com/user/framestep/pkg/ports"
)

func TestConsoleLogger_Levels(t *testing.T) {
	tests := []struct {
		level ports.LogLevel
		want  []string
	}{
		{ports.LevelDebug, []string{"debug", "info", "warn", "error"}},
		{ports.LevelInfo, []string{"info", "warn", "error"}},
		{ports.LevelWarn, []string{"warn", "error"}},
		{ports.LevelQuiet, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			log := NewConsoleWriter(tt.level, &buf)
			log.Debug("debug")
			log.Info("info")
			log.Warn("warn")
			log.Error("error")

			lines := strings.Fields(buf.String())
			if len(lines) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, lines)
			}
			for i := range tt.want {
				if lines[i] != tt.want[i] {
					t.Errorf("line %d: expected %s, got %s", i, tt.want[i], lines[i])
				}
			}
		})
	}
}

func TestConsoleLogger_ComponentAndFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleWriter(ports.LevelInfo, &buf).WithComponent("session")

	log.Info("Exported frame %d to %s", 3, "/tmp/a.png")

	want := "[session] " + l10n.F("Exported frame %d to %s", 3, "/tmp/a.png") + "\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "framestep.log")

	log, err := NewFile(path, ports.LevelInfo)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	log.Debug("hidden")
	log.WithComponent("decodejob").Warn("Decode failed: %s", "boom")
	if err := log.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "hidden") {
		t.Error("debug message must be filtered at info level")
	}
	if !strings.Contains(content, "level=warning") {
		t.Errorf("expected warning entry, got %q", content)
	}
	if !strings.Contains(content, "component=decodejob") {
		t.Errorf("expected component field, got %q", content)
	}
}

func TestNoopLogger(t *testing.T) {
	log := NewNoop()
	log.Error("ignored")
	if log.WithComponent("x") == nil {
		t.Error("WithComponent must return a logger")
	}
}
