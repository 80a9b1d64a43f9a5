package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "heightview.log")

	err := Setup(Options{
		Level: "debug",
		File: FileConfig{
			Path:       logFile,
			MaxSizeMB:  1, // smallest size lumberjack allows
			MaxBackups: 2,
			MaxAgeDays: 1,
		},
	})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer Sync()

	// ~15000 lines of ~250 bytes crosses 1MB at least once.
	msg := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		Sugar.Infof("vertex batch %d: %s", i, msg)
	}
	Sync()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	var rotated int
	for _, e := range entries {
		if e.Name() == "heightview.log" {
			continue
		}
		if strings.HasPrefix(e.Name(), "heightview-20") {
			rotated++
		}
	}
	if rotated == 0 {
		t.Errorf("no rotated files in %v", entries)
	}
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Setup(Options{Level: tt.level, Format: FormatJSON, Console: &buf}); err != nil {
				t.Fatalf("Setup: %v", err)
			}

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			out := buf.String()
			for _, exp := range tt.expected {
				if !strings.Contains(out, `"level":"`+exp+`"`) {
					t.Errorf("expected %s in output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(out, `"level":"`+exc+`"`) {
					t.Errorf("unexpected %s in output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestJSONFields(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup(Options{Level: "info", Format: FormatJSON, Console: &buf}); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	Named("loader").Info("heightmap loaded", zap.Int("width", 64), zap.String("source", "hill.png"))
	Sync()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not one JSON object: %v\n%s", err, buf.String())
	}
	if entry["logger"] != "loader" || entry["msg"] != "heightmap loaded" {
		t.Errorf("entry = %v", entry)
	}
	if entry["width"] != float64(64) || entry["source"] != "hill.png" {
		t.Errorf("fields = %v", entry)
	}
}

func TestSetupRejectsBadOptions(t *testing.T) {
	if err := Setup(Options{Level: "loud"}); err == nil {
		t.Error("Setup accepted unknown level")
	}
	if err := Setup(Options{Format: "xml", Console: &bytes.Buffer{}}); err == nil {
		t.Error("Setup accepted unknown format")
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/test.log")

	if cfg.Path != "/tmp/test.log" {
		t.Errorf("expected path /tmp/test.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 50 || cfg.MaxBackups != 3 || cfg.MaxAgeDays != 7 {
		t.Errorf("unexpected limits %+v", cfg)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}
