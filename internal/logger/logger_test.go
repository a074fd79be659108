package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	err := Init(Config{
		Debug:     false,
		ConfigDir: configDir,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	// Below the warn threshold; must not panic
	Debug("Test debug message")
	Info("Test info message")

	Warn("expansion skipped", "course", "CS101")
	data, err := os.ReadFile(LogFile(configDir))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "expansion skipped") {
		t.Errorf("Log file does not contain warning, got %q", string(data))
	}
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message in debug mode")
	data, err := os.ReadFile(LogFile(configDir))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Test debug message in debug mode") {
		t.Errorf("Debug message missing from log file in debug mode")
	}
}

func TestInitContextFields(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	tokyo := time.FixedZone("JST", 9*60*60)

	if err := Init(Config{ConfigDir: configDir, Backend: "sqlite", Location: tokyo}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	SetCommand("import")
	Warn("course skipped", "course", "CS101")

	data, err := os.ReadFile(LogFile(configDir))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	line := string(data)
	for _, want := range []string{"backend=sqlite", "cmd=import", "course=CS101", "JST"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line missing %q: %q", want, line)
		}
	}
}

func TestSetLocation(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatal(err)
	}
	SetLocation(time.FixedZone("EDT", -4*60*60))
	Warn("after timezone change")

	data, err := os.ReadFile(LogFile(configDir))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "EDT") {
		t.Errorf("timestamp not in configured zone: %q", string(data))
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
	SetCommand("today")
	SetLocation(time.UTC)
}

func TestLogFile(t *testing.T) {
	got := LogFile("/tmp/cc")
	want := filepath.Join("/tmp/cc", "logs", "coursecal.log")
	if got != want {
		t.Errorf("LogFile() = %q, want %q", got, want)
	}
}
