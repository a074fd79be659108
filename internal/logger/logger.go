// Package logger writes coursecal's diagnostic log: a rotating file under the
// config directory, mirrored to stderr in debug mode. Every line carries the
// storage backend and, once known, the command being run. Timestamps follow
// the calendar's timezone setting so they line up with rendered events.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/coursecal/internal/constants"
)

const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28

	timeFormat = constants.DateTimeFormat + ":05 MST"
)

// Logger is nil until Init runs; the helpers below are no-ops until then.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Backend is "sqlite", "postgres" or "json"; empty omits the field.
	Backend string
	// Location stamps lines in the calendar timezone; nil means local time.
	Location *time.Location
}

// LogFile returns the path of the rotating log file under configDir.
func LogFile(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

func Init(cfg Config) error {
	logFile := LogFile(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return err
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	level := log.WarnLevel
	if cfg.Debug {
		out = io.MultiWriter(os.Stderr, out)
		level = log.DebugLevel
	}

	var fields []interface{}
	if cfg.Backend != "" {
		fields = append(fields, "backend", cfg.Backend)
	}

	Logger = log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
		TimeFunction:    inLocation(cfg.Location),
		Level:           level,
		Prefix:          constants.AppName,
		Fields:          fields,
	})
	return nil
}

func inLocation(loc *time.Location) log.TimeFunction {
	if loc == nil {
		return func(t time.Time) time.Time { return t }
	}
	return func(t time.Time) time.Time { return t.In(loc) }
}

// SetLocation switches timestamps to loc, typically the timezone setting
// read after the store loads.
func SetLocation(loc *time.Location) {
	if Logger != nil {
		Logger.SetTimeFunction(inLocation(loc))
	}
}

// SetCommand tags all later lines with the command being run.
func SetCommand(name string) {
	if Logger != nil && name != "" {
		Logger = Logger.With("cmd", name)
	}
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
