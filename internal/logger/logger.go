// Package logger provides the process-wide logger for the pbitheme command.
// Library packages never log on their own; the command hands them component
// loggers created here.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is the global logger used by the command.
var Logger *log.Logger

// output is where the global logger and component loggers write.
var output io.Writer = os.Stderr

// logFile is the file opened by Configure, if any.
var logFile *os.File

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.WarnLevel)
}

// Configure sets the level and destination of the global logger. An empty
// level falls back to the PBITHEME_LOG_LEVEL environment variable and then
// to warn. A non-empty file receives the log instead of stderr.
func Configure(level string, file string) error {
	if level == "" {
		level = os.Getenv("PBITHEME_LOG_LEVEL")
	}

	if err := Close(); err != nil {
		return err
	}
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		logFile = f
		output = f
	}

	Logger = log.New(output)
	Logger.SetTimeFormat("")
	Logger.SetLevel(ParseLevel(level))
	return nil
}

// Close closes the log file opened by Configure and sends the log back to
// stderr, keeping the level.
func Close() error {
	level := Logger.GetLevel()
	output = os.Stderr
	Logger = log.New(output)
	Logger.SetTimeFormat("")
	Logger.SetLevel(level)
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// SetOutput redirects the global logger, keeping its level. An open log
// file is closed.
func SetOutput(w io.Writer) {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	output = w
	level := Logger.GetLevel()
	Logger = log.New(w)
	Logger.SetTimeFormat("")
	Logger.SetLevel(level)
}

// ParseLevel converts a level name to a log level. Unknown names map to warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// NewComponent creates a logger for one component (e.g. "builder") with the
// same destination and level as the global logger.
func NewComponent(prefix string) *log.Logger {
	styles := log.DefaultStyles()

	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("33")).
		Foreground(lipgloss.Color("15"))

	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("196")).
		Foreground(lipgloss.Color("15"))

	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("240")).
		Foreground(lipgloss.Color("15"))

	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("214")).
		Foreground(lipgloss.Color("15"))

	styles.Keys["page"] = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	styles.Keys["visual"] = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styles.Keys["object"] = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	styles.Keys["property"] = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styles.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	l := log.NewWithOptions(output, log.Options{
		Prefix: prefix + " ",
	})
	l.SetStyles(styles)
	l.SetLevel(Logger.GetLevel())
	return l
}
