package logs

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

type Level string

const (
	INFO  Level = "INFO"
	WARN  Level = "WARN"
	ERROR Level = "ERROR"
	DEBUG Level = "DEBUG"
)

// levelPriority orders levels, higher value = more severe
var levelPriority = map[Level]int{
	DEBUG: 1,
	INFO:  2,
	WARN:  3,
	ERROR: 4,
}

// ParseLevel maps a config string onto a Level. Unknown values fall back to INFO.
func ParseLevel(s string) Level {
	lvl := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelPriority[lvl]; ok {
		return lvl
	}
	return INFO
}

type Entry struct {
	TimeStamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Component string    `json:"component,omitempty"`
	Message   string    `json:"message"`
}

// Logger keeps the most recent entries in memory so the dashboard can expose
// them and the insights analyzer can scan them.
type Logger struct {
	mu      sync.Mutex
	entries []Entry
	maxSize int
	level   Level
	mirror  *log.Logger
}

// level: minimum level recorded
//
// maxSize: maximum number of entries kept in memory
func NewLogger(maxSize int, level Level) *Logger {
	return &Logger{
		entries: make([]Entry, 0, maxSize),
		maxSize: maxSize,
		level:   level,
	}
}

// Mirror also writes every recorded entry to out (typically log.Default()).
func (l *Logger) Mirror(out *log.Logger) *Logger {
	l.mu.Lock()
	l.mirror = out
	l.mu.Unlock()
	return l
}

// With returns a view of the logger that tags entries with a component name.
// Entries share the parent's buffer.
func (l *Logger) With(component string) *ComponentLogger {
	return &ComponentLogger{parent: l, component: component}
}

func (l *Logger) log(level Level, component, msg string) {
	if levelPriority[level] < levelPriority[l.level] {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) >= l.maxSize {
		// drop oldest
		l.entries = l.entries[1:]
	}

	l.entries = append(l.entries, Entry{
		TimeStamp: time.Now(),
		Level:     level,
		Component: component,
		Message:   msg,
	})

	if l.mirror != nil {
		if component != "" {
			l.mirror.Printf("[%s] %s: %s", level, component, msg)
		} else {
			l.mirror.Printf("[%s] %s", level, msg)
		}
	}
}

func (l *Logger) Debug(msg string) { l.log(DEBUG, "", msg) }
func (l *Logger) Info(msg string)  { l.log(INFO, "", msg) }
func (l *Logger) Warn(msg string)  { l.log(WARN, "", msg) }
func (l *Logger) Error(msg string) { l.log(ERROR, "", msg) }

func (l *Logger) Infof(format string, args ...any) { l.log(INFO, "", fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...any) { l.log(WARN, "", fmt.Sprintf(format, args...)) }

// GetLast returns up to n of the newest entries, oldest first.
func (l *Logger) GetLast(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n > len(l.entries) {
		out := make([]Entry, len(l.entries))
		copy(out, l.entries)
		return out
	}
	if n <= 0 {
		return []Entry{}
	}

	start := len(l.entries) - n
	out := make([]Entry, n)
	copy(out, l.entries[start:])
	return out
}

// ComponentLogger tags entries with the component that produced them.
type ComponentLogger struct {
	parent    *Logger
	component string
}

func (c *ComponentLogger) Debugf(format string, args ...any) {
	c.parent.log(DEBUG, c.component, fmt.Sprintf(format, args...))
}

func (c *ComponentLogger) Infof(format string, args ...any) {
	c.parent.log(INFO, c.component, fmt.Sprintf(format, args...))
}

func (c *ComponentLogger) Warnf(format string, args ...any) {
	c.parent.log(WARN, c.component, fmt.Sprintf(format, args...))
}

func (c *ComponentLogger) Errorf(format string, args ...any) {
	c.parent.log(ERROR, c.component, fmt.Sprintf(format, args...))
}
