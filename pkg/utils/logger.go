package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync" // For thread-safe initialization

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFile is where dropdown hosts write their log, relative to the working
// directory
const LogFile = ".dropdown/dropdown.log"

// Logger writes host activity to a rotating log file. Terminal hosts own
// stdout, so nothing is ever printed.
type Logger struct {
	mu            sync.Mutex
	logger        *log.Logger
	debug         bool
	jsonMode      bool
	correlationID string
}

var (
	globalLogger *Logger
	once         sync.Once
)

// GetLogger returns the singleton instance of Logger.
// It initializes the logger with a file handler that rotates logs.
// The debug parameter enables Debugf output and can be changed on later calls.
func GetLogger(debug bool) *Logger {
	once.Do(func() {
		logFile := &lumberjack.Logger{
			Filename:   LogFile,
			MaxSize:    15, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		globalLogger = &Logger{
			logger: log.New(logFile, "", log.LstdFlags),
		}
	})
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.debug = debug
	globalLogger.jsonMode = os.Getenv("DROPDOWN_JSON_LOGS") == "1"
	if cid := os.Getenv("DROPDOWN_CORRELATION_ID"); cid != "" {
		globalLogger.correlationID = cid
	}
	return globalLogger
}

// Close closes the logger resources.
func (w *Logger) Close() error {
	if logFile, ok := w.logger.Writer().(*lumberjack.Logger); ok {
		return logFile.Close()
	}
	return nil
}

func (w *Logger) encode(record map[string]any) {
	record["cid"] = w.correlationID
	_ = json.NewEncoder(w.logger.Writer()).Encode(record)
}

// Log logs a general message only to the log file.
func (w *Logger) Log(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.jsonMode {
		w.encode(map[string]any{"level": "info", "msg": message})
		return
	}
	w.logger.Print(message)
}

// Logf logs a formatted general message only to the log file.
func (w *Logger) Logf(format string, v ...interface{}) {
	w.Log(fmt.Sprintf(format, v...))
}

// LogError logs an error
func (w *Logger) LogError(err error) {
	if err == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.jsonMode {
		w.encode(map[string]any{"level": "error", "error": err.Error()})
		return
	}
	w.logger.Printf("Error: %s", err)
}

// Debugf logs a formatted message when debug output is enabled. Ignored
// dropdown events are reported here.
func (w *Logger) Debugf(format string, v ...interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.debug {
		return
	}
	message := fmt.Sprintf(format, v...)
	if w.jsonMode {
		w.encode(map[string]any{"level": "debug", "msg": message})
		return
	}
	w.logger.Printf("Debug: %s", message)
}

// LogEvent records one dropdown event and whether it changed anything
func (w *Logger) LogEvent(source, event string, applied bool) {
	if applied {
		w.Logf("Event: %s %s", source, event)
		return
	}
	w.Debugf("Ignored event: %s %s", source, event)
}
