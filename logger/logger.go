// Package logger provides centralized logging for the application.
// File: logger/logger.go
package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ------------------- global loggers -------------------

// four logger levels accessible throughout the application
var (
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger
	Debug *log.Logger
)

// ------------------- logger initialization -------------------

// InitLogger creates or reinitializes the logging system. It:
// - Ensures the log directory (LOG_DIR, default `./logs`) exists.
// - Creates a timestamped log file there.
// - Writes logs to both the file and stdout.
// - Configures separate loggers (Info, Warn, Error, Debug) with consistent prefixes & flags.
// When the log file cannot be created (read-only filesystems, test
// sandboxes) logging degrades to stdout only.
func InitLogger() error {
	writer := io.Writer(os.Stdout)

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "./logs"
	}

	if err := os.MkdirAll(logDir, 0700); err == nil {
		logFileName := filepath.Join(logDir, time.Now().Format("2006-01-02_15-04-05")+".log")
		file, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec
		if err == nil {
			writer = io.MultiWriter(os.Stdout, file)
		}
	}

	// configure each logger
	Info = log.New(writer, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warn = log.New(writer, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(writer, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(writer, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	return nil
}

// SetLogLevel adjusts the Debug logger's output depending on environment.
// Production discards debug output entirely; every other environment
// keeps it.
func SetLogLevel(env string) {
	if env == "production" {
		Debug.SetOutput(io.Discard)
	}
}

// init is called automatically at package load time so that every
// package can log without wiring.
func init() {
	if err := InitLogger(); err != nil {
		log.Fatalf("Failed to initialise custom logger: %v", err)
	}
}
