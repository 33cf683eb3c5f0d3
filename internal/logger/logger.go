/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides a configurable structured logger that can be
// silenced when the engine runs inside a bundler process.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var logger = newLogger(os.Stderr)

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "factor-overrides",
		Level:  log.InfoLevel,
	})
}

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	level := logger.GetLevel()
	logger = newLogger(w)
	logger.SetLevel(level)
}

// SetVerbose enables debug output.
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(log.DebugLevel)
		return
	}
	logger.SetLevel(log.InfoLevel)
}

// Warn logs a warning message with key/value pairs.
func Warn(msg string, keyvals ...any) {
	logger.Warn(msg, keyvals...)
}

// Info logs an informational message with key/value pairs.
func Info(msg string, keyvals ...any) {
	logger.Info(msg, keyvals...)
}

// Debug logs a debug message with key/value pairs.
func Debug(msg string, keyvals ...any) {
	logger.Debug(msg, keyvals...)
}

// Error logs an error message with key/value pairs.
func Error(msg string, keyvals ...any) {
	logger.Error(msg, keyvals...)
}
