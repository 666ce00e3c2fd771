package go_cipher

import (
	"os"

	"github.com/go-i2p/logger"
)

// logInstance is the shared go-i2p/logger used by the package level
// logging helpers below. The underlying logger is configured through the
// DEBUG_I2P and WARNFAIL_I2P environment variables.
var logInstance = logger.GetGoI2PLogger()

// LogInit initializes the logger with the specified level
func LogInit(level int) {
	logger.InitializeGoI2PLogger()

	switch level {
	case DEBUG:
		os.Setenv("DEBUG_I2P", "debug")
	case INFO:
		os.Setenv("DEBUG_I2P", "debug")
	case WARNING:
		os.Setenv("DEBUG_I2P", "warn")
	case ERROR:
		os.Setenv("DEBUG_I2P", "error")
	case FATAL:
		os.Setenv("DEBUG_I2P", "fatal")
		os.Setenv("WARNFAIL_I2P", "true")
	default:
		os.Setenv("DEBUG_I2P", "debug")
	}
}

// Debug logs a debug message with optional arguments.
func Debug(message string, args ...interface{}) {
	if len(args) == 0 {
		logInstance.Debug(message)
		return
	}
	logInstance.Debugf(message, args...)
}

// Info logs an info message with optional arguments.
// Note: Info maps to Warn level in the logger.
func Info(message string, args ...interface{}) {
	if len(args) == 0 {
		logInstance.Warn(message)
		return
	}
	logInstance.Warnf(message, args...)
}

// Warning logs a warning message with optional arguments.
func Warning(message string, args ...interface{}) {
	if len(args) == 0 {
		logInstance.Warn(message)
		return
	}
	logInstance.Warnf(message, args...)
}

// Error logs an error message with optional arguments.
func Error(message string, args ...interface{}) {
	if len(args) == 0 {
		logInstance.Error(message)
		return
	}
	logInstance.Errorf(message, args...)
}

// Fatal logs a fatal message with optional arguments.
// Note: Fatal maps to Error level in the logger and sets WARNFAIL_I2P.
func Fatal(message string, args ...interface{}) {
	os.Setenv("WARNFAIL_I2P", "true")
	if len(args) == 0 {
		logInstance.Error(message)
		return
	}
	logInstance.Errorf(message, args...)
}
