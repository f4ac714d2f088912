package core

import "fmt"

// Logger interface for trace logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// DefaultLogger implements Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() Logger {
	return &DefaultLogger{}
}
