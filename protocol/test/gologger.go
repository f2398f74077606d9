/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package test is a test package.
package test

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"techtradechain.com/txscheduler/protocol"
)

const (
	// DEBUG debug string
	DEBUG = "DEBUG: "
	// ERROR error string
	ERROR = "ERROR: "
	// INFO info string
	INFO = "INFO: "
	// WARN warn string
	WARN = "WARN: "
	// ValSpace val string with space
	ValSpace = " %v"
)

var (
	_ protocol.Logger = GoLogger{}
	_ protocol.Logger = (*RecordingLogger)(nil)
)

// GoLogger is a golang system log implementation of protocol.Logger, it's for unit test
type GoLogger struct{}

func (GoLogger) print(level string, msg string) {
	log.Print(level + msg)
}

// Debug debug log print
func (l GoLogger) Debug(args ...interface{}) { l.print(DEBUG, fmt.Sprint(args...)) }

// Debugf debug log with format print
func (l GoLogger) Debugf(format string, args ...interface{}) {
	l.print(DEBUG, fmt.Sprintf(format, args...))
}

// Debugw debug log with KV print
func (l GoLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.print(DEBUG, msg+fmt.Sprintf(ValSpace, keysAndValues))
}

// Error error log print
func (l GoLogger) Error(args ...interface{}) { l.print(ERROR, fmt.Sprint(args...)) }

// Errorf error log print
func (l GoLogger) Errorf(format string, args ...interface{}) {
	l.print(ERROR, fmt.Sprintf(format, args...))
}

// Errorw error log print
func (l GoLogger) Errorw(msg string, keysAndValues ...interface{}) {
	l.print(ERROR, msg+fmt.Sprintf(ValSpace, keysAndValues))
}

// Fatal log.Fatal
func (GoLogger) Fatal(args ...interface{}) { log.Fatal(args...) }

// Fatalf log.Fatalf
func (GoLogger) Fatalf(format string, args ...interface{}) { log.Fatalf(format, args...) }

// Fatalw log.Fatalf
func (GoLogger) Fatalw(msg string, keysAndValues ...interface{}) {
	log.Fatalf(msg+ValSpace, keysAndValues)
}

// Info info log print
func (l GoLogger) Info(args ...interface{}) { l.print(INFO, fmt.Sprint(args...)) }

// Infof info log print
func (l GoLogger) Infof(format string, args ...interface{}) {
	l.print(INFO, fmt.Sprintf(format, args...))
}

// Infow info log print
func (l GoLogger) Infow(msg string, keysAndValues ...interface{}) {
	l.print(INFO, msg+fmt.Sprintf(ValSpace, keysAndValues))
}

// Panic log.Panic
func (GoLogger) Panic(args ...interface{}) { log.Panic(args...) }

// Panicf log.Panicf
func (GoLogger) Panicf(format string, args ...interface{}) { log.Panicf(format, args...) }

// Panicw log.Panicf
func (GoLogger) Panicw(msg string, keysAndValues ...interface{}) {
	log.Panicf(msg+ValSpace, keysAndValues)
}

// Warn warn log print
func (l GoLogger) Warn(args ...interface{}) { l.print(WARN, fmt.Sprint(args...)) }

// Warnf warn log print
func (l GoLogger) Warnf(format string, args ...interface{}) {
	l.print(WARN, fmt.Sprintf(format, args...))
}

// Warnw warn log print
func (l GoLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.print(WARN, msg+fmt.Sprintf(ValSpace, keysAndValues))
}

// RecordingLogger keeps every line in memory so tests can assert on them
type RecordingLogger struct {
	GoLogger
	mu    sync.Mutex
	lines []string
}

// NewRecordingLogger create a RecordingLogger
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) record(level, msg string) {
	l.mu.Lock()
	l.lines = append(l.lines, level+msg)
	l.mu.Unlock()
}

// Lines returns the recorded lines
func (l *RecordingLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// Contains reports whether some line with the level prefix contains substr
func (l *RecordingLogger) Contains(level, substr string) bool {
	for _, line := range l.Lines() {
		if strings.HasPrefix(line, level) && strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// Debugf records a debug line
func (l *RecordingLogger) Debugf(format string, args ...interface{}) {
	l.record(DEBUG, fmt.Sprintf(format, args...))
}

// Infof records an info line
func (l *RecordingLogger) Infof(format string, args ...interface{}) {
	l.record(INFO, fmt.Sprintf(format, args...))
}

// Warnf records a warn line
func (l *RecordingLogger) Warnf(format string, args ...interface{}) {
	l.record(WARN, fmt.Sprintf(format, args...))
}

// Warn records a warn line
func (l *RecordingLogger) Warn(args ...interface{}) {
	l.record(WARN, fmt.Sprint(args...))
}

// Errorf records an error line
func (l *RecordingLogger) Errorf(format string, args ...interface{}) {
	l.record(ERROR, fmt.Sprintf(format, args...))
}
