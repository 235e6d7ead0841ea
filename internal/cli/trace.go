// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// trace.go - Diagnostic trace for the dispatcher.
//
// The trace never reaches the user's terminal. It records command
// resolution, swallowed load failures and execution timing into a rotated
// file named by the traceFile setting, or nowhere when that is unset.

package cli

import (
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the trace file.
const (
	traceMaxSizeMB  = 10
	traceMaxBackups = 3
	traceMaxAgeDays = 28
)

// NewTraceLogger creates the diagnostic logger. An empty path discards
// every entry. The returned closer releases the trace file.
func NewTraceLogger(path string) (*logrus.Logger, io.Closer) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	log.SetLevel(logrus.InfoLevel)

	if path == "" {
		log.SetOutput(io.Discard)
		return log, nopCloser{}
	}

	fileWriter := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    traceMaxSizeMB,
		MaxBackups: traceMaxBackups,
		MaxAge:     traceMaxAgeDays,
	}
	log.SetOutput(fileWriter)
	return log, fileWriter
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
