// Package logging provides the lab's rotating file logger.
package logging

import (
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the log file.
const (
	MaxSizeMB  = 5
	MaxBackups = 3
	MaxAgeDays = 28
)

// New returns a logger writing to a rotating file at path. An empty path
// yields a logger that discards everything. The returned closer releases the
// file and is never nil.
func New(path string) (*log.Logger, io.Closer) {
	if path == "" {
		return log.New(io.Discard, "", 0), nopCloser{}
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    MaxSizeMB, // megabytes
		MaxBackups: MaxBackups,
		MaxAge:     MaxAgeDays, // days
		Compress:   true,
	}
	return log.New(w, "", log.LstdFlags), w
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
