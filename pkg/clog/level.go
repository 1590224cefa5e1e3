package clog

import (
	"log/slog"

	"github.com/taskflow/taskflow/pkg/cerr"
)

type Level int

const (
	LevelDebug Level = iota + 1
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a slog level, defaulting to debug.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelDebug
	}
	return level
}

// CodeToLevel decides how loudly a failed mutation should be logged.
// Caller mistakes (validation, bad transitions, unknown ids) are routine.
func CodeToLevel(code cerr.Code) Level {
	switch code {
	case cerr.Canceled:
		return LevelInfo
	case cerr.InvalidArgument:
		return LevelInfo
	case cerr.NotFound:
		return LevelInfo
	case cerr.AlreadyExists:
		return LevelInfo
	case cerr.FailedPrecondition:
		return LevelInfo
	case cerr.Aborted:
		return LevelInfo
	case cerr.OutOfRange:
		return LevelInfo
	case cerr.Unauthenticated:
		return LevelInfo
	}
	return LevelError
}
