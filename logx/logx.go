// Package logx sets the structured logging conventions every other
// package in this module logs through: a single process-wide
// log/slog.Logger, a verbosity level the host can raise or lower from
// command-line flags, and small level-gated helpers for the common
// "log, then keep going" call sites. Grounded on the teacher's logx/grog
// convention referenced throughout base/exec (logx.UserLevel gating
// Major/Minor command-echo verbosity) and the root-level
// SetDefaultLogger/Printf/Println helpers its own test suite exercises.
package logx

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// UserLevel is the minimum level that reaches the logger. Callers that
// want to log at a level tied to a particular verbosity (e.g. "only show
// this with -v") compare against it directly, the same way base/exec's
// Major/Minor helpers do.
var UserLevel = slog.LevelInfo

// SetDefaultLogger installs a text handler writing to stderr at
// UserLevel as the process-wide slog default. Call once at startup,
// after parsing verbosity flags into UserLevel.
func SetDefaultLogger() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: UserLevel,
	})))
}

// LevelFromFlags resolves a verbosity level from the three mutually
// exclusive command-line switches the rest of the module's CLI entry
// points expose.
func LevelFromFlags(veryVerbose, verbose, quiet bool) slog.Level {
	switch {
	case veryVerbose:
		return slog.LevelDebug
	case verbose:
		return slog.LevelInfo
	case quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Printf logs a formatted message at level if UserLevel permits it,
// otherwise it is a no-op. Used at call sites that already have a
// printf-style message and don't want to build slog attributes.
func Printf(level slog.Level, format string, args ...any) {
	if level < UserLevel {
		return
	}
	slog.Default().Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Println logs msg at level if UserLevel permits it.
func Println(level slog.Level, args ...any) {
	if level < UserLevel {
		return
	}
	slog.Default().Log(context.Background(), level, fmt.Sprint(args...))
}
