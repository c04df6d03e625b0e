package logx

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, false))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, false))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestPrintfAndPrintlnDoNotPanic(t *testing.T) {
	orig := UserLevel
	defer func() { UserLevel = orig }()

	UserLevel = slog.LevelDebug
	Printf(slog.LevelInfo, "value=%d", 42)
	Println(slog.LevelWarn, "literal message")

	UserLevel = slog.LevelError
	Printf(slog.LevelInfo, "suppressed below UserLevel")
}
