package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "nível %q", in)
	}
}

func TestNewLogger_DoesNotPanic(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		l := NewLogger("debug", env)
		assert.NotPanics(t, func() {
			l.Debug("debug", map[string]interface{}{"k": 1})
			l.Info("info", nil)
			l.Warn("warn", map[string]interface{}{"k": "v"})
			l.Error("error", errors.New("boom"))
		})
	}
}
