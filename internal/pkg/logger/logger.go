package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// ZapLogger é a implementação concreta da interface Logger sobre o zap.
type ZapLogger struct {
	l *zap.Logger
}

// NewLogger cria o Logger da aplicação.
// env "production" gera JSON; qualquer outro valor gera saída de console legível.
func NewLogger(level, env string) Logger {
	lvl := parseLevel(level)

	var cfg zap.Config
	if strings.EqualFold(env, "production") {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		cfg.DisableStacktrace = true
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	l, err := cfg.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		// Fallback para um logger básico se a configuração falhar
		l, _ = zap.NewProduction()
	}

	return &ZapLogger{l: l.With(zap.String("service", "gocorretora"))}
}

// NewNop retorna um Logger que descarta tudo (usado nos testes).
func NewNop() Logger {
	return &ZapLogger{l: zap.NewNop()}
}

// Sync descarrega buffers pendentes; chamado no encerramento do processo.
func (z *ZapLogger) Sync() error {
	return z.l.Sync()
}

func (z *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	z.l.Debug(msg, toZapFields(fields)...)
}

func (z *ZapLogger) Info(msg string, fields map[string]interface{}) {
	z.l.Info(msg, toZapFields(fields)...)
}

func (z *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	z.l.Warn(msg, toZapFields(fields)...)
}

func (z *ZapLogger) Error(msg string, err error) {
	z.l.Error(msg, zap.Error(err))
}

func (z *ZapLogger) Fatal(msg string, err error) {
	z.l.Fatal(msg, zap.Error(err))
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

// parseLevel converte uma string para zapcore.Level (padrão: info).
func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
