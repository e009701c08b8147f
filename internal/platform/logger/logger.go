package logger

import (
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case Debug:
		return zapcore.DebugLevel
	case Warn:
		return zapcore.WarnLevel
	case Error:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)

	Sync() error
}

// ZapLogger adapta zap a la interfaz de campos en mapa que usan handlers y servicios.
type ZapLogger struct {
	z *zap.Logger
}

type Options struct {
	Level  Level
	Format Format
	App    string
}

func New(opts Options) (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(opts.Level.zapLevel())
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.OutputPaths = []string{"stdout"}
	cfg.DisableStacktrace = true

	if opts.Format != FormatJSON {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if app := strings.TrimSpace(opts.App); app != "" {
		z = z.With(zap.String("app", app))
	}
	return &ZapLogger{z: z}, nil
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - APP_NAME=barkbuddy (opcional)
func NewFromEnv() (Logger, error) {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
	})
}

// Wrap permite inyectar un *zap.Logger ya construido (tests con zaptest/observer).
func Wrap(z *zap.Logger) Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &ZapLogger{z: z}
}

func Nop() Logger {
	return &ZapLogger{z: zap.NewNop()}
}

func (l *ZapLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &ZapLogger{z: l.z.With(toZapFields(fields)...)}
}

func (l *ZapLogger) Debug(msg string, fields map[string]any) { l.z.Debug(msg, toZapFields(fields)...) }
func (l *ZapLogger) Info(msg string, fields map[string]any)  { l.z.Info(msg, toZapFields(fields)...) }
func (l *ZapLogger) Warn(msg string, fields map[string]any)  { l.z.Warn(msg, toZapFields(fields)...) }
func (l *ZapLogger) Error(msg string, fields map[string]any) { l.z.Error(msg, toZapFields(fields)...) }

func (l *ZapLogger) Sync() error {
	return l.z.Sync()
}

func toZapFields(m map[string]any) []zap.Field {
	if len(m) == 0 {
		return nil
	}
	// Orden estable de keys (útil en tests/logs).
	keys := make([]string, 0, len(m))
	for k := range m {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		if err, ok := m[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, m[k]))
	}
	return out
}
