// Package logger builds the zap logger used by the command line tools.
package logger

import (
	"io"
	"os"

	"github.com/oomph-ac/wallrun/settings"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger bundles the structured logger with its sugared form and whatever
// needs closing when the program exits.
type Logger struct {
	Log   *zap.Logger
	Sugar *zap.SugaredLogger

	closer io.Closer
}

// New builds a logger writing to console (when enabled) and to a rotating file
// when cfg.File is set.
func New(cfg settings.LoggingSettings, console io.Writer) *Logger {
	lvl := parseLevel(cfg.Level)
	var cores []zapcore.Core

	if console != nil {
		consoleEncoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			MessageKey:       "msg",
			CallerKey:        "caller",
			EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
			EncodeLevel:      zapcore.CapitalColorLevelEncoder,
			EncodeCaller:     zapcore.ShortCallerEncoder,
			ConsoleSeparator: " ",
		})
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.AddSync(console), lvl))
	}

	l := &Logger{}
	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		fileEncoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			MessageKey:     "msg",
			CallerKey:      "caller",
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		})
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(fileWriter), lvl))
		l.closer = fileWriter
	}

	l.Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	l.Sugar = l.Log.Sugar()
	return l
}

// Default builds a console logger on stdout.
func Default(cfg settings.LoggingSettings) *Logger {
	return New(cfg, os.Stdout)
}

// Debugf is suitable as movement.SimulationOptions.Debugf.
func (l *Logger) Debugf(format string, args ...any) {
	l.Sugar.Debugf(format, args...)
}

// Close flushes buffered entries and closes the log file, if any.
func (l *Logger) Close() error {
	_ = l.Log.Sync()
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
