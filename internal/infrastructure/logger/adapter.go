package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"computer-use-agent/internal/application/port/output"
)

var _ output.LoggerPort = (*Adapter)(nil)

// Adapter backs the logger port with zap: full JSON log of the run in
// ./log/<timestamp>_<task>.log, warnings and up mirrored to stderr.
type Adapter struct {
	sugar *zap.SugaredLogger
	file  *os.File
}

func New(task string) (*Adapter, error) {
	safeName := sanitize(task)
	filename := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02_15-04-05"), safeName)

	if err := os.MkdirAll("log", 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	file, err := os.Create(filepath.Join("log", filename))
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), zapcore.DebugLevel),
		zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.AddSync(os.Stderr), zapcore.WarnLevel),
	)

	return &Adapter{
		sugar: zap.New(core).Sugar(),
		file:  file,
	}, nil
}

func (l *Adapter) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *Adapter) Info(msg string, args ...any)  { l.sugar.Infow(msg, args...) }
func (l *Adapter) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, args...) }
func (l *Adapter) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }

func (l *Adapter) WithField(key string, value any) output.LoggerPort {
	return &Adapter{sugar: l.sugar.With(key, value), file: l.file}
}

func (l *Adapter) WithFields(fields map[string]any) output.LoggerPort {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Adapter{sugar: l.sugar.With(args...), file: l.file}
}

func (l *Adapter) Close() error {
	_ = l.sugar.Sync()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// sanitize makes the task text safe as a file name component.
func sanitize(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			result = append(result, r)
		} else {
			result = append(result, '_')
		}
	}
	s = string(result)
	if s == "" {
		return "task"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
