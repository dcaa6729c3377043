// Package logging builds the process-wide zap logger: a colored console
// core on stderr plus an optional plain-text file sink. Color handling is
// delegated to the term package so display formatting and log output agree.
package logging

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/lutrules/internal/config"
	"github.com/backmassage/lutrules/internal/term"
)

const timeLayout = "2006-01-02 15:04:05"

// New configures terminal colors and builds the logger. The returned closer
// flushes buffered entries and closes the file sink if one was opened; call
// it on shutdown.
func New(cfg *config.Config) (*zap.SugaredLogger, func(), error) {
	term.Configure(cfg.ColorMode)

	level := zapcore.InfoLevel
	if cfg.Verbose {
		level = zapcore.DebugLevel
	}

	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig(term.Enabled())),
		zapcore.Lock(os.Stderr),
		level,
	)

	core := console
	closer := func() { _ = console.Sync() }

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, nil, errors.Wrap(err, "create log directory")
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open log file %s", cfg.LogFile)
		}
		fileCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoderConfig(false)),
			zapcore.Lock(f),
			level,
		)
		core = zapcore.NewTee(console, fileCore)
		closer = func() {
			_ = console.Sync()
			_ = fileCore.Sync()
			_ = f.Close()
		}
	}

	return zap.New(core).Sugar(), closer, nil
}

func consoleEncoderConfig(color bool) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	// Caller locations are noise for a CLI; the message says enough.
	ec.CallerKey = zapcore.OmitKey
	return ec
}
