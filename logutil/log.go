// Package logutil builds the diagnostic logger of the compositor
package logutil

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New opens path truncated and returns a console-encoded logger at level
// Every line carries the session id of this run
// The returned closer syncs and closes the file
func New(path string, level zapcore.Level) (*zap.Logger, io.Closer, error) {
	if path == "" {
		return zap.NewNop(), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, errors.Annotatef(err, "open log file %s", path)
	}
	logger := NewWithWriter(zapcore.AddSync(f), level)
	return logger, &fileCloser{logger: logger, file: f}, nil
}

// NewWithWriter returns a console-encoded logger writing to w
func NewWithWriter(w zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), w, level)
	return zap.New(core, zap.ErrorOutput(w)).With(zap.String("session", uuid.NewString()))
}

type fileCloser struct {
	logger *zap.Logger
	file   *os.File
}

func (c *fileCloser) Close() error {
	// Sync on a regular file only fails on real I/O errors
	syncErr := c.logger.Sync()
	if err := c.file.Close(); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(syncErr)
}
