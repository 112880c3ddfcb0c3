package logging

import (
	"bytes"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LineWriter logs every non-empty line written to it, for example the progress stream of a Pulumi
// operation. A line split across writes is held until its newline arrives or the writer is closed.
type LineWriter struct {
	logger *zap.Logger
	level  zapcore.Level

	mu      sync.Mutex
	partial []byte
}

func NewWriter(logger *zap.Logger, level zapcore.Level) *LineWriter {
	return &LineWriter{logger: logger, level: level}
}

func (w *LineWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	buf := append(w.partial, p...)
	for {
		idx := bytes.IndexByte(buf, '\n')
		if idx < 0 {
			break
		}
		w.emit(buf[:idx])
		buf = buf[idx+1:]
	}
	w.partial = append(w.partial[:0:0], buf...)
	return len(p), nil
}

// Close logs any trailing line that never got a newline.
func (w *LineWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.emit(w.partial)
	w.partial = nil
	return nil
}

func (w *LineWriter) emit(line []byte) {
	line = bytes.TrimRight(line, "\r")
	if len(line) == 0 {
		return
	}
	if ce := w.logger.Check(w.level, string(line)); ce != nil {
		ce.Write()
	}
}
