package logger

import (
	"io"

	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/sirupsen/logrus"
)

// Structured logger, one JSON object per line.
type jsonLogger struct {
	logger *logrus.Logger
}

// NewJSONLogger constructs a logger writing JSON lines into out.
func NewJSONLogger(debug bool, out io.Writer) common.ILoggerProvider {
	l := logrus.New()
	l.Out = out
	l.Formatter = &logrus.JSONFormatter{}
	l.Level = logrus.InfoLevel
	if debug {
		l.Level = logrus.DebugLevel
	}

	return &jsonLogger{logger: l}
}

// Debug prints debug level message.
func (p *jsonLogger) Debug(msg string, fields ...string) {
	p.entry(fields).Debug(msg)
}

// Info prints info level message.
func (p *jsonLogger) Info(msg string, fields ...string) {
	p.entry(fields).Info(msg)
}

// Warn prints warning level message.
func (p *jsonLogger) Warn(msg string, fields ...string) {
	p.entry(fields).Warn(msg)
}

// Error prints error level message.
func (p *jsonLogger) Error(msg string, err error, fields ...string) {
	p.fields(withError(err, fields)).Error(msg)
}

// Fatal prints fatal level message and exits.
func (p *jsonLogger) Fatal(msg string, err error, fields ...string) {
	p.fields(withError(err, fields)).Error(msg)
	exit(1)
}

func (p *jsonLogger) entry(fields []string) *logrus.Entry {
	return p.fields(withFields(fields...))
}

func (p *jsonLogger) fields(fields map[string]string) *logrus.Entry {
	data := make(logrus.Fields, len(fields))
	for k, v := range fields {
		data[k] = v
	}

	return p.logger.WithFields(data)
}
