// Package logger contains bridge loggers.
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/go-home-io/sip-bridge/plugins/common"
)

// Allows to intercept process exit in tests.
var (
	osExit = os.Exit
	exit   = os.Exit
)

// Default console logger.
type consoleLogger struct {
	debug bool
	out   io.Writer
}

// Debug prints debug level message.
func (p *consoleLogger) Debug(msg string, fields ...string) {
	if !p.debug {
		return
	}

	p.output(msg, withFields(fields...), color.FgCyan)
}

// Info prints info level message.
func (p *consoleLogger) Info(msg string, fields ...string) {
	p.output(msg, withFields(fields...), color.FgGreen)
}

// Warn prints warning level message.
func (p *consoleLogger) Warn(msg string, fields ...string) {
	p.output(msg, withFields(fields...), color.FgYellow)
}

// Error prints error level message.
func (p *consoleLogger) Error(msg string, err error, fields ...string) {
	p.output(msg, withError(err, fields), color.FgRed)
}

// Fatal prints fatal level message and exits.
func (p *consoleLogger) Fatal(msg string, err error, fields ...string) {
	p.output(msg, withError(err, fields), color.FgRed)
	exit(1)
}

// NewConsoleLogger constructs a new console logger.
// Debug messages are dropped unless debug is set.
func NewConsoleLogger(debug bool) common.ILoggerProvider {
	return &consoleLogger{
		debug: debug,
		out:   color.Output,
	}
}

// Helper method to add generic fields to the output.
func withFields(fields ...string) map[string]string {
	fLen := len(fields)
	result := make(map[string]string, fLen/2)
	for ii := 0; ii < fLen; ii += 2 {
		if ii+1 >= fLen {
			break
		}

		result[fields[ii]] = fields[ii+1]
	}

	return result
}

// Error goes first, so odd caller fields can't shift it.
func withError(err error, fields []string) map[string]string {
	return withFields(append([]string{common.LogErrorToken, errorText(err)}, fields...)...)
}

// Prepares final string.
func format(msg string, fields map[string]string) string {
	newM := fmt.Sprintf("%s   %s", time.Now().Local().Format(time.StampMilli), msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	for _, k := range keys {
		newM = fmt.Sprintf("%s\n          %s: %s", newM, k, fields[k])
	}

	return newM
}

// Outputs final string.
func (p *consoleLogger) output(msg string, fields map[string]string, c color.Attribute) {
	color.New(c).Fprintln(p.out, format(msg, fields)) // nolint: gosec, errcheck
}

func errorText(err error) string {
	if nil == err {
		return "<nil>"
	}

	return err.Error()
}
