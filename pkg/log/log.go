package log

import (
	"fmt"
	"io"
	"os"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(str string)
}

type logger struct {
	out   io.Writer
	debug bool
}

// Opt configures a Logger.
type Opt func(*logger)

// WithDebug enables Debugf output.
func WithDebug() Opt {
	return func(l *logger) {
		l.debug = true
	}
}

// WithOutput sets the writer log lines are written to. The default is
// stderr, which keeps stdout free for the console of the program
// being run.
func WithOutput(w io.Writer) Opt {
	return func(l *logger) {
		l.out = w
	}
}

func New(opts ...Opt) Logger {
	l := &logger{out: os.Stderr}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *logger) Infof(format string, args ...interface{}) {
	fmt.Fprintf(l.out, "[INFO]\t"+format+"\n", args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(l.out, "[ERROR]\t"+format+"\n", args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	fmt.Fprintf(l.out, "[DEBUG]\t"+format+"\n", args...)
}

// Fatal logs str and exits the process.
func (l *logger) Fatal(str string) {
	fmt.Fprintf(l.out, "[FATAL]\t%s\n", str)
	os.Exit(1)
}
