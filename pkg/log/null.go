package log

type nullLogger struct{}

func (nullLogger) Fatal(string)                  {}
func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Errorf(string, ...interface{}) {}
func (nullLogger) Debugf(string, ...interface{}) {}

// NewNullLogger returns a Logger that discards everything, for tests
// and for library users that want no output. Fatal does not exit.
func NewNullLogger() Logger {
	return nullLogger{}
}
