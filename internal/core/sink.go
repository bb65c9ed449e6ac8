package core

import "fmt"

// Sink receives human-readable run-log lines.
type Sink interface {
	Log(line string)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(line string)

func (f SinkFunc) Log(line string) { f(line) }

// Discard drops every line.
var Discard Sink = SinkFunc(func(string) {})

// Logf formats a line and writes it to s.
func Logf(s Sink, format string, args ...any) {
	s.Log(fmt.Sprintf(format, args...))
}
