package lox

import (
	"fmt"
	"io"
	"sync"
)

// Reporter receives the diagnostics of a run. Reporting has no influence
// on how the run proceeds.
type Reporter interface {
	// Report receives a lexical or syntax error. where is " at 'lexeme'",
	// " at end" or empty.
	Report(line int, where, message string)
	// ReportRuntime receives the runtime error that stopped a run.
	ReportRuntime(line int, message string)
}

// StreamReporter writes diagnostics to a stream, one per line:
//
//	[line 1] Error at ';': Expected expression
//
// Runtime errors are written as the message followed by the line:
//
//	Operands must be numbers.
//	[line 3]
type StreamReporter struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// NewStreamReporter returns a reporter writing to w. With color set,
// diagnostics are wrapped in ANSI red.
func NewStreamReporter(w io.Writer, color bool) *StreamReporter {
	return &StreamReporter{w: w, color: color}
}

// Report implements Reporter.
func (r *StreamReporter) Report(line int, where, message string) {
	r.write(fmt.Sprintf("[line %d] Error%s: %s", line, where, message))
}

// ReportRuntime implements Reporter.
func (r *StreamReporter) ReportRuntime(line int, message string) {
	r.write(fmt.Sprintf("%s\n[line %d]", message, line))
}

func (r *StreamReporter) write(s string) {
	if r.color {
		s = "\x1b[31m" + s + "\x1b[0m"
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, s)
}
