package input

import (
	"bufio"
	"io"
	"os"
)

// Reader is an interface for reading operator input
type Reader interface {
	ReadString(delim byte) (string, error)
}

// StdinReader wraps bufio.Reader for os.Stdin
type StdinReader struct {
	reader *bufio.Reader
}

// NewStdinReader creates a new StdinReader
func NewStdinReader() *StdinReader {
	return &StdinReader{
		reader: bufio.NewReader(os.Stdin),
	}
}

// ReadString reads until delimiter
func (r *StdinReader) ReadString(delim byte) (string, error) {
	return r.reader.ReadString(delim)
}

// ScriptedReader replays pre-configured lines for tests. Each input should
// already carry its delimiter (e.g. "yes\n"); io.EOF is returned once the
// script is exhausted.
type ScriptedReader struct {
	lines []string
	next  int
}

// NewScriptedReader creates a reader that returns the given lines in order.
func NewScriptedReader(lines ...string) *ScriptedReader {
	return &ScriptedReader{lines: lines}
}

// ReadString returns the next scripted line. The delim parameter is ignored.
func (r *ScriptedReader) ReadString(delim byte) (string, error) {
	if r.next >= len(r.lines) {
		return "", io.EOF
	}
	line := r.lines[r.next]
	r.next++
	return line, nil
}
