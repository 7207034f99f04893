package monitor

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/term"
)

// plainReader reads lines from a non-terminal input.
type plainReader struct {
	scanner *bufio.Scanner
	output  io.Writer
	prompt  string
}

// NewPlainReader reads command lines from input, writing prompt to output
// before each one when prompt is not empty.
func NewPlainReader(input io.Reader, output io.Writer, prompt string) LineReader {
	return &plainReader{
		scanner: bufio.NewScanner(input),
		output:  output,
		prompt:  prompt,
	}
}

func (pr *plainReader) ReadLine() (line string, err error) {
	if pr.prompt != "" {
		fmt.Fprint(pr.output, pr.prompt)
	}

	if !pr.scanner.Scan() {
		err = pr.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}

	line = pr.scanner.Text()
	return
}

// terminalReader edits lines with history on a terminal. The terminal is
// only in raw mode while a line is read, so that SIGINT still interrupts
// a running program.
type terminalReader struct {
	fd       int
	terminal *term.Terminal
}

// NewTerminalReader reads command lines from the terminal fd, echoing
// through rw.
func NewTerminalReader(fd int, rw io.ReadWriter, prompt string) LineReader {
	return &terminalReader{
		fd:       fd,
		terminal: term.NewTerminal(rw, prompt),
	}
}

func (tr *terminalReader) ReadLine() (line string, err error) {
	if term.IsTerminal(tr.fd) {
		var state *term.State
		state, err = term.MakeRaw(tr.fd)
		if err != nil {
			return
		}
		defer term.Restore(tr.fd, state)
	}

	line, err = tr.terminal.ReadLine()
	return
}
