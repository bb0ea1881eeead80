package console

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/lmorg/readline"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// Where input() and inputf() get their lines from. ReadLine returns the line without its line
// ending, and io.EOF when there are no more lines.
type LineSource interface {
	ReadLine() (string, error)
}

type readerSource struct {
	scanner *bufio.Scanner
}

func NewReader(in io.Reader) LineSource {
	return &readerSource{scanner: bufio.NewScanner(in)}
}

func (r *readerSource) ReadLine() (string, error) {
	if r.scanner.Scan() {
		return strings.TrimSuffix(r.scanner.Text(), "\r"), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", errors.Wrap(err, "console: reading input")
	}
	return "", io.EOF
}

type terminalSource struct {
	rline *readline.Instance
}

// Reads from the terminal with line editing and history.
func NewTerminal(prompt string) LineSource {
	rline := readline.NewInstance()
	rline.SetPrompt(prompt)
	return &terminalSource{rline: rline}
}

func (t *terminalSource) ReadLine() (string, error) {
	line, err := t.rline.Readline()
	if err != nil {
		return "", terminalError(err)
	}
	return line, nil
}

// Ctrl-D is the end of input. Anything else, Ctrl-C included, is a failure to read.
func terminalError(err error) error {
	if err == io.EOF || err == readline.EOF {
		return io.EOF
	}
	return errors.Wrap(err, "console: reading the terminal")
}

// A terminal if the file is one, and a plain reader if it's a pipe or a file.
func Auto(f *os.File, prompt string) LineSource {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return NewTerminal(prompt)
	}
	return NewReader(f)
}

// For when there's no input to be had.
type emptySource struct{}

func Empty() LineSource {
	return emptySource{}
}

func (emptySource) ReadLine() (string, error) {
	return "", io.EOF
}
