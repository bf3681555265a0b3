// Package prompt reads operator answers from a line-oriented console.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter writes a question and reads the operator's answer one line at a
// time. It is not safe for concurrent use.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter reading from in and writing prompts to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Out returns the writer prompts and messages go to.
func (p *Prompter) Out() io.Writer {
	return p.out
}

// Line writes prompt and returns the next input line without its line
// ending. A final line without a newline is returned normally; io.EOF is
// returned once input is exhausted.
func (p *Prompter) Line(prompt string) (string, error) {
	if prompt != "" {
		if _, err := fmt.Fprint(p.out, prompt); err != nil {
			return "", err
		}
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Token writes prompt and returns the first whitespace-separated word of the
// next non-blank line; the rest of that line is discarded. Blank lines are
// skipped without reprompting.
func (p *Prompter) Token(prompt string) (string, error) {
	line, err := p.Line(prompt)
	for err == nil {
		if fields := strings.Fields(line); len(fields) > 0 {
			return fields[0], nil
		}
		line, err = p.Line("")
	}
	return "", err
}

// Printf writes a formatted message to the output.
func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...) //nolint:errcheck
}

// Println writes a message line to the output.
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...) //nolint:errcheck
}
