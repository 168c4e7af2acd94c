// Package terminal provides interactive prompts for the CLI.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads operator input from a terminal. Reader/Writer default to
// stdin/stderr; tests substitute buffers.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

// NewPrompter returns a Prompter bound to the process terminal.
func NewPrompter() *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stderr}
}

// Line prints the prompt and reads one line of input.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprintf(p.Out, "%s: ", prompt)
	r := bufio.NewReader(p.In)
	s, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(s), nil
}

// Password prints the prompt and reads a password without echoing it.
// When stdin is not a terminal (tests, pipes) it falls back to a plain
// line read.
func (p *Prompter) Password(prompt string) (string, error) {
	fmt.Fprintf(p.Out, "%s: ", prompt)
	if f, ok := p.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	r := bufio.NewReader(p.In)
	s, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(s, "\r\n"), nil
}
