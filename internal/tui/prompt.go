package tui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user for input on in, writing prompts to out.
// Passwords are read without echo when in is a terminal, and as a plain
// line otherwise (for example when piped with -W).
type Prompter struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// NewPrompter creates a Prompter reading stdin and writing to stderr.
func NewPrompter() *Prompter {
	return NewPrompterWith(os.Stdin, os.Stderr)
}

// NewPrompterWith creates a Prompter on explicit streams.
// Panics if in or out is nil.
func NewPrompterWith(in *os.File, out io.Writer) *Prompter {
	if in == nil {
		panic("in cannot be nil")
	}
	if out == nil {
		panic("out cannot be nil")
	}
	return &Prompter{
		in:     in,
		out:    out,
		reader: bufio.NewReader(in),
	}
}

// Password prints label and reads a password.
func (p *Prompter) Password(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	fd := int(p.in.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(secret), nil
	}

	line, err := p.readLine()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return line, nil
}

// Confirm asks a yes/no question. An empty answer means yes.
// Read errors count as no.
func (p *Prompter) Confirm(message string) bool {
	fmt.Fprintf(p.out, "%s [Y/n]: ", message)

	response, err := p.readLine()
	if err != nil && response == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "", "y", "yes":
		return true
	default:
		return false
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}
