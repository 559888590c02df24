package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ErrAborted is returned by a Prompter when the user interrupts input.
var ErrAborted = errors.New("input aborted")

// Prompter reads one line of user input at a time.
type Prompter interface {
	// PromptInput displays prompt and returns the entered line without its
	// trailing newline. io.EOF means input is exhausted.
	PromptInput(prompt string) (string, error)
	// PromptPassword is PromptInput without echo where the terminal allows it.
	PromptPassword(prompt string) (string, error)
	Close() error
}

// NewPrompter returns a line-editing prompter when in is a terminal and a
// plain line reader otherwise, so scripted input works the same way.
func NewPrompter(in *os.File, out io.Writer) Prompter {
	if term.IsTerminal(int(in.Fd())) {
		return newTerminalPrompter()
	}
	return NewLinePrompter(in, out)
}

type terminalPrompter struct {
	state *liner.State
}

func newTerminalPrompter() *terminalPrompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetMultiLineMode(false)
	return &terminalPrompter{state: state}
}

func (p *terminalPrompter) PromptInput(prompt string) (string, error) {
	line, err := p.state.Prompt(prompt)
	if err != nil {
		return "", translateLinerErr(err)
	}
	if strings.TrimSpace(line) != "" {
		p.state.AppendHistory(line)
	}
	return line, nil
}

func (p *terminalPrompter) PromptPassword(prompt string) (string, error) {
	line, err := p.state.PasswordPrompt(prompt)
	if err != nil {
		return "", translateLinerErr(err)
	}
	return line, nil
}

func (p *terminalPrompter) Close() error {
	return p.state.Close()
}

func translateLinerErr(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) {
		return ErrAborted
	}
	return err
}

// LinePrompter reads newline-terminated input from any reader and writes
// prompts to out.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a Prompter over in and out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) PromptInput(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *LinePrompter) PromptPassword(prompt string) (string, error) {
	return p.PromptInput(prompt)
}

func (p *LinePrompter) Close() error { return nil }
