// Package prompt asks the user for link metadata the command line did not
// supply.
//
// A Prompter runs in one of two modes. When both ends are terminals it shows
// a bubbletea text input with tag autocompletion. Otherwise it prints a label
// and reads a single line, which keeps scripted and piped use working.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// Labels shown to the user.
const (
	DescriptionLabel = "Description"
	TagsLabel        = "Tags (t1,t2,t3):"
)

// Prompter resolves a missing description and tag list from the user.
type Prompter struct {
	in          io.Reader
	out         io.Writer
	reader      *bufio.Reader
	interactive bool
}

// New returns a Prompter reading from in and writing prompts to out. The
// interactive UI is used only when both are terminals.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:          in,
		out:         out,
		reader:      bufio.NewReader(in),
		interactive: isTerminal(in) && isTerminal(out),
	}
}

// Interactive reports whether the terminal UI will be used.
func (p *Prompter) Interactive() bool { return p.interactive }

// Description asks for the link description.
func (p *Prompter) Description(ctx context.Context) (string, error) {
	if p.interactive {
		return p.run(ctx, newModel(DescriptionLabel, nil))
	}
	return p.readLine(DescriptionLabel + ":")
}

// Tags asks for a comma-separated tag list, suggesting from known.
func (p *Prompter) Tags(ctx context.Context, known []string) ([]string, error) {
	var (
		answer string
		err    error
	)
	if p.interactive {
		answer, err = p.run(ctx, newModel(TagsLabel, &Completer{Tags: known}))
	} else {
		answer, err = p.readLine(TagsLabel)
	}
	if err != nil {
		return nil, err
	}
	return SplitTags(answer), nil
}

// readLine prints label and reads one line. End of input counts as an empty
// answer so piped input without a trailing line still resolves.
func (p *Prompter) readLine(label string) (string, error) {
	fmt.Fprint(p.out, label+" ")
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading %s: %w", strings.TrimSuffix(label, ":"), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *Prompter) run(ctx context.Context, m model) (string, error) {
	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("prompt %s: %w", m.label, err)
	}
	res := final.(model)
	if res.aborted {
		return "", ErrAborted
	}
	return res.input.Value(), nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
