// Package console renders the frontend views on a terminal. Each view is
// the moral equivalent of a page in the original web UI: it activates, runs
// the session guard if protected, does its work and hands control to the
// next view.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Console wraps terminal input/output so views stay testable: tests drive
// them with a strings.Reader and a bytes.Buffer.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	// stdinFd is >= 0 only when input really is a terminal, enabling
	// no-echo password entry.
	stdinFd int
}

// New builds a Console over the given reader/writer pair.
func New(in io.Reader, out io.Writer) *Console {
	c := &Console{in: bufio.NewReader(in), out: out, stdinFd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.stdinFd = int(f.Fd())
	}
	return c
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// Prompt reads one trimmed line.
func (c *Console) Prompt(label string) string {
	fmt.Fprintf(c.out, "%s: ", label)
	line, _ := c.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// PromptDefault reads one line, falling back to def on empty input.
func (c *Console) PromptDefault(label, def string) string {
	fmt.Fprintf(c.out, "%s [%s]: ", label, def)
	line, _ := c.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

// PromptPassword reads a line without echo when attached to a terminal,
// falling back to a plain read otherwise.
func (c *Console) PromptPassword(label string) string {
	if c.stdinFd >= 0 {
		fmt.Fprintf(c.out, "%s: ", label)
		raw, err := term.ReadPassword(c.stdinFd)
		fmt.Fprintln(c.out)
		if err == nil {
			return strings.TrimSpace(string(raw))
		}
	}
	return c.Prompt(label)
}

// PromptBool interprets s/n answers, keeping def on empty or junk input.
func (c *Console) PromptBool(label string, def bool) bool {
	hint := "s/N"
	if def {
		hint = "S/n"
	}
	answer := strings.ToLower(c.PromptDefault(fmt.Sprintf("%s (%s)", label, hint), ""))
	switch answer {
	case "s", "si", "sí", "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

// PromptFloat parses a decimal number, keeping def on empty or junk input.
func (c *Console) PromptFloat(label string, def float64) float64 {
	raw := c.PromptDefault(label, strconv.FormatFloat(def, 'f', -1, 64))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

// PromptOptionalInt parses an id, returning nil on empty input.
func (c *Console) PromptOptionalInt(label string, def *int) *int {
	current := ""
	if def != nil {
		current = strconv.Itoa(*def)
	}
	raw := c.PromptDefault(label, current)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return &v
}
