package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// console prints to a command's output and reads answers from its input
type console struct {
	out    io.Writer
	in     *bufio.Reader
	isTerm bool

	bold   *color.Color
	cyan   *color.Color
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	faint  *color.Color
}

func newConsole(out io.Writer, in io.Reader) *console {
	c := &console{
		out:    out,
		in:     bufio.NewReader(in),
		bold:   color.New(color.Bold),
		cyan:   color.New(color.FgCyan),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		faint:  color.New(color.Faint),
	}

	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		c.isTerm = true
	} else {
		for _, col := range []*color.Color{c.bold, c.cyan, c.green, c.red, c.yellow, c.faint} {
			col.DisableColor()
		}
	}
	return c
}

func (c *console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *console) heading(title string) {
	c.bold.Fprintf(c.out, "\n=== %s ===\n", title)
}

func (c *console) success(format string, a ...any) {
	c.green.Fprintf(c.out, format+"\n", a...)
}

func (c *console) warn(format string, a ...any) {
	c.yellow.Fprintf(c.out, format+"\n", a...)
}

func (c *console) fail(format string, a ...any) {
	c.red.Fprintf(c.out, format+"\n", a...)
}

// ask prints a prompt and returns the trimmed answer. EOF counts as an
// empty answer so scripted input can end early.
func (c *console) ask(prompt string) (string, error) {
	c.cyan.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if err == io.EOF && line == "" {
		fmt.Fprintln(c.out)
		return "", io.EOF
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a y/n question; anything but y or yes is a no
func (c *console) confirm(prompt string) bool {
	answer, err := c.ask(prompt + " (y/n): ")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

var spinnerFrames = []string{"|", "/", "-", `\`}

// spinner redraws at most every 100ms, and only on a terminal
type spinner struct {
	c     *console
	frame int
	last  time.Time
}

func (s *spinner) tick(now time.Time, status string) {
	if !s.c.isTerm || now.Sub(s.last) < 100*time.Millisecond {
		return
	}
	s.last = now
	s.frame = (s.frame + 1) % len(spinnerFrames)
	fmt.Fprintf(s.c.out, "\r\033[K%s %s", spinnerFrames[s.frame], truncateMiddle(status, 70))
}

func (s *spinner) clear() {
	if s.c.isTerm && !s.last.IsZero() {
		fmt.Fprint(s.c.out, "\r\033[K")
		s.last = time.Time{}
	}
}
