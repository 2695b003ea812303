/*
Package apps runs the external programs used by the search wrappers in its
sub-packages.

A Command remembers everything the program wrote to stderr, so that a failed
search is reported with the tool's own explanation attached.
*/
package apps

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// A Command is a single invocation of an external program.
type Command struct {
	*exec.Cmd

	// When true, the command line is printed to stderr before running, and
	// the program's stdout and stderr are echoed to this process' stderr.
	Verbose bool

	stderr bytes.Buffer
}

// New creates a Command that runs the program name with the arguments given.
func New(name string, args ...string) *Command {
	return &Command{Cmd: exec.Command(name, args...)}
}

// Run executes the command and waits for it to finish. If the program cannot
// be started or exits with a non-zero status, the returned error includes the
// command line and whatever the program wrote to stderr.
func (c *Command) Run() error {
	if c.Verbose {
		fmt.Fprintf(os.Stderr, "\n%s\n", c)
		c.Cmd.Stdout = os.Stderr
		c.Cmd.Stderr = io.MultiWriter(&c.stderr, os.Stderr)
	} else {
		c.Cmd.Stderr = &c.stderr
	}
	if err := c.Cmd.Run(); err != nil {
		msg := strings.TrimSpace(c.stderr.String())
		if len(msg) == 0 {
			return fmt.Errorf("Error running '%s': %s", c, err)
		}
		return fmt.Errorf("Error running '%s': %s\n%s", c, err, msg)
	}
	return nil
}

// Stderr returns what the program wrote to stderr so far.
func (c *Command) Stderr() string {
	return c.stderr.String()
}

func (c *Command) String() string {
	return strings.Join(c.Cmd.Args, " ")
}
