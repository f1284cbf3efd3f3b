package commands

import (
	"bytes"
	"flag"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const prefix = "cmd "

// RunFunc runs a command after its flags are parsed. args are the positional arguments left
// over after the flags.
type RunFunc func(args []string) error

// Command is a subcommand. Build defines the flags on a fresh FlagSet and returns the function
// that reads them, so flag values never leak from one invocation into the next.
type Command struct {
	Name    string
	Summary string
	Build   func(fs *flag.FlagSet) RunFunc
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a subcommand. Registering a name twice replaces the first.
func (r *Registry) Register(name, summary string, build func(fs *flag.FlagSet) RunFunc) {
	r.cmds[name] = &Command{Name: name, Summary: summary, Build: build}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Summary returns the one-line description of name.
func (r *Registry) Summary(name string) string {
	if c, ok := r.cmds[name]; ok {
		return c.Summary
	}
	return ""
}

// Usage returns the flag help for name.
func (r *Registry) Usage(name string) (string, error) {
	cmd, ok := r.cmds[name]
	if !ok {
		return "", errors.Errorf("unknown command: %s", name)
	}
	fs := newFlagSet(name)
	cmd.Build(fs)
	var buf bytes.Buffer
	buf.WriteString(name + ": " + cmd.Summary + "\n")
	fs.SetOutput(&buf)
	fs.PrintDefaults()
	return buf.String(), nil
}

// Parse splits a console line into arguments. A leading "cmd " is optional. Double or single
// quotes group words, so names may contain spaces.
func Parse(line string) ([]string, error) {
	line = strings.TrimSpace(line)
	line = strings.TrimSpace(strings.TrimPrefix(line, prefix))
	var (
		args  []string
		cur   strings.Builder
		quote rune
		inArg bool
	)
	for _, c := range line {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur.WriteRune(c)
			}
		case c == '"' || c == '\'':
			quote, inArg = c, true
		case c == ' ' || c == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(c)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, errors.New("unterminated quote")
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from the command itself.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return errors.New("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return errors.Errorf("unknown command: %s", name)
	}
	fs := newFlagSet(name)
	run := cmd.Build(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return errors.Wrap(err, name)
	}
	return run(fs.Args())
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
