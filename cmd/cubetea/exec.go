package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var execOpts struct {
	script    string
	keepGoing bool
}

var execCmd = &cobra.Command{
	Use:   "exec SCENE [COMMAND...]",
	Short: "Run editor commands against a scene file",
	Long: `Load SCENE (or start from the default scene if it does not exist), run each COMMAND
argument and then every line of --script, and save the result back to SCENE.
Commands are console lines such as "select 0" or "camera -move forward -steps 5".
Every edit also updates the autosave.`,
	Example: `  cubetea exec scene.json "add -type sphere" "radius 0.5" "render -o out.png"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runExec,
}

func init() {
	execCmd.Flags().StringVarP(&execOpts.script, "script", "s", "", "file with one command per line (- for stdin)")
	execCmd.Flags().BoolVarP(&execOpts.keepGoing, "keep-going", "k", false, "continue after a failing command")
}

func runExec(cmd *cobra.Command, args []string) error {
	lines := args[1:]
	if execOpts.script != "" {
		script, err := readScript(execOpts.script, cmd.InOrStdin())
		if err != nil {
			return err
		}
		lines = append(lines, script...)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	path := args[0]
	if s.store.Exists(path) {
		if err := s.ed.Load(path); err != nil {
			return err
		}
	}
	var failed int
	for n, line := range lines {
		if err := s.ed.Exec(line); err != nil {
			if !execOpts.keepGoing {
				return errors.Wrapf(err, "command %d %q", n+1, line)
			}
			failed++
		}
	}
	if err := s.ed.Save(path); err != nil {
		return err
	}
	if failed > 0 {
		s.log.Warn("some commands failed", zap.Int("failed", failed), zap.Int("total", len(lines)))
		return errors.Errorf("%d of %d commands failed", failed, len(lines))
	}
	return nil
}

// readScript returns the command lines of a script, skipping blank lines and # comments.
func readScript(path string, stdin io.Reader) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open script")
		}
		defer f.Close()
		r = f
	}
	return parseScript(r)
}

func parseScript(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read script")
	}
	return out, nil
}
