package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
)

// gatherTargets collects the path targets for a command: positional args
// first, then any paths piped on stdin, one per line. Relative targets are
// anchored at the caller's directory unless an explicit --root names the
// repository they are relative to.
func gatherTargets(cCtx *cli.Context) ([]string, error) {
	targets := cCtx.Args().Slice()
	if stdinIsPiped() {
		piped, err := readTargetLines(os.Stdin)
		if err != nil {
			return nil, err
		}
		targets = append(targets, piped...)
	}
	if !cwdRelativeTargets(cCtx) {
		return targets, nil
	}
	return anchorTargets(targets)
}

// cwdRelativeTargets reports whether relative targets should resolve against
// the caller's directory. Remote lookups have no working tree, and an
// explicit --root pins targets to that repository instead.
func cwdRelativeTargets(cCtx *cli.Context) bool {
	return cCtx.String("remote") == "" && !cCtx.IsSet("root")
}

// anchorTargets makes relative targets absolute against the caller's
// directory so they survive the later rebase onto the repository root.
func anchorTargets(targets []string) ([]string, error) {
	anchored := make([]string, 0, len(targets))
	for _, target := range targets {
		abs, err := filepath.Abs(target)
		if err != nil {
			return nil, err
		}
		anchored = append(anchored, abs)
	}
	return anchored, nil
}

// stdinIsPiped reports whether targets are being piped in rather than typed
// at a terminal.
func stdinIsPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}

// readTargetLines collects one path target per line, skipping blank lines
// and surrounding whitespace.
func readTargetLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	var targets []string
	for scanner.Scan() {
		if target := strings.TrimSpace(scanner.Text()); target != "" {
			targets = append(targets, target)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading targets from stdin: %w", err)
	}
	return targets, nil
}
