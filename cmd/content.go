/*
Copyright © 2026 Keeghan McGarry (KeeghanM) <keeghan@arc-aide.com>
*/

// content.go provides shared content input handling for write commands.

package cmd

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/KeeghanM/arc-aide-sub000/internal/diff"
)

// ReadContent resolves the content for a write command: an inline argument
// wins, then --file, then stdin. Reading stdin lets write commands compose
// with pipes:
//
//	cat hook.md | arcaide arc write lost-mine goblin-ambush hook
func ReadContent(inline, file string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// PrintDiffs writes rename preview diffs to the output, colourised for
// terminals, or as a JSON array when --output json is set.
func PrintDiffs(diffs []diff.Result) error {
	if len(diffs) == 0 {
		if JSON() {
			return PrintJSON([]map[string]string{})
		}
		fmt.Fprintln(Out(), "no documents would change")
		return nil
	}
	if JSON() {
		out := make([]map[string]string, len(diffs))
		for i := range diffs {
			out[i] = map[string]string{"document": diffs[i].New, "diff": diffs[i].Diff}
		}
		return PrintJSON(out)
	}
	colour := term.IsTerminal(int(os.Stdout.Fd()))
	for i := range diffs {
		fmt.Fprint(Out(), diffs[i].Format(colour))
	}
	return nil
}
