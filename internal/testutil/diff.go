// Package testutil provides small helpers shared by this module's test
// files: a readable diff for golden-output comparisons, and (in env.go) a
// CLI test harness that builds a temp fixture project and runs the root
// command against it.
package testutil

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a line-oriented unified diff between expected and actual,
// for use in test failure messages where a raw string comparison would be
// unreadable (multi-line printer output, colored output, etc).
func Diff(expected, actual string) string {
	if expected == actual {
		return ""
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(expected, actual, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	fmt.Fprintf(&b, "--- expected\n+++ actual\n")
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				fmt.Fprintf(&b, "- %s\n", line)
			case diffmatchpatch.DiffInsert:
				fmt.Fprintf(&b, "+ %s\n", line)
			case diffmatchpatch.DiffEqual:
				fmt.Fprintf(&b, "  %s\n", line)
			}
		}
	}
	return b.String()
}
