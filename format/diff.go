package format

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/softwell/genro-treestore/go-treestore"
)

// Diff returns a unified-style line diff of the canonical text renderings
// of two trees, "" when they render equal.
func Diff(from, to *treestore.Store) string {
	a, b := Sprint(from), Sprint(to)
	if a == b {
		return ""
	}
	cfg := diffpatch.New()
	ra, rb, lines := cfg.DiffLinesToRunes(a, b)
	diffs := cfg.DiffMainRunes(ra, rb, false)
	diffs = cfg.DiffCharsToLines(diffs, lines)

	buf := &strings.Builder{}
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "- "
		case diffpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			buf.WriteString(prefix)
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}
