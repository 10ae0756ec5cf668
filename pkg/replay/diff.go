package replay

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/alantheprice/dropdown/pkg/ui/theme"
)

// DiffLine is one line of a frame diff
type DiffLine struct {
	Op   diffmatchpatch.Operation
	Text string
}

// FrameDiff is the line-level difference between two frames
type FrameDiff struct {
	Lines   []DiffLine
	Added   int
	Removed int
}

// Changed reports whether the frames differ
func (d FrameDiff) Changed() bool {
	return d.Added > 0 || d.Removed > 0
}

// Diff compares two frames line by line
func Diff(prev, next string) FrameDiff {
	dmp := diffmatchpatch.New()
	// Every line must end in a newline to hash the same in both frames
	a, b, lines := dmp.DiffLinesToChars(prev+"\n", next+"\n")
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var out FrameDiff
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			out.Lines = append(out.Lines, DiffLine{Op: d.Type, Text: line})
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				out.Added++
			case diffmatchpatch.DiffDelete:
				out.Removed++
			}
		}
	}
	return out
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Write prints the first frame in full and every later frame as a diff
// against the one before it, with one line of context around each change.
// tm may be nil for plain output.
func Write(w io.Writer, res *Result, tm *theme.ThemeManager) error {
	paint := func(element, text string) string {
		if tm == nil {
			return text
		}
		return tm.Sprint(element, text)
	}

	var b strings.Builder
	if res.Name != "" {
		fmt.Fprintf(&b, "%s\n", paint("header", "# "+res.Name))
	}
	for i, frame := range res.Frames {
		header := fmt.Sprintf("== step %d: %s", frame.Step, frame.Op)
		if frame.Arg != "" {
			header += " " + frame.Arg
		}
		if i == 0 {
			fmt.Fprintf(&b, "%s\n%s\n", paint("header", header), frame.Text)
			continue
		}

		d := Diff(res.Frames[i-1].Text, frame.Text)
		if !frame.Applied {
			header += " (ignored)"
		}
		if d.Changed() {
			header += fmt.Sprintf(" +%d -%d", d.Added, d.Removed)
		}
		fmt.Fprintf(&b, "%s\n", paint("header", header))
		if !d.Changed() {
			fmt.Fprintf(&b, "%s\n", paint("muted", "  (no change)"))
			continue
		}
		writeHunks(&b, d, paint)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeHunks(b *strings.Builder, d FrameDiff, paint func(element, text string) string) {
	near := func(i int) bool {
		for j := i - 1; j <= i+1; j++ {
			if j >= 0 && j < len(d.Lines) && d.Lines[j].Op != diffmatchpatch.DiffEqual {
				return true
			}
		}
		return false
	}

	skipped := false
	for i, line := range d.Lines {
		switch line.Op {
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(b, "%s\n", paint("deleted", "- "+line.Text))
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(b, "%s\n", paint("inserted", "+ "+line.Text))
		default:
			if !near(i) {
				skipped = true
				continue
			}
			if skipped {
				fmt.Fprintf(b, "%s\n", paint("muted", "  ..."))
				skipped = false
			}
			fmt.Fprintf(b, "  %s\n", line.Text)
		}
	}
}
