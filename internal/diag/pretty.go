package diag

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/sirkon/refguard/internal/tree"
)

type prettyPalette struct {
	err, warn, note, loc, gutter, caret, bold *color.Color
}

func newPrettyPalette(enabled bool) prettyPalette {
	p := prettyPalette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		note:   color.New(color.FgCyan, color.Bold),
		loc:    color.New(color.FgBlue),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
		bold:   color.New(color.Bold),
	}

	for _, c := range []*color.Color{p.err, p.warn, p.note, p.loc, p.gutter, p.caret, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

func (p prettyPalette) severity(s Severity) *color.Color {
	switch s {
	case SevError:
		return p.err
	case SevWarning:
		return p.warn
	default:
		return p.note
	}
}

// WritePretty writes diagnoses in a compiler-like layout:
//
//	error[invalid-ref]: null reference
//	  --> src/lib.rs:3:22
//	   |
//	 3 |     let r: &usize = std::mem::zeroed();
//	   |                     ^^^^^^^^^^^^^^^^^^
//	   = help: Creation of a null or uninitialized reference is undefined behavior; ...
//
// Source excerpts are printed when opts.Source knows the file.
func WritePretty(w io.Writer, ds []Diagnosis, opts WriteOptions) error {
	p := newPrettyPalette(opts.Color)

	for i, d := range ds {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		var buf bytes.Buffer
		_, _ = p.severity(d.Severity).Fprintf(&buf, "%s[%s]", d.Severity, d.Rule)
		_, _ = p.bold.Fprintf(&buf, ": %s\n", d.Summary)
		_, _ = p.gutter.Fprint(&buf, "  --> ")
		_, _ = p.loc.Fprintln(&buf, d.Span.String())

		if opts.Source != nil && d.Span.Line > 0 {
			if src, ok := opts.Source(d.Span.File); ok {
				writeExcerpt(&buf, p, src, d.Span)
			}
		}

		for _, line := range strings.Split(d.Help, "\n") {
			if line == "" {
				continue
			}
			_, _ = p.gutter.Fprint(&buf, "   = ")
			_, _ = p.bold.Fprint(&buf, "help")
			_, _ = fmt.Fprintf(&buf, ": %s\n", line)
		}

		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
	}

	return nil
}

func writeExcerpt(buf *bytes.Buffer, p prettyPalette, src []byte, span tree.Span) {
	lines := bytes.Split(src, []byte("\n"))
	if span.Line > len(lines) {
		return
	}

	text := strings.TrimRight(string(lines[span.Line-1]), "\r")
	gutter := fmt.Sprintf("%d", span.Line)
	pad := strings.Repeat(" ", len(gutter))

	// Caret columns count display cells, not bytes.
	startCol := max(span.Col-1, 0)
	startCol = min(startCol, len(text))
	endCol := len(text)
	if span.EndLine == span.Line && span.EndCol > 0 {
		endCol = min(max(span.EndCol-1, startCol+1), len(text))
	}
	lead := runewidth.StringWidth(strings.Map(tabToSpace, text[:startCol]))
	width := max(runewidth.StringWidth(text[startCol:endCol]), 1)

	_, _ = p.gutter.Fprintf(buf, " %s |\n", pad)
	_, _ = p.gutter.Fprintf(buf, " %s | ", gutter)
	_, _ = fmt.Fprintln(buf, strings.Map(tabToSpace, text))
	_, _ = p.gutter.Fprintf(buf, " %s | ", pad)
	_, _ = fmt.Fprint(buf, strings.Repeat(" ", lead))
	_, _ = p.caret.Fprintln(buf, strings.Repeat("^", width))
}

func tabToSpace(r rune) rune {
	if r == '\t' {
		return ' '
	}
	return r
}
