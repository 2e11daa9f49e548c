package format

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/softwell/genro-treestore/go-treestore"
)

// Colors maps tree parts to sprintf-style colorizers.
type Colors struct {
	Label func(string, ...any) string
	Tag   func(string, ...any) string
	Attr  func(string, ...any) string
	Value func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Label: color.RGB(128, 168, 196).SprintfFunc(),
		Tag:   color.RGB(74, 92, 138).SprintfFunc(),
		Attr:  color.RGB(196, 96, 16).SprintfFunc(),
		Value: color.RGB(8, 196, 16).SprintfFunc(),
	}
}

func noColors() *Colors {
	plainf := fmt.Sprintf
	return &Colors{Label: plainf, Tag: plainf, Attr: plainf, Value: plainf}
}

type printOpts struct {
	format Format
	colors *Colors
	indent int
}

// PrintOption configures Print.
type PrintOption func(*printOpts)

// WithFormat selects the output format, TextFormat by default.
func WithFormat(f Format) PrintOption {
	return func(o *printOpts) { o.format = f }
}

// WithColors forces a color map; by default colors are on only for
// terminals and unless NO_COLOR is set.
func WithColors(c *Colors) PrintOption {
	return func(o *printOpts) { o.colors = c }
}

// WithIndent sets the indent width, 2 by default.
func WithIndent(n int) PrintOption {
	return func(o *printOpts) { o.indent = n }
}

// Print renders the tree to w.
//
// Text form, one node per line:
//
//	kitchen [kitchen] brand=smeg
//	  fridge_0 [fridge]
//	  note_0 [note]: "defrost weekly"
func Print(w io.Writer, s *treestore.Store, opts ...PrintOption) error {
	o := &printOpts{format: TextFormat, indent: 2}
	for _, opt := range opts {
		opt(o)
	}
	if o.colors == nil {
		o.colors = detectColors(w)
	}
	switch o.format {
	case JSONFormat:
		d, err := json.MarshalIndent(s.AsPlain(), "", strings.Repeat(" ", o.indent))
		if err != nil {
			return err
		}
		if _, err := w.Write(d); err != nil {
			return err
		}
		_, err = io.WriteString(w, "\n")
		return err
	case TextFormat:
		return printText(w, s, o, 0)
	default:
		return fmt.Errorf("%w: %v", ErrBadFormat, o.format)
	}
}

// Sprint renders the tree to a string, uncolored. Diff relies on this being
// canonical: equal trees render equal strings.
func Sprint(s *treestore.Store) string {
	buf := &strings.Builder{}
	o := &printOpts{format: TextFormat, indent: 2, colors: noColors()}
	printText(buf, s, o, 0)
	return buf.String()
}

func detectColors(w io.Writer) *Colors {
	if os.Getenv("NO_COLOR") != "" {
		return noColors()
	}
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return noColors()
	}
	return NewColors()
}

func printText(w io.Writer, s *treestore.Store, o *printOpts, depth int) error {
	pad := strings.Repeat(" ", depth*o.indent)
	for _, n := range s.Nodes() {
		line := pad + o.colors.Label("%s", n.Label())
		if n.Tag() != "" {
			line += " " + o.colors.Tag("[%s]", n.Tag())
		}
		attrs := n.Attrs()
		for _, k := range slices.Sorted(maps.Keys(attrs)) {
			line += " " + o.colors.Attr("%s=%v", k, attrs[k])
		}
		if n.IsLeaf() {
			line += ": " + o.colors.Value("%s", leafString(n.Value()))
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
		if sub := n.Branch(); sub != nil {
			if err := printText(w, sub, o, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func leafString(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
