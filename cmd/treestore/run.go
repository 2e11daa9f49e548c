package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/softwell/genro-treestore/go-treestore"
	"github.com/softwell/genro-treestore/go-treestore/format"
	"github.com/softwell/genro-treestore/go-treestore/grammar"
	"github.com/softwell/genro-treestore/go-treestore/htmlgrammar"
	"github.com/softwell/genro-treestore/go-treestore/query"
)

// loadTree reads a tree file in the plain JSON structure; "-" or "" is
// stdin.
func loadTree(cc *cli.Context, name string) (*treestore.Store, error) {
	data, err := readInput(cc, name)
	if err != nil {
		return nil, err
	}
	s, err := treestore.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(name), err)
	}
	return s, nil
}

func readInput(cc *cli.Context, name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(cc.In)
	}
	return os.ReadFile(name)
}

func displayName(name string) string {
	if name == "" || name == "-" {
		return "<stdin>"
	}
	return name
}

func (cfg *MainConfig) output(cc *cli.Context) (io.Writer, func() error, error) {
	if cfg.Out == "" {
		return cc.Out, func() error { return nil }, nil
	}
	f, err := os.Create(cfg.Out)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func (cfg *MainConfig) printOpts() []format.PrintOption {
	var opts []format.PrintOption
	if cfg.OutFormat != nil {
		opts = append(opts, format.WithFormat(*cfg.OutFormat))
	}
	return opts
}

func argsOrStdin(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func runFmt(cfg *FmtConfig, cc *cli.Context, args []string) error {
	w, closeOut, err := cfg.output(cc)
	if err != nil {
		return err
	}
	defer closeOut()
	opts := cfg.printOpts()
	if cfg.Color {
		opts = append(opts, format.WithColors(format.NewColors()))
	}
	for _, name := range argsOrStdin(args) {
		s, err := loadTree(cc, name)
		if err != nil {
			return err
		}
		if err := format.Print(w, s, opts...); err != nil {
			return err
		}
	}
	return nil
}

func loadGrammar(cfg *ValidateConfig) (*grammar.Grammar, error) {
	if cfg.Grammar == "" {
		return htmlgrammar.New(), nil
	}
	f, err := os.Open(cfg.Grammar)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return grammar.Load(f)
}

func runValidate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	g, err := loadGrammar(cfg)
	if err != nil {
		return err
	}
	if cfg.Check {
		if err := g.Check(); err != nil {
			return err
		}
	}
	failed := false
	for _, name := range argsOrStdin(args) {
		s, err := loadTree(cc, name)
		if err != nil {
			return err
		}
		verr := g.Validate(s)
		if verr == nil {
			fmt.Fprintf(cc.Out, "%s: ok\n", displayName(name))
			continue
		}
		failed = true
		for _, v := range grammar.Violations(verr) {
			fmt.Fprintf(cc.Out, "%s: %v\n", displayName(name), v)
		}
	}
	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func runDiff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: diff <from> <to>", cli.ErrUsage)
	}
	from, err := loadTree(cc, args[0])
	if err != nil {
		return err
	}
	to, err := loadTree(cc, args[1])
	if err != nil {
		return err
	}
	w, closeOut, err := cfg.output(cc)
	if err != nil {
		return err
	}
	defer closeOut()
	_, err = io.WriteString(w, format.Diff(from, to))
	return err
}

func runQuery(cfg *QueryConfig, cc *cli.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: query <expr> [files]", cli.ErrUsage)
	}
	q, err := query.Compile(args[0])
	if err != nil {
		return err
	}
	w, closeOut, err := cfg.output(cc)
	if err != nil {
		return err
	}
	defer closeOut()
	for _, name := range argsOrStdin(args[1:]) {
		s, err := loadTree(cc, name)
		if err != nil {
			return err
		}
		paths, err := q.SelectPaths(s)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(w, p)
		}
	}
	return nil
}

func runPatch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	if cfg.Patch == "" {
		return fmt.Errorf("%w: -p patch.json required", cli.ErrUsage)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: patch -p patch.json [file]", cli.ErrUsage)
	}
	patch, err := os.ReadFile(cfg.Patch)
	if err != nil {
		return err
	}
	name := "-"
	if len(args) == 1 {
		name = args[0]
	}
	s, err := loadTree(cc, name)
	if err != nil {
		return err
	}
	if err := treestore.ApplyPatch(s, patch); err != nil {
		return err
	}
	w, closeOut, err := cfg.output(cc)
	if err != nil {
		return err
	}
	defer closeOut()
	return format.Print(w, s, cfg.printOpts()...)
}
