// treestore-gen compiles a YAML grammar definition into a Go source file
// declaring the same grammar with the grammar package API, so schemas
// maintained as data ship as compiled packages.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/softwell/genro-treestore/go-treestore/grammar"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

func MainCommand() *cli.Command {
	cfg := &Config{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommand("treestore-gen").
		WithSynopsis("treestore-gen [opts] <grammar.yaml>").
		WithDescription("Generate a Go grammar package from a YAML grammar definition.").
		WithOpts(sOpts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

type Config struct {
	OutputFile string `cli:"name=o desc='output file (default: <package>_gen.go)'"`
	Package    string `cli:"name=pkg desc='package name for the generated file (default: derived from input name)'"`
	FuncName   string `cli:"name=func desc='name of the generated constructor (default: New)'"`
	Check      bool   `cli:"name=check desc='check the grammar for unsatisfiable rules before generating'"`
}

func run(cfg *Config, cc *cli.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected one grammar file", cli.ErrUsage)
	}
	in := args[0]

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	def, err := grammar.LoadDef(f)
	f.Close()
	if err != nil {
		return err
	}
	// Build once to surface configuration errors at generation time.
	g, err := def.Build()
	if err != nil {
		return err
	}
	if cfg.Check {
		if err := g.Check(); err != nil {
			return err
		}
	}

	pkg := cfg.Package
	if pkg == "" {
		pkg = packageName(in)
	}
	funcName := cfg.FuncName
	if funcName == "" {
		funcName = "New"
	}
	out := cfg.OutputFile
	if out == "" {
		out = pkg + "_gen.go"
	}

	src, err := generate(pkg, funcName, in, def)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, src, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cc.Out, "wrote %s\n", out)
	return nil
}

func packageName(in string) string {
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, base)
	if base == "" {
		return "grammar"
	}
	return base + "grammar"
}
