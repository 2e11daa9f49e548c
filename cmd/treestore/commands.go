package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/softwell/genro-treestore/go-treestore/format"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: text/t, json/j",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "treestore").
		WithSynopsis("treestore [opts] command [opts]").
		WithDescription("treestore is a tool for working with attributed label trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: no command", cli.ErrUsage)
			}
			return fmt.Errorf("%w: unknown command %q", cli.ErrUsage, args[0])
		}).
		WithSubs(
			FmtCommand(cfg),
			ValidateCommand(cfg),
			DiffCommand(cfg),
			QueryCommand(cfg),
			PatchCommand(cfg))
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommand("fmt").
		WithAliases("f").
		WithOpts(opts...).
		WithSynopsis("fmt [files]").
		WithDescription("render tree files as text or json, with color on terminals").
		WithRun(func(cc *cli.Context, args []string) error {
			return runFmt(cfg, cc, args)
		})
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommand("validate").
		WithAliases("v", "val").
		WithOpts(opts...).
		WithSynopsis("validate [-g grammar.yaml] [files]").
		WithDescription("validate tree files against a grammar and report every violation").
		WithRun(func(cc *cli.Context, args []string) error {
			return runValidate(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommand("diff").
		WithAliases("d").
		WithSynopsis("diff <from> <to>").
		WithDescription("line diff of the canonical renderings of two tree files").
		WithRun(func(cc *cli.Context, args []string) error {
			return runDiff(cfg, cc, args)
		})
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	return cli.NewCommand("query").
		WithAliases("q").
		WithSynopsis("query <expr> [files]").
		WithDescription("list paths of nodes matching an expression over label/tag/attr/value").
		WithRun(func(cc *cli.Context, args []string) error {
			return runQuery(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommand("patch").
		WithAliases("p").
		WithOpts(opts...).
		WithSynopsis("patch -p patch.json [file]").
		WithDescription("apply an RFC 6902 patch to a tree file's plain structure").
		WithRun(func(cc *cli.Context, args []string) error {
			return runPatch(cfg, cc, args)
		})
}

type MainConfig struct {
	Out       string
	OutFormat *format.Format

	Main *cli.Command
}

type FmtConfig struct {
	*MainConfig
	Color bool `cli:"name=color desc='force color output'"`
}

type ValidateConfig struct {
	*MainConfig
	Grammar string `cli:"name=g aliases=grammar desc='grammar yaml file (default: builtin html5 subset)'"`
	Check   bool   `cli:"name=check desc='also check the grammar for unsatisfiable rules'"`
}

type DiffConfig struct {
	*MainConfig
}

type QueryConfig struct {
	*MainConfig
}

type PatchConfig struct {
	*MainConfig
	Patch string `cli:"name=p aliases=patch desc='rfc 6902 patch file'"`
}

func (cfg *MainConfig) fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

func (cfg *MainConfig) outOpt(_ *cli.Context, v string) (any, error) {
	cfg.Out = v
	return v, nil
}
