package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Aliases:     []string{"out"},
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "i",
			Aliases:     []string{"I", "ifmt"},
			Description: "input format: rune/r, json/j, yaml/y, xml/x",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: rune/r, json/j, yaml/y, xml/x",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "vectrune").
		WithSynopsis("vectrune [opts] [file]").
		WithDescription(mainDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return vectruneMain(cfg, cc, args)
		})
}

const mainDescription = `vectrune reads a document in rune, yaml, json or xml form and
writes it back out, optionally merging in values from another document,
reshaping it, patching it or calculating over it.

Merging

  vectrune -i json input.json -m 'base.rune@environment.preview(name=api on image from image)'

reads input.json, resolves the selector against base.rune and sets the
image field of the first preview element named api from input.json's
image key. The merged base document is written out, in base.rune's
format unless -O says otherwise.

A selector is dot-separated path segments: plain names, (a|b)
alternation groups fanning out over whichever alternatives exist, and
[] fanning out over every element of a list or object. The trailing
parenthesized instruction is either a keyed update

  (key_field=target_value on value_field from source_key)

or one or more direct assignments

  (dest_field from source_key, dest2 from source2)

With no instruction, the input document's top level fields are merged
into each matched object.

Transforming

  vectrune data.rune -t '@Names names:[@Skateboarder.name|unique|sort]'

builds a new document by collecting record fields. Modifiers: unique,
sort, sort:desc, and ==literal filters on the collected field.

Calculating

  vectrune data.rune -c 'avg Skateboarder.age'

prints an aggregate (avg, sum, min, max, count) over a section's
records, or the value of a general expression over the document.`

func vectruneMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	return run(cfg, cc, args)
}
