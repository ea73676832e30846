package main

import (
	"fmt"
	"io"
	"os"

	"github.com/davethomas11/vectrune/format"
	"github.com/davethomas11/vectrune/runefmt"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode rune output with color'"`
	Diff  bool `cli:"name=diff desc='show a line diff of what the merge or patch changed'"`

	MergeWith string `cli:"name=merge-with aliases=m desc='merge spec: <basefile>@<selector>'"`
	Transform string `cli:"name=transform aliases=t desc='transform spec: @Target key:[@Section.field|...]'"`
	Calculate string `cli:"name=calculate aliases=c desc='calculation: avg|sum|min|max|count Section.field, or an expression'"`
	Patch     string `cli:"name=patch aliases=p desc='JSON patch file to apply'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
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

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) encOpts(w io.Writer, f format.Format) []runefmt.EncodeOption {
	if f != format.RuneFormat {
		return nil
	}
	if cfg.Color {
		return []runefmt.EncodeOption{runefmt.EncodeColors(runefmt.NewColors())}
	}
	file, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(file.Fd()) {
		return []runefmt.EncodeOption{runefmt.EncodeColors(runefmt.NewColors())}
	}
	return nil
}
