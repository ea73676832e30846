package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davethomas11/vectrune"
	"github.com/davethomas11/vectrune/calc"
	"github.com/davethomas11/vectrune/codec"
	"github.com/davethomas11/vectrune/format"
	"github.com/davethomas11/vectrune/ir"
	"github.com/davethomas11/vectrune/libdiff"
	"github.com/davethomas11/vectrune/transform"

	"github.com/scott-cotton/cli"
)

func run(cfg *MainConfig, cc *cli.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: at most one input file, got %d", cli.ErrUsage, len(args))
	}
	doc, err := readInput(cfg, args)
	if err != nil {
		return err
	}

	if cfg.Calculate != "" {
		res, err := calc.Eval(doc.Root, cfg.Calculate)
		if err != nil {
			return err
		}
		fmt.Fprintln(cc.Out, res)
		return nil
	}

	if cfg.Transform != "" {
		root, err := transform.Apply(doc.Root, cfg.Transform)
		if err != nil {
			return err
		}
		doc = &vectrune.Document{Root: root, Format: doc.Format}
	}

	var before *ir.Node
	if cfg.Diff {
		before = doc.Root.Clone()
	}

	if cfg.MergeWith != "" {
		doc, err = mergeWith(cfg, doc)
		if err != nil {
			return err
		}
		if cfg.Diff {
			// diff the merged base against its pre-merge state
			baseDoc, err := readBase(cfg)
			if err != nil {
				return err
			}
			before = baseDoc.Root
		}
	}

	if cfg.Patch != "" {
		patchDoc, err := parseFile(cfg.Patch, format.JSONFormat)
		if err != nil {
			return err
		}
		patched, err := codec.ApplyPatch(doc.Root, patchDoc)
		if err != nil {
			return err
		}
		doc = &vectrune.Document{Root: patched, Format: doc.Format}
	}

	outFormat := doc.Format
	if cfg.OutFormat != nil {
		outFormat = *cfg.OutFormat
	}

	if cfg.Diff && before != nil {
		from, err := encodeText(before, outFormat)
		if err != nil {
			return err
		}
		to, err := encodeText(doc.Root, outFormat)
		if err != nil {
			return err
		}
		for _, line := range libdiff.Changed(libdiff.Lines(from, to)) {
			fmt.Fprintln(cc.Out, line)
		}
		return nil
	}

	return codec.Encode(doc.Root, cc.Out, outFormat, cfg.encOpts(cc.Out, outFormat)...)
}

func readInput(cfg *MainConfig, args []string) (*vectrune.Document, error) {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	var (
		d   []byte
		err error
	)
	if path == "-" {
		d, err = io.ReadAll(os.Stdin)
	} else {
		d, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	f := format.FromPath(path)
	if cfg.InFormat != nil {
		f = *cfg.InFormat
	}
	root, err := codec.Parse(d, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &vectrune.Document{Root: root, Format: f}, nil
}

// mergeWith merges the input document into the base named by the
// --merge-with argument, <basefile>@<selector>, and returns the merged
// base.
func mergeWith(cfg *MainConfig, input *vectrune.Document) (*vectrune.Document, error) {
	base, err := readBase(cfg)
	if err != nil {
		return nil, err
	}
	selText := mergeSelector(cfg.MergeWith)
	rep, err := vectrune.MergeDocuments(base, input, selText)
	if err != nil {
		return nil, fmt.Errorf("merge %q: %w", selText, err)
	}
	if rep.Unmatched > 0 {
		fmt.Fprintf(os.Stderr, "merge %q: %d location(s) had no element matching the target value\n",
			selText, rep.Unmatched)
	}
	return base, nil
}

func readBase(cfg *MainConfig) (*vectrune.Document, error) {
	basePath, selText, ok := strings.Cut(cfg.MergeWith, "@")
	if !ok || basePath == "" || selText == "" {
		return nil, fmt.Errorf("%w: merge spec must be <basefile>@<selector>, got %q",
			cli.ErrUsage, cfg.MergeWith)
	}
	f := format.FromPath(basePath)
	root, err := parseFile(basePath, f)
	if err != nil {
		return nil, err
	}
	return &vectrune.Document{Root: root, Format: f}, nil
}

func mergeSelector(spec string) string {
	_, selText, _ := strings.Cut(spec, "@")
	return selText
}

func encodeText(root *ir.Node, f format.Format) (string, error) {
	var sb strings.Builder
	if err := codec.Encode(root, &sb, f); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func parseFile(path string, f format.Format) (*ir.Node, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := codec.Parse(d, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}
