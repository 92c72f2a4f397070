package main

import (
	"fmt"
	"strings"

	"github.com/kiteco/deepset/kite-go/finetune"
	"github.com/kiteco/deepset/kite-go/finetune/dataset"
	"github.com/kiteco/deepset/kite-go/finetune/encode"
	"github.com/kiteco/deepset/kite-golib/cmdline"
	"github.com/kiteco/deepset/kite-golib/kitelog"
	"github.com/kiteco/deepset/kite-golib/tokenize"
	"github.com/kiteco/deepset/kite-golib/tokenize/wordpiece"
)

var inspectCmd = cmdline.Command{
	Name:     "inspect",
	Synopsis: "show how a row of a split is normalized and tokenized",
	Args: func() *inspectArgs {
		cfg := finetune.DefaultConfig()
		return &inspectArgs{
			DatasetDir:    cfg.DatasetDir,
			Dataset:       cfg.DatasetName,
			Split:         string(dataset.Train),
			MaxLength:     cfg.MaxLength,
			TokenizerArgs: defaultTokenizerArgs(),
		}
	}(),
}

type inspectArgs struct {
	TokenizerArgs

	Row        int    `arg:"positional" help:"index of the row"`
	Split      string `arg:"--split"`
	DatasetDir string `arg:"--dataset-dir"`
	Dataset    string `arg:"--dataset"`
	MaxLength  int    `arg:"--max-length"`
}

func (args *inspectArgs) Validate() error {
	_, err := dataset.ParseSplit(args.Split)
	return err
}

func (args *inspectArgs) Handle() error {
	loader := dataset.NewLoader(args.DatasetDir, args.Dataset, kitelog.Basic)
	table, err := loader.Load(dataset.Split(args.Split))
	if err != nil {
		return err
	}
	tok, err := args.TokenizerArgs.load(loader)
	if err != nil {
		return err
	}

	rec, err := encode.NewEncoder(table, tok, args.MaxLength).Get(args.Row)
	if err != nil {
		return err
	}
	row := table.Row(args.Row)

	fmt.Printf("label:      %d\n", row.Label)
	fmt.Printf("raw:        %q\n", row.UserInput)
	fmt.Printf("normalized: %q\n", tokenize.Normalize(row.UserInput))
	if wp, ok := tok.(*wordpiece.Encoder); ok {
		fmt.Printf("tokens:     %s\n", strings.Join(wp.Tokens(tokenize.Normalize(row.UserInput)), " "))
	}
	fmt.Printf("ids:        %v\n", rec.IDs)
	fmt.Printf("decoded:    %q\n", tok.Decode(rec.IDs))
	return nil
}
