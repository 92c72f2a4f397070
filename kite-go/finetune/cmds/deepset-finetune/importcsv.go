package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/kiteco/deepset/kite-go/finetune"
	"github.com/kiteco/deepset/kite-go/finetune/dataset"
	"github.com/kiteco/deepset/kite-golib/cmdline"
)

var importCSVCmd = cmdline.Command{
	Name:     "import-csv",
	Synopsis: "convert a user_input,label csv into a parquet split",
	Args: func() *importCSVArgs {
		cfg := finetune.DefaultConfig()
		return &importCSVArgs{
			DatasetDir: cfg.DatasetDir,
			Dataset:    cfg.DatasetName,
		}
	}(),
}

type importCSVArgs struct {
	In         string `arg:"positional,required" help:"csv file with a user_input,label header"`
	Split      string `arg:"--split,required" help:"train, validation or test"`
	DatasetDir string `arg:"--dataset-dir"`
	Dataset    string `arg:"--dataset"`
}

func (args *importCSVArgs) Validate() error {
	_, err := dataset.ParseSplit(args.Split)
	return err
}

func (args *importCSVArgs) Handle() error {
	f, err := os.Open(args.In)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := dataset.ReadCSV(f)
	if err != nil {
		return err
	}

	loader := &dataset.Loader{Dir: args.DatasetDir, Name: args.Dataset}
	path := loader.Path(dataset.Split(args.Split))
	if err := dataset.WriteSplit(afero.NewOsFs(), path, rows); err != nil {
		return err
	}
	fmt.Printf("wrote %d rows to %s\n", len(rows), path)
	return nil
}
