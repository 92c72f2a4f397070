package main

import (
	"fmt"

	"github.com/kiteco/deepset/kite-go/finetune"
	"github.com/kiteco/deepset/kite-go/finetune/batch"
	"github.com/kiteco/deepset/kite-go/finetune/dataset"
	"github.com/kiteco/deepset/kite-go/finetune/encode"
	"github.com/kiteco/deepset/kite-go/finetune/metrics"
	"github.com/kiteco/deepset/kite-go/finetune/model/linear"
	"github.com/kiteco/deepset/kite-go/finetune/runner"
	"github.com/kiteco/deepset/kite-golib/cmdline"
	"github.com/kiteco/deepset/kite-golib/kitelog"
	"github.com/kiteco/deepset/kite-golib/tokenize/wordpiece"
)

var evaluateCmd = cmdline.Command{
	Name:     "evaluate",
	Synopsis: "evaluate a saved linear classifier on a split",
	Args: func() *evaluateArgs {
		cfg := finetune.DefaultConfig()
		return &evaluateArgs{
			DatasetDir: cfg.DatasetDir,
			Dataset:    cfg.DatasetName,
			Split:      string(dataset.Test),
			Model:      cfg.ModelPath,
			Vocab:      cfg.VocabPath,
			MaxLength:  cfg.MaxLength,
			BatchSize:  cfg.ValidBatchSize,
			Lowercase:  true,
		}
	}(),
}

type evaluateArgs struct {
	DatasetDir string `arg:"--dataset-dir"`
	Dataset    string `arg:"--dataset"`
	Split      string `arg:"--split" help:"train, validation or test"`
	Model      string `arg:"--model"`
	Vocab      string `arg:"--vocab"`
	MaxLength  int    `arg:"--max-length"`
	BatchSize  int    `arg:"--batch-size"`
	Lowercase  bool   `arg:"--lowercase"`
	Progress   bool   `arg:"--progress"`
}

func (args *evaluateArgs) Validate() error {
	if _, err := dataset.ParseSplit(args.Split); err != nil {
		return err
	}
	if args.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", args.BatchSize)
	}
	return nil
}

func (args *evaluateArgs) Handle() error {
	logger := kitelog.Basic
	defer logger.Durations.Flush(logger)
	defer logger.Durations.Track("evaluate")()

	m, err := linear.Load(args.Model)
	if err != nil {
		return err
	}
	tok, err := wordpiece.NewEncoder(args.Vocab, args.Lowercase)
	if err != nil {
		return err
	}

	table, err := dataset.NewLoader(args.DatasetDir, args.Dataset, logger).Load(dataset.Split(args.Split))
	if err != nil {
		return err
	}
	loader := &batch.Loader{
		Source:    encode.NewEncoder(table, tok, args.MaxLength),
		BatchSize: args.BatchSize,
		PadID:     tok.PadID(),
	}

	r := &runner.Runner{
		Model:     m,
		Logger:    logger,
		Progress:  args.Progress,
		Collector: metrics.NewCollector(m.NumClasses()),
	}
	summary, err := r.RunEpoch(runner.Eval, loader.Epoch(0))
	if err != nil {
		return err
	}

	fmt.Printf("%s split: loss %.4f, accuracy %0.2f%%\n", args.Split, summary.Loss, summary.Accuracy)
	fmt.Print(r.Collector.Report().String())
	return nil
}
