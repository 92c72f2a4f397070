package main

import (
	"fmt"

	"github.com/kiteco/deepset/kite-go/finetune"
	"github.com/kiteco/deepset/kite-go/finetune/dataset"
	"github.com/kiteco/deepset/kite-go/finetune/model"
	"github.com/kiteco/deepset/kite-go/finetune/model/graph"
	"github.com/kiteco/deepset/kite-go/finetune/model/linear"
	"github.com/kiteco/deepset/kite-golib/cmdline"
	"github.com/kiteco/deepset/kite-golib/kitelog"
)

var trainCmd = cmdline.Command{
	Name:     "train",
	Synopsis: "fine-tune a classifier on the train split and validate it",
	Args: &trainArgs{
		Config:        finetune.DefaultConfig(),
		TokenizerArgs: defaultTokenizerArgs(),
		NumClasses:    2,
		Dim:           linear.DefaultDim,
	},
}

type trainArgs struct {
	finetune.Config
	TokenizerArgs

	TFGraph    string `arg:"--tf-graph" help:"TensorFlow graph to train instead of the linear classifier"`
	NumClasses int    `arg:"--num-classes"`
	Dim        int    `arg:"--dim" help:"embedding dimension of the linear classifier"`
}

func (args *trainArgs) Validate() error {
	if args.NumClasses < 2 {
		return fmt.Errorf("at least 2 classes are required, got %d", args.NumClasses)
	}
	return args.Config.Validate()
}

func (args *trainArgs) Handle() error {
	cfg := args.Config
	loader := dataset.NewLoader(cfg.DatasetDir, cfg.DatasetName, kitelog.Basic)

	tok, err := args.TokenizerArgs.load(loader)
	if err != nil {
		return err
	}

	device, err := model.ParseDevice(cfg.Device)
	if err != nil {
		return err
	}

	var m model.Classifier
	if args.TFGraph != "" {
		gm, err := graph.Load(args.TFGraph, args.NumClasses, device)
		if err != nil {
			return err
		}
		defer gm.Close()
		m = gm
	} else {
		lm, err := linear.New(linear.Options{
			VocabSize:  tok.VocabSize(),
			NumClasses: args.NumClasses,
			Dim:        args.Dim,
			Seed:       cfg.Seed,
		})
		if err != nil {
			return err
		}
		m = lm
	}

	ctx, err := finetune.NewContext(cfg, m, tok, model.NewAdam(cfg.LearningRate))
	if err != nil {
		return err
	}
	report, err := finetune.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Print(report.Metrics.String())
	return nil
}
