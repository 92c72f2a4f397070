package finetune

import (
	"os"
	"path/filepath"
	"time"

	humanize "github.com/dustin/go-humanize"

	"github.com/kiteco/deepset/kite-go/finetune/batch"
	"github.com/kiteco/deepset/kite-go/finetune/dataset"
	"github.com/kiteco/deepset/kite-go/finetune/encode"
	"github.com/kiteco/deepset/kite-go/finetune/metrics"
	"github.com/kiteco/deepset/kite-go/finetune/runner"
	"github.com/kiteco/deepset/kite-golib/awsutil"
	"github.com/kiteco/deepset/kite-golib/errors"
	"github.com/kiteco/deepset/kite-golib/serialization"
)

// Report describes a finished run, it is written as JSON to the results dir
type Report struct {
	Dataset    string           `json:"dataset"`
	RunID      string           `json:"run_id"`
	Device     string           `json:"device"`
	Config     Config           `json:"config"`
	Train      []runner.Summary `json:"train"`
	Validation runner.Summary   `json:"validation"`
	Metrics    metrics.Report   `json:"metrics"`
	// Artifacts lists the written files, local paths then s3 uris
	Artifacts []string      `json:"artifacts"`
	Duration  time.Duration `json:"duration"`
}

// Run trains on the train split for the configured number of epochs, validates on the
// validation split and writes the model and vocabulary. A missing split aborts the run
// before any training.
func Run(ctx *Context) (Report, error) {
	start := time.Now()
	cfg := ctx.Config
	logger := ctx.Logger
	defer logger.Durations.Flush(logger)

	report := Report{
		Dataset: cfg.DatasetName,
		RunID:   cfg.RunID,
		Device:  string(ctx.Device),
		Config:  cfg,
	}
	logger.Printf("running on %s", ctx.Device)

	loadDone := logger.Durations.Track("load")
	loader := &dataset.Loader{
		Fs:     ctx.Fs,
		Dir:    cfg.DatasetDir,
		Name:   cfg.DatasetName,
		Logger: logger,
	}
	trainTable, err := loader.Load(dataset.Train)
	if err != nil {
		return report, err
	}
	validTable, err := loader.Load(dataset.Validation)
	if err != nil {
		return report, err
	}
	loadDone()
	logger.Printf("loaded %s train and %s validation rows",
		humanize.Comma(int64(trainTable.Len())), humanize.Comma(int64(validTable.Len())))

	trainLoader := &batch.Loader{
		Source:    encode.NewEncoder(trainTable, ctx.Tokenizer, cfg.MaxLength),
		BatchSize: cfg.TrainBatchSize,
		Shuffle:   cfg.Shuffle,
		Seed:      cfg.Seed,
		PadID:     ctx.Tokenizer.PadID(),
		Workers:   cfg.Workers,
	}
	validLoader := &batch.Loader{
		Source:    encode.NewEncoder(validTable, ctx.Tokenizer, cfg.MaxLength),
		BatchSize: cfg.ValidBatchSize,
		Shuffle:   cfg.Shuffle,
		Seed:      cfg.Seed,
		PadID:     ctx.Tokenizer.PadID(),
		Workers:   cfg.Workers,
	}

	r := &runner.Runner{
		Model:        ctx.Model,
		Optimizer:    ctx.Optimizer,
		ApplyUpdates: cfg.ApplyUpdates,
		LogEvery:     cfg.LogEvery,
		Logger:       logger,
		Progress:     cfg.Progress,
	}

	trainDone := logger.Durations.Track("train")
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		it := trainLoader.Epoch(epoch)
		s, err := r.RunEpoch(runner.Train, it)
		it.Close()
		if err != nil {
			return report, errors.Wrapf(err, "epoch %d failed", epoch)
		}
		report.Train = append(report.Train, s)
		logger.Printf("The Total Accuracy for Epoch %d: %v", epoch, s.Accuracy)
		logger.Printf("Training Loss Epoch: %v", s.Loss)
		logger.Printf("Training Accuracy Epoch: %v", s.Accuracy)
	}
	trainDone()

	validDone := logger.Durations.Track("validate")
	r.Collector = metrics.NewCollector(ctx.Model.NumClasses())
	it := validLoader.Epoch(cfg.Epochs)
	valid, err := r.RunEpoch(runner.Eval, it)
	it.Close()
	if err != nil {
		return report, errors.Wrapf(err, "validation failed")
	}
	validDone()
	report.Validation = valid
	report.Metrics = r.Collector.Report()
	logger.Printf("Validation Loss Epoch: %v", valid.Loss)
	logger.Printf("Validation Accuracy Epoch: %v", valid.Accuracy)
	logger.Printf("Accuracy on test data = %0.2f%%", valid.Accuracy)

	saveDone := logger.Durations.Track("save")
	artifacts, err := saveArtifacts(ctx)
	report.Artifacts = artifacts
	if err != nil {
		return report, err
	}
	saveDone()

	report.Duration = time.Since(start)
	if err := writeResults(ctx, &report, r.Collector.Losses); err != nil {
		return report, err
	}
	return report, nil
}

// saveArtifacts writes the model and vocabulary, then copies them to the upload prefix if there is one
func saveArtifacts(ctx *Context) ([]string, error) {
	cfg := ctx.Config
	for _, path := range []string{cfg.ModelPath, cfg.VocabPath} {
		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			return nil, errors.Wrapf(err, "unable to create dir for %s", path)
		}
	}
	if err := ctx.Model.Save(cfg.ModelPath); err != nil {
		return nil, errors.Wrapf(err, "error saving model to %s", cfg.ModelPath)
	}
	if err := ctx.Tokenizer.SaveVocabulary(cfg.VocabPath); err != nil {
		return []string{cfg.ModelPath}, errors.Wrapf(err, "error saving vocabulary to %s", cfg.VocabPath)
	}
	artifacts := []string{cfg.ModelPath, cfg.VocabPath}
	for _, path := range artifacts {
		if fi, err := os.Stat(path); err == nil {
			ctx.Logger.Printf("wrote %s (%s)", path, humanize.Bytes(uint64(fi.Size())))
		}
	}

	if cfg.UploadPrefix == "" {
		return artifacts, nil
	}
	for _, path := range []string{cfg.ModelPath, cfg.VocabPath} {
		uri, err := awsutil.JoinURI(cfg.UploadPrefix, cfg.RunID, filepath.Base(path))
		if err != nil {
			return artifacts, err
		}
		if err := awsutil.UploadFile(path, uri); err != nil {
			return artifacts, err
		}
		artifacts = append(artifacts, uri)
	}
	return artifacts, nil
}

// writeResults writes the report and the loss plot, a results dir of "" skips both
func writeResults(ctx *Context, report *Report, losses []float64) error {
	cfg := ctx.Config
	if cfg.ResultsDir == "" {
		return nil
	}
	base := filepath.Join(cfg.ResultsDir, cfg.DatasetName+"_"+cfg.RunID)

	if cfg.Plot && len(losses) > 0 {
		path := base + "_validation_loss.png"
		if err := os.MkdirAll(cfg.ResultsDir, os.ModePerm); err != nil {
			return errors.Wrapf(err, "unable to create %s", cfg.ResultsDir)
		}
		if err := metrics.PlotLosses(path, cfg.DatasetName+" validation loss", losses); err != nil {
			return err
		}
		report.Artifacts = append(report.Artifacts, path)
	}

	path := base + ".json"
	if err := serialization.Encode(path, report); err != nil {
		return errors.Wrapf(err, "error writing report to %s", path)
	}
	ctx.Logger.Printf("wrote report to %s", path)
	return nil
}
