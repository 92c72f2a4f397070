// Package finetune fine-tunes a text classifier on a labeled dataset and evaluates it.
package finetune

import (
	"path/filepath"
	"time"

	"github.com/kiteco/deepset/kite-go/finetune/model"
	"github.com/kiteco/deepset/kite-go/finetune/runner"
	"github.com/kiteco/deepset/kite-golib/awsutil"
	"github.com/kiteco/deepset/kite-golib/envutil"
	"github.com/kiteco/deepset/kite-golib/errors"
)

// Defaults of a run
const (
	DatasetName    = "pi_deepset"
	MaxLength      = 512
	TrainBatchSize = 4
	ValidBatchSize = 2
	Epochs         = 2
	LearningRate   = 1e-5
)

// Config of a run. Flags of the command line tools map onto it one to one.
type Config struct {
	DatasetName string `arg:"--dataset" help:"name of the dataset, splits are read from <dataset-dir>/<dataset>/<split>.parquet"`
	DatasetDir  string `arg:"--dataset-dir" help:"directory holding the datasets"`
	ResultsDir  string `arg:"--results-dir" help:"directory for the run report and loss plot"`

	MaxLength      int     `arg:"--max-length" help:"max number of tokens per example, boundary tokens included"`
	TrainBatchSize int     `arg:"--train-batch-size"`
	ValidBatchSize int     `arg:"--valid-batch-size"`
	Epochs         int     `arg:"--epochs"`
	LearningRate   float64 `arg:"--lr"`
	LogEvery       int     `arg:"--log-every" help:"steps between two progress lines, 0 disables them"`
	Shuffle        bool    `arg:"--shuffle" help:"shuffle the batches of every epoch, --shuffle=false disables it"`
	Seed           int64   `arg:"--seed" help:"seed for shuffling and model initialization"`
	Workers        int     `arg:"--workers" help:"goroutines encoding upcoming batches, 0 encodes inline"`
	ApplyUpdates   bool    `arg:"--apply-updates" help:"let the optimizer update the parameters after backward"`
	Device         string  `arg:"--device" help:"cpu, gpu or auto"`

	ModelPath    string `arg:"--model-path" help:"where the trained model is written"`
	VocabPath    string `arg:"--vocab-path" help:"where the tokenizer vocabulary is written"`
	UploadPrefix string `arg:"--upload" help:"s3:// prefix the model and vocabulary are copied to"`
	Plot         bool   `arg:"--plot" help:"write a plot of the validation losses to the results dir"`
	Progress     bool   `arg:"--progress" help:"show progress bars"`
	RunID        string `arg:"--run-id" help:"identifier of the run, defaults to the start time"`
}

// DefaultConfig returns the configuration of the reference run. DATASET_DIR and MODEL_DIR
// override the default dataset and model directories, DEEPSET_WORKERS the number of
// prefetch workers and DEEPSET_PROGRESS enables progress bars.
func DefaultConfig() Config {
	modelDir := envutil.GetenvDefault("MODEL_DIR", "models")
	return Config{
		DatasetName:    DatasetName,
		DatasetDir:     envutil.GetenvDefault("DATASET_DIR", "datasets"),
		ResultsDir:     "results",
		MaxLength:      MaxLength,
		TrainBatchSize: TrainBatchSize,
		ValidBatchSize: ValidBatchSize,
		Epochs:         Epochs,
		LearningRate:   LearningRate,
		LogEvery:       runner.DefaultLogEvery,
		Shuffle:        true,
		Workers:        envutil.GetenvDefaultInt("DEEPSET_WORKERS", 0),
		ApplyUpdates:   false,
		Progress:       envutil.GetenvBool("DEEPSET_PROGRESS"),
		Device:         string(model.Auto),
		ModelPath:      filepath.Join(modelDir, "deepset_linear.gob.gz"),
		VocabPath:      filepath.Join(modelDir, "vocab_deepset.txt"),
	}
}

// Validate checks the sizes, paths and device
func (c Config) Validate() error {
	var errs errors.Errors
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = errors.Append(errs, errors.InvalidArgumentf(format, args...))
		}
	}
	check(c.DatasetName != "", "dataset name is empty")
	check(c.DatasetDir != "", "dataset dir is empty")
	check(c.MaxLength >= 2, "max length %d cannot hold the boundary tokens", c.MaxLength)
	check(c.TrainBatchSize > 0, "train batch size must be positive, got %d", c.TrainBatchSize)
	check(c.ValidBatchSize > 0, "valid batch size must be positive, got %d", c.ValidBatchSize)
	check(c.Epochs >= 0, "epochs must not be negative, got %d", c.Epochs)
	check(c.LearningRate > 0, "learning rate must be positive, got %v", c.LearningRate)
	check(c.LogEvery >= 0, "log every must not be negative, got %d", c.LogEvery)
	check(c.Workers >= 0, "workers must not be negative, got %d", c.Workers)
	check(c.ModelPath != "", "model path is empty")
	check(c.VocabPath != "", "vocab path is empty")
	if _, err := model.ParseDevice(c.Device); err != nil {
		errs = errors.Append(errs, err)
	}
	if c.UploadPrefix != "" {
		if _, err := awsutil.ValidateURI(c.UploadPrefix); err != nil {
			errs = errors.Append(errs, errors.InvalidArgumentf("upload prefix: %v", err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (c Config) runID() string {
	if c.RunID != "" {
		return c.RunID
	}
	return time.Now().Format("20060102-150405")
}
