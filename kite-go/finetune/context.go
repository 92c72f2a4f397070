package finetune

import (
	"github.com/spf13/afero"

	"github.com/kiteco/deepset/kite-go/finetune/model"
	"github.com/kiteco/deepset/kite-golib/errors"
	"github.com/kiteco/deepset/kite-golib/kitelog"
	"github.com/kiteco/deepset/kite-golib/tokenize"
)

// Context holds everything a run uses. It is built once and passed by reference.
type Context struct {
	Config    Config
	Model     model.Classifier
	Tokenizer tokenize.Tokenizer
	Optimizer model.Optimizer
	Device    model.Device
	// Fs is where the dataset splits are read from, artifacts go to the OS filesystem
	Fs     afero.Fs
	Logger *kitelog.Logger
}

// NewContext validates the config and fills in the device, filesystem and logger.
// The optimizer defaults to Adam with the configured learning rate.
func NewContext(cfg Config, m model.Classifier, tok tokenize.Tokenizer, opt model.Optimizer) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if m == nil || tok == nil {
		return nil, errors.InvalidArgumentf("a model and a tokenizer are required")
	}
	device, err := model.ParseDevice(cfg.Device)
	if err != nil {
		return nil, err
	}
	cfg.RunID = cfg.runID()
	if opt == nil {
		opt = model.NewAdam(cfg.LearningRate)
	}
	return &Context{
		Config:    cfg,
		Model:     m,
		Tokenizer: tok,
		Optimizer: opt,
		Device:    device.Resolve(),
		Fs:        afero.NewOsFs(),
		Logger:    kitelog.NewForRun(cfg.DatasetName, cfg.RunID),
	}, nil
}
