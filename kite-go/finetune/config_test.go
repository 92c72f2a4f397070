package finetune

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiteco/deepset/kite-golib/errors"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("DATASET_DIR", "/data")
	t.Setenv("MODEL_DIR", "/models")

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "pi_deepset", cfg.DatasetName)
	assert.Equal(t, "/data", cfg.DatasetDir)
	assert.Equal(t, "/models/deepset_linear.gob.gz", cfg.ModelPath)
	assert.Equal(t, "/models/vocab_deepset.txt", cfg.VocabPath)
	assert.Equal(t, 512, cfg.MaxLength)
	assert.Equal(t, 4, cfg.TrainBatchSize)
	assert.Equal(t, 2, cfg.ValidBatchSize)
	assert.Equal(t, 2, cfg.Epochs)
	assert.Equal(t, 1e-5, cfg.LearningRate)
	assert.Equal(t, 5000, cfg.LogEvery)
	assert.True(t, cfg.Shuffle)
	assert.False(t, cfg.ApplyUpdates)
}

func TestValidate(t *testing.T) {
	tcs := []struct {
		name string
		edit func(*Config)
		msg  string
	}{
		{"batch size", func(c *Config) { c.TrainBatchSize = 0 }, "train batch size"},
		{"max length", func(c *Config) { c.MaxLength = 1 }, "max length"},
		{"device", func(c *Config) { c.Device = "tpu" }, "unknown device"},
		{"model path", func(c *Config) { c.ModelPath = "" }, "model path"},
		{"upload", func(c *Config) { c.UploadPrefix = "/tmp/models" }, "upload prefix"},
		{"learning rate", func(c *Config) { c.LearningRate = 0 }, "learning rate"},
	}
	for _, tc := range tcs {
		cfg := DefaultConfig()
		tc.edit(&cfg)
		err := cfg.Validate()
		require.Error(t, err, tc.name)
		assert.True(t, strings.Contains(err.Error(), tc.msg), "%s: %v", tc.name, err)
	}
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TrainBatchSize = 0
	cfg.ValidBatchSize = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, err.(errors.Errors), 2)
}

func TestNewContextRequiresCapabilities(t *testing.T) {
	_, err := NewContext(DefaultConfig(), nil, nil, nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}
