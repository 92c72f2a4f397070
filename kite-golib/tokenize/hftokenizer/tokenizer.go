//go:build tokenizers

package hftokenizer

import (
	"github.com/daulet/tokenizers"
	"github.com/kiteco/deepset/kite-golib/errors"
	"github.com/kiteco/deepset/kite-golib/tokenize"
)

// Tokenizer wraps a tokenizers.Tokenizer loaded from a tokenizer.json file
type Tokenizer struct {
	path string
	opts Options
	tk   *tokenizers.Tokenizer
}

var _ tokenize.Tokenizer = (*Tokenizer)(nil)

// New loads the tokenizer at path
func New(path string, opts Options) (*Tokenizer, error) {
	tk, err := tokenizers.FromFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load tokenizer %s", path)
	}
	return &Tokenizer{path: path, opts: opts, tk: tk}, nil
}

// Encode implements tokenize.Tokenizer
func (t *Tokenizer) Encode(text string, maxLength int) ([]int64, []int64, error) {
	if maxLength < 2 {
		return nil, nil, errors.InvalidArgumentf("max length %d cannot hold the boundary tokens", maxLength)
	}
	raw, _ := t.tk.Encode(text, true)
	ids := make([]int64, len(raw))
	for i, id := range raw {
		ids[i] = int64(id)
	}
	ids = tokenize.TruncateWithBoundary(ids, maxLength)
	return ids, tokenize.AttentionMask(len(ids)), nil
}

// Decode implements tokenize.Tokenizer
func (t *Tokenizer) Decode(ids []int64) string {
	raw := make([]uint32, len(ids))
	for i, id := range ids {
		raw[i] = uint32(id)
	}
	return t.tk.Decode(raw, true)
}

// PadID implements tokenize.Tokenizer
func (t *Tokenizer) PadID() int64 {
	return t.opts.PadID
}

// VocabSize implements tokenize.Tokenizer
func (t *Tokenizer) VocabSize() int {
	return int(t.tk.VocabSize())
}

// SaveVocabulary copies the tokenizer file to path
func (t *Tokenizer) SaveVocabulary(path string) error {
	return copyFile(t.path, path)
}

// Close releases the underlying tokenizer
func (t *Tokenizer) Close() error {
	return t.tk.Close()
}
