//go:build !tokenizers

package hftokenizer

import (
	"github.com/kiteco/deepset/kite-golib/tokenize"
)

// Tokenizer is unavailable without the "tokenizers" build tag
type Tokenizer struct {
	tokenize.Tokenizer
}

// New always fails with ErrUnavailable
func New(path string, opts Options) (*Tokenizer, error) {
	return nil, ErrUnavailable
}

// Close ...
func (t *Tokenizer) Close() error {
	return nil
}
