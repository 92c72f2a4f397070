// Package hftokenizer adapts a HuggingFace tokenizer.json (e.g. distilbert-base-uncased) to tokenize.Tokenizer.
// The implementation links against the tokenizers library and is only built with the "tokenizers" build tag.
package hftokenizer

import (
	"io"
	"os"
	"path/filepath"

	"github.com/kiteco/deepset/kite-golib/errors"
)

// ErrUnavailable is returned when the binary was built without the tokenizers library
var ErrUnavailable = errors.New("hftokenizer: built without tokenizers support, rebuild with -tags tokenizers")

// Options configures a Tokenizer
type Options struct {
	// PadID is the id of the [PAD] token, 0 for BERT vocabularies
	PadID int64
}

// DefaultOptions matches the distilbert-base-uncased vocabulary
func DefaultOptions() Options {
	return Options{PadID: 0}
}

// copyFile is how vocabularies are saved, the tokenizer file is the vocabulary
func copyFile(src, dst string) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer errors.Defer(&err, out.Close)

	_, err = io.Copy(out, in)
	return err
}
