package main

import (
	"github.com/kiteco/deepset/kite-go/finetune/dataset"
	"github.com/kiteco/deepset/kite-golib/kitelog"
	"github.com/kiteco/deepset/kite-golib/tokenize"
	"github.com/kiteco/deepset/kite-golib/tokenize/hftokenizer"
	"github.com/kiteco/deepset/kite-golib/tokenize/wordpiece"
)

// TokenizerArgs select the tokenizer of a command, it is embedded in the args of several commands
type TokenizerArgs struct {
	Vocab       string `arg:"--vocab" help:"wordpiece vocab.txt, built from the train split if empty"`
	HFTokenizer string `arg:"--hf-tokenizer" help:"HuggingFace tokenizer.json, takes precedence over --vocab"`
	VocabSize   int    `arg:"--vocab-size" help:"size of a vocab built from the train split"`
	Lowercase   bool   `arg:"--lowercase" help:"lowercase text before wordpiece tokenization"`
}

// load returns the selected tokenizer. Without a vocab or tokenizer file, a wordpiece vocab
// is built from the train split read by loader.
func (a TokenizerArgs) load(loader *dataset.Loader) (tokenize.Tokenizer, error) {
	switch {
	case a.HFTokenizer != "":
		tok, err := hftokenizer.New(a.HFTokenizer, hftokenizer.DefaultOptions())
		if err != nil {
			return nil, err
		}
		return tok, nil
	case a.Vocab != "":
		enc, err := wordpiece.NewEncoder(a.Vocab, a.Lowercase)
		if err != nil {
			return nil, err
		}
		return enc, nil
	}

	table, err := loader.Load(dataset.Train)
	if err != nil {
		return nil, err
	}
	enc, err := wordpiece.BuildEncoder(table.Texts(), a.VocabSize, a.Lowercase)
	if err != nil {
		return nil, err
	}
	kitelog.Basic.Printf("built a vocab of %d tokens from %d rows", enc.VocabSize(), table.Len())
	return enc, nil
}

func defaultTokenizerArgs() TokenizerArgs {
	return TokenizerArgs{
		VocabSize: 30000,
		Lowercase: true,
	}
}
