// Package encode turns dataset rows into token id sequences.
package encode

import (
	"github.com/kiteco/deepset/kite-go/finetune/dataset"
	"github.com/kiteco/deepset/kite-golib/errors"
	"github.com/kiteco/deepset/kite-golib/tokenize"
)

// Record is an encoded row, len(IDs) == len(Mask) <= the encoder's max length
type Record struct {
	IDs   []int64
	Mask  []int64
	Label int64
}

// Len of the token sequence
func (r Record) Len() int {
	return len(r.IDs)
}

// Encoder encodes the rows of a table on every access, nothing is cached.
// It only reads the table and the tokenizer, so it can be shared by prefetch workers.
type Encoder struct {
	table     *dataset.Table
	tokenizer tokenize.Tokenizer
	maxLength int
}

// NewEncoder ...
func NewEncoder(table *dataset.Table, tokenizer tokenize.Tokenizer, maxLength int) *Encoder {
	return &Encoder{
		table:     table,
		tokenizer: tokenizer,
		maxLength: maxLength,
	}
}

// Len is the number of rows
func (e *Encoder) Len() int {
	return e.table.Len()
}

// MaxLength ...
func (e *Encoder) MaxLength() int {
	return e.maxLength
}

// Get encodes the i-th row
func (e *Encoder) Get(i int) (Record, error) {
	if i < 0 || i >= e.table.Len() {
		return Record{}, errors.InvalidArgumentf("row %d out of range [0, %d)", i, e.table.Len())
	}
	row := e.table.Row(i)

	ids, mask, err := e.tokenizer.Encode(tokenize.Normalize(row.UserInput), e.maxLength)
	if err != nil {
		return Record{}, errors.Wrapf(err, "error encoding row %d", i)
	}
	if len(ids) != len(mask) {
		return Record{}, errors.Errorf("row %d: %d ids but %d mask values", i, len(ids), len(mask))
	}
	return Record{
		IDs:   ids,
		Mask:  mask,
		Label: row.Label,
	}, nil
}
