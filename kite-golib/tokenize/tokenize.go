// Package tokenize defines the tokenizer capability consumed by the fine-tuning pipeline.
package tokenize

import (
	"strings"
)

// Special tokens of BERT-style vocabularies
const (
	Pad            = "[PAD]"
	Unknown        = "[UNK]"
	Classification = "[CLS]"
	Separator      = "[SEP]"
	Mask           = "[MASK]"
)

// Tokenizer converts text to model inputs and back.
type Tokenizer interface {
	// Encode returns the token ids of text with the boundary tokens added, truncated to
	// at most maxLength ids, and an attention mask of the same length. It never pads.
	Encode(text string, maxLength int) (ids []int64, mask []int64, err error)
	// Decode is the inverse of Encode, special tokens are dropped.
	Decode(ids []int64) string
	// PadID is the id used to right-pad sequences into a batch.
	PadID() int64
	// VocabSize is the number of ids the tokenizer can produce.
	VocabSize() int
	// SaveVocabulary writes the vocabulary to path.
	SaveVocabulary(path string) error
}

// Normalize collapses all whitespace runs to single spaces and trims the ends
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// TruncateWithBoundary shortens ids to maxLength, keeping the trailing boundary token.
// ids is returned unchanged if it already fits.
func TruncateWithBoundary(ids []int64, maxLength int) []int64 {
	if len(ids) <= maxLength {
		return ids
	}
	if maxLength <= 0 {
		return nil
	}
	out := make([]int64, maxLength)
	copy(out, ids[:maxLength-1])
	out[maxLength-1] = ids[len(ids)-1]
	return out
}

// AttentionMask returns a mask marking n real positions
func AttentionMask(n int) []int64 {
	mask := make([]int64, n)
	for i := range mask {
		mask[i] = 1
	}
	return mask
}
