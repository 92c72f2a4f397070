// Package batch pads encoded records into rectangular batches and iterates over them.
package batch

import (
	"github.com/kiteco/deepset/kite-go/finetune/encode"
)

// Batch is a Size() x Width() grid of token ids and mask values plus one label per row
type Batch struct {
	IDs    [][]int64
	Mask   [][]int64
	Labels []int64
}

// Size is the number of rows
func (b *Batch) Size() int {
	return len(b.Labels)
}

// Width is the padded length of every row
func (b *Batch) Width() int {
	if len(b.IDs) == 0 {
		return 0
	}
	return len(b.IDs[0])
}

// Collate right-pads the records to the length of the longest one, ids with padID
// and the mask with 0. Row i of the batch is records[i].
func Collate(records []encode.Record, padID int64) *Batch {
	var width int
	for _, r := range records {
		if r.Len() > width {
			width = r.Len()
		}
	}

	b := &Batch{
		IDs:    make([][]int64, len(records)),
		Mask:   make([][]int64, len(records)),
		Labels: make([]int64, len(records)),
	}
	for i, r := range records {
		ids := make([]int64, width)
		mask := make([]int64, width)
		copy(ids, r.IDs)
		copy(mask, r.Mask)
		for j := r.Len(); j < width; j++ {
			ids[j] = padID
		}
		b.IDs[i] = ids
		b.Mask[i] = mask
		b.Labels[i] = r.Label
	}
	return b
}
