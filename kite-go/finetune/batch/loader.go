package batch

import (
	"io"

	"github.com/kiteco/deepset/kite-go/finetune/encode"
	"github.com/kiteco/deepset/kite-golib/errors"
	"github.com/kiteco/deepset/kite-golib/workerpool"
)

// Source is a random access sequence of encoded records, e.g. an *encode.Encoder
type Source interface {
	Len() int
	Get(i int) (encode.Record, error)
}

// Batches is a sequence of batches, Next returns io.EOF after the last one
type Batches interface {
	Next() (*Batch, error)
	Len() int
}

// Loader groups the records of a source into batches, once per epoch
type Loader struct {
	Source    Source
	BatchSize int
	Shuffle   bool
	Seed      int64
	PadID     int64
	// Workers > 0 encodes upcoming batches in the background, results are still returned in order
	Workers int
}

// NumBatches in an epoch
func (l *Loader) NumBatches() int {
	if l.BatchSize <= 0 {
		return 0
	}
	return (l.Source.Len() + l.BatchSize - 1) / l.BatchSize
}

// Epoch returns an iterator over the batches of the given epoch
func (l *Loader) Epoch(epoch int) *Iterator {
	sampler := Sampler{Shuffle: l.Shuffle, Seed: l.Seed}
	var chunks [][]int
	if l.BatchSize > 0 {
		chunks = Chunks(sampler.Order(l.Source.Len(), epoch), l.BatchSize)
	}

	it := &Iterator{
		source: l.Source,
		padID:  l.PadID,
		chunks: chunks,
	}
	if l.Workers > 0 {
		it.pool = workerpool.New(l.Workers)
		it.window = 2 * l.Workers
	}
	return it
}

type result struct {
	batch *Batch
	err   error
}

// Iterator yields the batches of one epoch
type Iterator struct {
	source Source
	padID  int64
	chunks [][]int

	// next chunk to return, and to schedule when prefetching
	next      int
	scheduled int

	pool    *workerpool.Pool
	window  int
	pending []chan result

	err error
}

var _ Batches = (*Iterator)(nil)

// Len is the number of batches in the epoch
func (it *Iterator) Len() int {
	return len(it.chunks)
}

// Next returns the next batch, io.EOF once the epoch is over, or the first
// error encountered while encoding, after which the iterator is closed.
func (it *Iterator) Next() (*Batch, error) {
	if it.err != nil {
		return nil, it.err
	}
	if it.next >= len(it.chunks) {
		it.Close()
		return nil, io.EOF
	}

	var b *Batch
	var err error
	if it.pool == nil {
		b, err = it.build(it.chunks[it.next])
	} else {
		it.schedule()
		res := <-it.pending[0]
		it.pending = it.pending[1:]
		b, err = res.batch, res.err
	}
	it.next++

	if err != nil {
		it.err = err
		it.Close()
		return nil, err
	}
	return b, nil
}

// Close stops background encoding, Next returns io.EOF afterwards.
// It is safe to call more than once.
func (it *Iterator) Close() {
	if it.err == nil {
		it.err = io.EOF
	}
	if it.pool != nil {
		it.pool.Stop()
	}
}

func (it *Iterator) schedule() {
	for it.scheduled < len(it.chunks) && len(it.pending) < it.window {
		chunk := it.chunks[it.scheduled]
		slot := make(chan result, 1)
		it.pool.Add([]workerpool.Job{func() error {
			b, err := it.build(chunk)
			slot <- result{batch: b, err: err}
			return err
		}})
		it.pending = append(it.pending, slot)
		it.scheduled++
	}
}

func (it *Iterator) build(chunk []int) (*Batch, error) {
	records := make([]encode.Record, 0, len(chunk))
	for _, i := range chunk {
		r, err := it.source.Get(i)
		if err != nil {
			return nil, errors.Wrapf(err, "error building batch")
		}
		records = append(records, r)
	}
	return Collate(records, it.padID), nil
}

// Slice is a fixed sequence of batches
type Slice struct {
	batches []*Batch
	next    int
}

var _ Batches = (*Slice)(nil)

// NewSlice ...
func NewSlice(batches ...*Batch) *Slice {
	return &Slice{batches: batches}
}

// Next implements Batches
func (s *Slice) Next() (*Batch, error) {
	if s.next >= len(s.batches) {
		return nil, io.EOF
	}
	b := s.batches[s.next]
	s.next++
	return b, nil
}

// Len implements Batches
func (s *Slice) Len() int {
	return len(s.batches)
}
