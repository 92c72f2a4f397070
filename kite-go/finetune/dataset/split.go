package dataset

import (
	"github.com/kiteco/deepset/kite-golib/errors"
)

// Split names a partition of a dataset
type Split string

// Splits of a dataset
const (
	Train      Split = "train"
	Validation Split = "validation"
	Test       Split = "test"
)

// Splits lists every valid split
var Splits = []Split{Train, Validation, Test}

// Valid reports whether s is one of Splits
func (s Split) Valid() bool {
	switch s {
	case Train, Validation, Test:
		return true
	}
	return false
}

// ParseSplit returns the split named s
func ParseSplit(s string) (Split, error) {
	split := Split(s)
	if !split.Valid() {
		return "", errors.InvalidArgumentf("invalid split %q", s)
	}
	return split, nil
}
