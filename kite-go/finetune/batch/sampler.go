package batch

import (
	"math/rand"
)

// Sampler picks the order in which rows are visited in an epoch
type Sampler struct {
	Shuffle bool
	Seed    int64
}

// Order returns a permutation of [0, n). Shuffled orders depend only on the seed and the epoch.
func (s Sampler) Order(n, epoch int) []int {
	if s.Shuffle {
		return rand.New(rand.NewSource(s.Seed + int64(epoch))).Perm(n)
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// Chunks splits order into consecutive groups of size, the last one may be shorter
func Chunks(order []int, size int) [][]int {
	var chunks [][]int
	for start := 0; start < len(order); start += size {
		end := start + size
		if end > len(order) {
			end = len(order)
		}
		chunks = append(chunks, order[start:end])
	}
	return chunks
}
