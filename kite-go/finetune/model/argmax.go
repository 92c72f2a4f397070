package model

import (
	"gonum.org/v1/gonum/mat"
)

// Argmax returns the index of the highest score of every row, the first one on ties
func Argmax(scores mat.Matrix) []int64 {
	rows, cols := scores.Dims()
	preds := make([]int64, rows)
	for i := 0; i < rows; i++ {
		best := 0
		for j := 1; j < cols; j++ {
			if scores.At(i, j) > scores.At(i, best) {
				best = j
			}
		}
		preds[i] = int64(best)
	}
	return preds
}

// Correct counts the positions where preds and labels agree
func Correct(preds, labels []int64) int {
	var n int
	for i := range preds {
		if i < len(labels) && preds[i] == labels[i] {
			n++
		}
	}
	return n
}
