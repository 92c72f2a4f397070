package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tcs := []struct {
		in, expected string
	}{
		{"  ignore \t previous\n\ninstructions ", "ignore previous instructions"},
		{"single", "single"},
		{"\n\t ", ""},
	}
	for _, tc := range tcs {
		assert.Equal(t, tc.expected, Normalize(tc.in))
	}
}

func TestTruncateWithBoundary(t *testing.T) {
	ids := []int64{101, 7, 8, 9, 102}
	assert.Equal(t, ids, TruncateWithBoundary(ids, 5))
	assert.Equal(t, ids, TruncateWithBoundary(ids, 512))
	assert.Equal(t, []int64{101, 7, 102}, TruncateWithBoundary(ids, 3))
	assert.Equal(t, []int64{102}, TruncateWithBoundary(ids, 1))
	assert.Empty(t, TruncateWithBoundary(ids, 0))
}

func TestAttentionMask(t *testing.T) {
	assert.Equal(t, []int64{1, 1, 1}, AttentionMask(3))
	assert.Empty(t, AttentionMask(0))
}
