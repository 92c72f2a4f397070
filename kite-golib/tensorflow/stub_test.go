//go:build !tensorflow

package tensorflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStubUnavailable(t *testing.T) {
	m, err := NewModel("graph.pb", Options{Device: "/device:CPU:0"})
	assert.Nil(t, m)
	assert.Equal(t, ErrUnavailable, err)

	var stub Model
	_, err = stub.Run(nil, []string{"logits"}, nil)
	assert.Equal(t, ErrUnavailable, err)
	assert.False(t, stub.OpExists("logits"))
}
