package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineNil(t *testing.T) {
	err := New("error")
	require.Nil(t, Combine(nil, nil))
	require.Equal(t, err, Combine(err, nil))
	require.Equal(t, err, Combine(nil, err))
}

func TestCombineFlattens(t *testing.T) {
	err0 := New("error0")
	err1 := New("error1")
	err2 := New("error2")

	combined := Combine(Combine(err0, err1), err2)
	errs, ok := combined.(Errors)
	require.True(t, ok)
	require.Len(t, errs, 3)
	assert.Equal(t, "error0\nerror1\nerror2", combined.Error())
}

func TestDefer(t *testing.T) {
	closeErr := New("close failed")
	run := func() (err error) {
		defer Defer(&err, func() error { return closeErr })
		return nil
	}
	require.Equal(t, closeErr, run())
}

func TestKinds(t *testing.T) {
	err := Wrapf(InvalidArgumentf("split %q", "dev"), "loading")
	assert.True(t, Is(err, ErrInvalidArgument))
	assert.False(t, Is(err, ErrNotFound))
	assert.Equal(t, "loading: split \"dev\": invalid argument", err.Error())

	err = NotFoundf("datasets/pi_deepset/test.parquet")
	assert.True(t, Is(err, ErrNotFound))
	assert.Equal(t, ErrNotFound, Cause(err))
}
