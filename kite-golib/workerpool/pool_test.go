package workerpool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/kiteco/deepset/kite-golib/errors"
	"github.com/stretchr/testify/require"
)

func Test_RunJobs(t *testing.T) {
	pool := New(5)
	defer pool.Stop()

	var jobs []Job
	var completed int32
	for i := 0; i < 15; i++ {
		jobs = append(jobs, func() error {
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&completed, 1)
			return nil
		})
	}

	pool.Add(jobs)
	require.NoError(t, pool.Wait())
	require.EqualValues(t, len(jobs), completed, "expected all jobs to be completed")
}

func Test_Errors(t *testing.T) {
	pool := New(2)
	defer pool.Stop()

	failure := errors.New("tokenizer failed")
	pool.AddBlocking([]Job{
		func() error { return nil },
		func() error { return failure },
	})
	err := pool.Wait()
	require.Error(t, err)
	require.Equal(t, failure.Error(), err.Error())
}

func Test_StopWait(t *testing.T) {
	pool := New(5)

	var jobs []Job
	var started int32
	for i := 0; i < 15; i++ {
		jobs = append(jobs, func() error {
			atomic.AddInt32(&started, 1)
			time.Sleep(100 * time.Millisecond)
			return nil
		})
	}

	pool.Add(jobs)
	<-time.After(50 * time.Millisecond)
	pool.Stop()
	pool.Wait()
	require.True(t, atomic.LoadInt32(&started) < int32(len(jobs)), "expected queued jobs to be dropped")
}
