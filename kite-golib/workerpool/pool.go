package workerpool

import (
	"sync"

	"github.com/kiteco/deepset/kite-golib/errors"
)

// Job is a unit of work run by the pool
type Job func() error

// Pool runs jobs on a fixed number of goroutines
type Pool struct {
	jobs    chan Job
	stopped chan struct{}
	stop    sync.Once

	pending sync.WaitGroup

	m    sync.Mutex
	errs errors.Errors
}

// New starts a pool with n workers
func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{
		jobs:    make(chan Job),
		stopped: make(chan struct{}),
	}
	for i := 0; i < n; i++ {
		go p.work()
	}
	return p
}

// Add queues the jobs without blocking the caller
func (p *Pool) Add(jobs []Job) {
	p.pending.Add(len(jobs))
	go p.enqueue(jobs)
}

// AddBlocking queues the jobs, returning once every job has been handed to a worker
// or the pool has been stopped
func (p *Pool) AddBlocking(jobs []Job) {
	p.pending.Add(len(jobs))
	p.enqueue(jobs)
}

// Wait blocks until every added job has finished or been dropped by Stop,
// and returns the errors of the failed jobs
func (p *Pool) Wait() error {
	p.pending.Wait()

	p.m.Lock()
	defer p.m.Unlock()
	if len(p.errs) == 0 {
		return nil
	}
	return p.errs
}

// Stop prevents queued jobs from starting and terminates the workers.
// Jobs that are already running finish normally.
func (p *Pool) Stop() {
	p.stop.Do(func() { close(p.stopped) })
}

func (p *Pool) enqueue(jobs []Job) {
	for i, job := range jobs {
		select {
		case p.jobs <- job:
		case <-p.stopped:
			p.pending.Add(i - len(jobs))
			return
		}
	}
}

func (p *Pool) work() {
	for {
		select {
		case <-p.stopped:
			return
		case job := <-p.jobs:
			select {
			case <-p.stopped:
				// stopped while the job was in flight, drop it
				p.pending.Done()
				continue
			default:
			}
			p.run(job)
		}
	}
}

func (p *Pool) run(job Job) {
	defer p.pending.Done()
	if err := job(); err != nil {
		p.m.Lock()
		p.errs = errors.Append(p.errs, err)
		p.m.Unlock()
	}
}
