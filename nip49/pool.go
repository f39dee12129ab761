package nip49

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"

	"nts.lol/log"
)

// Result is the outcome of a job run on a Pool. Data is the blob for a wrap
// and the secret key for an unwrap.
type Result struct {
	Data by
	Err  er
}

// Pool runs key derivations off the caller's goroutine with at most a fixed
// number in flight, since each one holds 128 * 8 * 2^logN bytes of memory.
type Pool struct {
	sem     *semaphore.Weighted
	workers int64
}

// NewPool creates a Pool running up to workers derivations at once. Values
// below one become runtime.NumCPU.
func NewPool(workers int64) *Pool {
	if workers < 1 {
		workers = int64(runtime.NumCPU())
	}
	return &Pool{sem: semaphore.NewWeighted(workers), workers: workers}
}

// Workers returns the concurrency limit of the pool.
func (p *Pool) Workers() int64 { return p.workers }

// Wrap queues a Wrap of sk. The key is copied, the caller may zero it once
// this returns.
func (p *Pool) Wrap(c context.Context, sk by, password st, logN byte,
	security KeySecurity) <-chan Result {
	key := make(by, len(sk))
	copy(key, sk)
	return p.run(c, func() (by, er) {
		defer clear(key)
		return Wrap(key, password, logN, security)
	})
}

// Unwrap queues an Unwrap of blob.
func (p *Pool) Unwrap(c context.Context, blob by, password st) <-chan Result {
	b := make(by, len(blob))
	copy(b, blob)
	return p.run(c, func() (by, er) { return Unwrap(b, password) })
}

// run delivers exactly one Result on the returned channel. Cancelling c only
// abandons the wait for a free worker; a derivation that has started runs to
// completion.
func (p *Pool) run(c context.Context, fn func() (by, er)) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		if err := p.sem.Acquire(c, 1); err != nil {
			log.D.F("kdf job abandoned waiting for a worker: %v", err)
			out <- Result{Err: err}
			return
		}
		defer p.sem.Release(1)
		data, err := fn()
		out <- Result{Data: data, Err: err}
	}()
	return out
}
