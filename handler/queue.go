package handler

import (
	"hash/fnv"
	"sync"
)

// Queue runs jobs on a fixed set of workers. Jobs with the same key always
// land on the same worker, so they run one at a time in submission order.
type Queue struct {
	shards []chan func()
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewQueue starts workers goroutines, each buffering up to backlog jobs.
func NewQueue(workers, backlog int) *Queue {
	if workers < 1 {
		workers = 1
	}
	q := &Queue{shards: make([]chan func(), workers)}
	for i := range q.shards {
		ch := make(chan func(), backlog)
		q.shards[i] = ch
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			for job := range ch {
				job()
			}
		}()
	}
	return q
}

// Submit enqueues job behind earlier jobs for key. It reports false once the
// queue is closed.
func (q *Queue) Submit(key string, job func()) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return false
	}
	q.shards[q.shard(key)] <- job
	return true
}

// Close stops accepting jobs and waits for queued ones to finish.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	for _, ch := range q.shards {
		close(ch)
	}
	q.mu.Unlock()
	q.wg.Wait()
}

func (q *Queue) shard(key string) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(q.shards)))
}
