package relay

import (
	"sync"

	"github.com/telhawk-systems/event-relay/pkg/event"
)

// item is the delivery queue element: either one envelope or the stop
// sentinel. A tagged struct rather than a magic pointer keeps control and
// data messages impossible to confuse.
type item struct {
	env  *event.Envelope
	stop bool
}

// queue is a blocking multi-producer/single-consumer FIFO. maxSize 0 means
// unbounded; when bounded, push sheds the new envelope instead of blocking,
// so producers never wait. The stop sentinel is always accepted.
type queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   []item
	maxSize int
}

func newQueue(maxSize int) *queue {
	q := &queue{maxSize: maxSize}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends an envelope and wakes the consumer. It reports false when a
// bounded queue is full and the envelope was shed.
func (q *queue) push(env *event.Envelope) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.maxSize > 0 && len(q.items) >= q.maxSize {
		return false
	}
	q.items = append(q.items, item{env: env})
	q.cond.Signal()
	return true
}

// pushStop enqueues the shutdown sentinel, bound or no bound: the sentinel
// must always reach the consumer.
func (q *queue) pushStop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item{stop: true})
	q.cond.Signal()
}

// pop blocks until an item is available and returns it in FIFO order.
func (q *queue) pop() item {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		q.cond.Wait()
	}
	it := q.items[0]
	q.items[0] = item{} // drop the envelope reference from the backing array
	q.items = q.items[1:]
	return it
}

// depth reports the current queue length.
func (q *queue) depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
