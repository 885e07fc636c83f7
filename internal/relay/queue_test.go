package relay

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/telhawk-systems/event-relay/pkg/event"
)

func TestQueue_FIFO(t *testing.T) {
	q := newQueue(0)
	for i := 0; i < 10; i++ {
		q.push(event.NewEnvelope(json.RawMessage(fmt.Sprintf(`{"seq":%d}`, i))))
	}

	for i := 0; i < 10; i++ {
		it := q.pop()
		if it.stop {
			t.Fatal("unexpected stop item")
		}
		want := fmt.Sprintf(`{"seq":%d}`, i)
		if string(it.env.Payload) != want {
			t.Errorf("pop %d = %s, want %s", i, it.env.Payload, want)
		}
	}
	if q.depth() != 0 {
		t.Errorf("depth = %d, want 0", q.depth())
	}
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	const producers = 8
	const perProducer = 200

	q := newQueue(0)
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.push(event.NewEnvelope(json.RawMessage(
					fmt.Sprintf(`{"producer":%d,"seq":%d}`, p, i))))
			}
		}(p)
	}

	// Single consumer: each envelope arrives exactly once, and per-producer
	// submission order is preserved.
	lastSeq := make(map[int]int)
	for p := 0; p < producers; p++ {
		lastSeq[p] = -1
	}
	for n := 0; n < producers*perProducer; n++ {
		it := q.pop()
		var ev struct {
			Producer int `json:"producer"`
			Seq      int `json:"seq"`
		}
		if err := json.Unmarshal(it.env.Payload, &ev); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if ev.Seq != lastSeq[ev.Producer]+1 {
			t.Fatalf("producer %d: got seq %d after %d", ev.Producer, ev.Seq, lastSeq[ev.Producer])
		}
		lastSeq[ev.Producer] = ev.Seq
	}
	wg.Wait()

	if q.depth() != 0 {
		t.Errorf("depth = %d, want 0", q.depth())
	}
}

func TestQueue_StopWakesBlockedPop(t *testing.T) {
	q := newQueue(0)

	popped := make(chan item, 1)
	go func() {
		popped <- q.pop()
	}()

	// Give the consumer a moment to block on the empty queue.
	time.Sleep(10 * time.Millisecond)
	q.pushStop()

	select {
	case it := <-popped:
		if !it.stop {
			t.Error("expected the stop sentinel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pop did not wake on the stop sentinel")
	}
}

func TestQueue_BoundedShedsWhenFull(t *testing.T) {
	q := newQueue(2)

	if !q.push(event.NewEnvelope(json.RawMessage(`{"seq":0}`))) {
		t.Fatal("push 0 should succeed")
	}
	if !q.push(event.NewEnvelope(json.RawMessage(`{"seq":1}`))) {
		t.Fatal("push 1 should succeed")
	}
	if q.push(event.NewEnvelope(json.RawMessage(`{"seq":2}`))) {
		t.Error("push on a full bounded queue should shed")
	}

	// The sentinel ignores the bound.
	q.pushStop()
	if q.depth() != 3 {
		t.Errorf("depth = %d, want 3", q.depth())
	}
}
