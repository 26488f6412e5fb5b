package journal

import (
	"sync"

	"github.com/gammazero/deque"
)

// Cap on the per-follower backlog. A follower that cannot keep up loses its
// oldest pending lines, never the live ones.
const backlogSize = 1024

// A Follower receives every journal line emitted after it was attached.
type Follower struct {
	mu      sync.Mutex
	cond    *sync.Cond
	backlog deque.Deque[string]
	closed  bool
}

// Attach registers a new follower on the journal.
func (j *Journal) Attach() *Follower {
	f := &Follower{}
	f.cond = sync.NewCond(&f.mu)

	j.mu.Lock()
	j.followers[f] = struct{}{}
	j.mu.Unlock()

	return f
}

// Detach removes the follower; its pending Next call (if any) returns.
func (j *Journal) Detach(f *Follower) {
	j.mu.Lock()
	delete(j.followers, f)
	j.mu.Unlock()

	f.close()
}

// Next blocks until a line is available and returns it. ok is false once the
// follower has been detached and its backlog drained.
func (f *Follower) Next() (line string, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for f.backlog.Len() == 0 && !f.closed {
		f.cond.Wait()
	}
	if f.backlog.Len() == 0 {
		return "", false
	}
	return f.backlog.PopFront(), true
}

func (f *Follower) push(line string) {
	f.mu.Lock()
	f.backlog.PushBack(line)
	if f.backlog.Len() > backlogSize {
		f.backlog.PopFront()
	}
	f.mu.Unlock()
	f.cond.Signal()
}

func (f *Follower) close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.cond.Broadcast()
}
