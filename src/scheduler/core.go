package scheduler

import (
	"sync"

	"main/src/model"
	"main/src/scheduler/datastructures"
)

// Core is the shared scheduling state for one simulation run: the four ready
// queues, the track flag and the bookkeeping the dispatcher needs to balance
// directions. All of it is guarded by a single mutex; the cond is signalled
// whenever the state changes in a way the dispatcher may care about.
type Core struct {
	mutex *sync.Mutex
	cond  *sync.Cond

	// Ready queues indexed by [direction][priority].
	queues [2][2]datastructures.ReadyQueue[int64]

	trackInUse     bool
	trainsFinished int
	everCrossed    bool
	lastDir        model.Direction
	sameDirStreak  int

	isStopped bool

	total  int
	grants []chan struct{} // one-shot grant per train, indexed by id
}

func NewCore(total int) *Core {
	mutex := &sync.Mutex{}

	grants := make([]chan struct{}, total)
	for i := range grants {
		grants[i] = make(chan struct{})
	}

	return &Core{
		mutex:   mutex,
		cond:    sync.NewCond(mutex),
		lastDir: model.EAST, // arbitrary; never consulted before the first crossing
		total:   total,
		grants:  grants,
	}
}

// Enqueue records that a train became ready at readyNS and returns its grant
// channel. The channel is closed exactly once, by the dispatcher, when the
// train is given the track.
func (c *Core) Enqueue(id int, dir model.Direction, priority model.Priority, readyNS int64) <-chan struct{} {
	c.mutex.Lock()
	c.queues[dir][priority].Push(id, readyNS)
	c.mutex.Unlock()
	c.cond.Signal()

	return c.grants[id]
}

// Release returns the track after a completed crossing in dir and updates
// the direction-balancing bookkeeping.
func (c *Core) Release(dir model.Direction) {
	c.mutex.Lock()

	c.trackInUse = false
	c.everCrossed = true
	if dir == c.lastDir {
		c.sameDirStreak++
	} else {
		c.lastDir = dir
		c.sameDirStreak = 1
	}
	c.trainsFinished++

	c.mutex.Unlock()
	c.cond.Broadcast()
}

// Stop aborts the dispatcher loop. Only used for external teardown; a normal
// run ends on its own once every train has crossed.
func (c *Core) Stop() {
	c.mutex.Lock()
	c.isStopped = true
	c.mutex.Unlock()
	c.cond.Broadcast()
}

// Finished reports how many trains have completed their crossing.
func (c *Core) Finished() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.trainsFinished
}

// Run is the dispatcher loop. It blocks until every train has crossed (or
// Stop is called): wait for a candidate and a free track, select one train,
// grant it the track, repeat.
func (c *Core) Run() {
	c.mutex.Lock()

	for c.trainsFinished < c.total && !c.isStopped {
		for (!c.anyReady() || c.trackInUse) && c.trainsFinished < c.total && !c.isStopped {
			c.cond.Wait()
		}
		if c.trainsFinished >= c.total || c.isStopped {
			break
		}

		if id, ok := c.chooseNext(); ok {
			c.trackInUse = true
			close(c.grants[id])
		}
	}

	c.mutex.Unlock()
}

func (c *Core) anyReady() bool {
	for dir := range c.queues {
		for priority := range c.queues[dir] {
			if !c.queues[dir][priority].IsEmpty() {
				return true
			}
		}
	}
	return false
}
