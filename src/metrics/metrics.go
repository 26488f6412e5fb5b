package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"main/src/model"
)

// classKey identifies one of the four scheduling classes.
type classKey struct {
	Dir      model.Direction
	Priority model.Priority
}

// classCounters accumulates per-class totals over a run.
type classCounters struct {
	Dispatched int64
	WaitSum    time.Duration // ready -> ON
	CrossSum   time.Duration // ON -> OFF
}

// Collector gathers per-class dispatch statistics for one run and writes
// them as a CSV summary.
type Collector struct {
	mu    sync.Mutex
	runID uuid.UUID
	start time.Time
	cls   map[classKey]*classCounters
}

func NewCollector() *Collector {
	c := &Collector{
		runID: uuid.New(),
		start: time.Now(),
		cls:   make(map[classKey]*classCounters, 4),
	}
	for _, dir := range []model.Direction{model.EAST, model.WEST} {
		for _, priority := range []model.Priority{model.HIGH_PRIORITY, model.LOW_PRIORITY} {
			c.cls[classKey{dir, priority}] = &classCounters{}
		}
	}
	return c
}

func (c *Collector) RunID() uuid.UUID { return c.runID }

// OnDispatch records a grant: the train of the given class waited `wait`
// between becoming ready and entering the track.
func (c *Collector) OnDispatch(dir model.Direction, priority model.Priority, wait time.Duration) {
	c.mu.Lock()
	cl := c.cls[classKey{dir, priority}]
	cl.Dispatched++
	cl.WaitSum += wait
	c.mu.Unlock()
}

// OnCrossed records a completed crossing of the given class.
func (c *Collector) OnCrossed(dir model.Direction, priority model.Priority, crossing time.Duration) {
	c.mu.Lock()
	c.cls[classKey{dir, priority}].CrossSum += crossing
	c.mu.Unlock()
}

// Dispatched returns the dispatch count for one class.
func (c *Collector) Dispatched(dir model.Direction, priority model.Priority) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cls[classKey{dir, priority}].Dispatched
}

// WriteSummary appends one row per class to the CSV at path, creating it
// (with a header) if needed.
func (c *Collector) WriteSummary(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if st, err := f.Stat(); err == nil && st.Size() == 0 {
		if err := w.Write([]string{
			"run_id", "duration_s",
			"class", "dispatched", "avg_wait_ms", "avg_cross_ms",
		}); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	duration := time.Since(c.start).Seconds()
	for _, dir := range []model.Direction{model.EAST, model.WEST} {
		for _, priority := range []model.Priority{model.HIGH_PRIORITY, model.LOW_PRIORITY} {
			cl := c.cls[classKey{dir, priority}]
			if err := w.Write([]string{
				c.runID.String(),
				strconv.FormatFloat(duration, 'f', 3, 64),
				fmt.Sprintf("%s-%s", dir, priority),
				strconv.FormatInt(cl.Dispatched, 10),
				strconv.FormatFloat(avgMS(cl.WaitSum, cl.Dispatched), 'f', 3, 64),
				strconv.FormatFloat(avgMS(cl.CrossSum, cl.Dispatched), 'f', 3, 64),
			}); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func avgMS(sum time.Duration, n int64) float64 {
	if n == 0 {
		return 0
	}
	return float64(sum.Milliseconds()) / float64(n)
}
