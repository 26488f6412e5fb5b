package journal

import (
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"main/src/model"
)

// Journal writes the crossing log: one "ready", one "ON" and one "OFF" line
// per train, each stamped with the elapsed time since the run started.
// Emissions from concurrent train workers are serialized so lines never
// interleave; the same line is also fanned out to any attached followers.
type Journal struct {
	mu    sync.Mutex
	w     io.Writer
	start time.Time

	followers map[*Follower]struct{}

	log *zap.SugaredLogger
}

func New(w io.Writer, log *zap.SugaredLogger) *Journal {
	return &Journal{
		w:         w,
		followers: make(map[*Follower]struct{}),
		log:       log,
	}
}

// Start marks the instant all timestamps are measured from. Call once,
// before the first event.
func (j *Journal) Start(t time.Time) {
	j.mu.Lock()
	j.start = t
	j.mu.Unlock()
}

func (j *Journal) Ready(id int, dir model.Direction) {
	j.line("Train %2d is ready to go %4s", id, dir)
}

func (j *Journal) Enter(id int, dir model.Direction) {
	j.line("Train %2d is ON the main track going %4s", id, dir)
}

func (j *Journal) Leave(id int, dir model.Direction) {
	j.line("Train %2d is OFF the main track after going %4s", id, dir)
}

// Close detaches every follower, ending their feeds. The underlying writer
// is not closed; the caller owns it.
func (j *Journal) Close() {
	j.mu.Lock()
	for f := range j.followers {
		f.close()
		delete(j.followers, f)
	}
	j.mu.Unlock()
}

func (j *Journal) line(format string, args ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()

	text := fmt.Sprintf("%s "+format+"\n",
		append([]any{FormatElapsed(time.Since(j.start))}, args...)...)

	if _, err := io.WriteString(j.w, text); err != nil && j.log != nil {
		j.log.Errorf("journal write: %v", err)
	}
	for f := range j.followers {
		f.push(text)
	}
}

// FormatElapsed renders an elapsed duration as HH:MM:SS.t, with a single
// tenth-of-a-second digit.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalMS := d.Milliseconds()

	hours := totalMS / 3600000
	totalMS %= 3600000
	mins := totalMS / 60000
	totalMS %= 60000
	secs := totalMS / 1000
	tenths := (totalMS % 1000) / 100

	return fmt.Sprintf("%02d:%02d:%02d.%1d", hours, mins, secs, tenths)
}
