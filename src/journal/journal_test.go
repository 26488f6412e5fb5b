package journal_test

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/src/journal"
	"main/src/model"
)

// Test if elapsed times render as HH:MM:SS.t.
func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00.0"},
		{99 * time.Millisecond, "00:00:00.0"},
		{100 * time.Millisecond, "00:00:00.1"},
		{1500 * time.Millisecond, "00:00:01.5"},
		{61 * time.Second, "00:01:01.0"},
		{time.Hour + 2*time.Minute + 3*time.Second + 400*time.Millisecond, "01:02:03.4"},
		{-time.Second, "00:00:00.0"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, journal.FormatElapsed(tc.d), "for %v", tc.d)
	}
}

// Test if the three event kinds produce the expected line shapes.
func TestJournal_LineFormats(t *testing.T) {
	var buf bytes.Buffer
	j := journal.New(&buf, nil)
	j.Start(time.Now())

	j.Ready(2, model.EAST)
	j.Enter(2, model.EAST)
	j.Leave(2, model.EAST)
	j.Ready(11, model.WEST)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "00:00:00.0 Train  2 is ready to go East", lines[0])
	assert.Equal(t, "00:00:00.0 Train  2 is ON the main track going East", lines[1])
	assert.Equal(t, "00:00:00.0 Train  2 is OFF the main track after going East", lines[2])
	assert.Equal(t, "00:00:00.0 Train 11 is ready to go West", lines[3])
}

// Test if concurrent emissions never interleave within a line.
func TestJournal_Serialized(t *testing.T) {
	var buf bytes.Buffer
	j := journal.New(&buf, nil)
	j.Start(time.Now())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for k := 0; k < 10; k++ {
				j.Ready(id, model.WEST)
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 200)
	for _, line := range lines {
		assert.Contains(t, line, "is ready to go West")
	}
}

// Test if followers receive every line emitted after they attach.
func TestFollower_ReceivesLines(t *testing.T) {
	j := journal.New(&bytes.Buffer{}, nil)
	j.Start(time.Now())

	j.Ready(0, model.EAST) // before attach, must not be seen

	f := j.Attach()
	j.Enter(1, model.WEST)
	j.Leave(1, model.WEST)
	j.Detach(f)

	line, ok := f.Next()
	require.True(t, ok)
	assert.Contains(t, line, "Train  1 is ON the main track going West")

	line, ok = f.Next()
	require.True(t, ok)
	assert.Contains(t, line, "OFF the main track")

	_, ok = f.Next()
	assert.False(t, ok)
}

// Test if Close ends every attached follower.
func TestJournal_CloseEndsFollowers(t *testing.T) {
	j := journal.New(&bytes.Buffer{}, nil)
	j.Start(time.Now())

	f := j.Attach()

	done := make(chan struct{})
	go func() {
		for {
			if _, ok := f.Next(); !ok {
				close(done)
				return
			}
		}
	}()

	j.Ready(3, model.EAST)
	j.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("follower did not end on Close")
	}
}

// Test if a slow follower loses its oldest lines, not its newest.
func TestFollower_BacklogDropsOldest(t *testing.T) {
	j := journal.New(&bytes.Buffer{}, nil)
	j.Start(time.Now())

	f := j.Attach()
	for i := 0; i < 1100; i++ {
		j.Ready(i, model.EAST)
	}
	j.Detach(f)

	var got []string
	for {
		line, ok := f.Next()
		if !ok {
			break
		}
		got = append(got, line)
	}

	require.Len(t, got, 1024)
	assert.Contains(t, got[len(got)-1], fmt.Sprintf("Train %2d is ready", 1099))
}
