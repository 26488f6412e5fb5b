package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// A single train from the roster.
type Train struct {
	ID       int
	Dir      Direction
	Priority Priority
	// Loading and crossing durations in time units.
	Loading  int
	Crossing int
}

// RosterError describes a roster line that failed validation.
type RosterError struct {
	Line   int // 1-based
	Text   string
	Reason string
}

func (e *RosterError) Error() string {
	return fmt.Sprintf("roster line %d: %s (%q)", e.Line, e.Reason, e.Text)
}

// Read a roster.
//
// Each non-blank line describes one train: a direction code followed by the
// loading and crossing durations, e.g. "E 3 4". Uppercase codes mean high
// priority, lowercase low priority; E/e is East, W/w is West. Train ids are
// assigned in input order.
//
// Any malformed line aborts the whole load with a *RosterError.
func ReadRoster(reader io.Reader) ([]Train, error) {
	var trains []Train

	scanner := bufio.NewScanner(reader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		train, reason := parseLine(line, len(trains))
		if reason != "" {
			return nil, &RosterError{Line: lineNo, Text: strings.TrimSpace(line), Reason: reason}
		}
		trains = append(trains, train)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return trains, nil
}

// Read a roster from a file.
func ReadRosterFile(path string) ([]Train, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadRoster(f)
}

func parseLine(line string, id int) (train Train, reason string) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		reason = "expected direction code and two durations"
		return
	}
	if len(fields[0]) != 1 {
		reason = "direction code must be a single character"
		return
	}

	train.ID = id
	switch fields[0][0] {
	case 'e':
		train.Dir, train.Priority = EAST, LOW_PRIORITY
	case 'E':
		train.Dir, train.Priority = EAST, HIGH_PRIORITY
	case 'w':
		train.Dir, train.Priority = WEST, LOW_PRIORITY
	case 'W':
		train.Dir, train.Priority = WEST, HIGH_PRIORITY
	default:
		reason = "unrecognized direction code"
		return
	}

	for i, dst := range []*int{&train.Loading, &train.Crossing} {
		value, err := strconv.Atoi(fields[i+1])
		if err != nil {
			reason = "duration is not an integer"
			return
		}
		if value < MIN_DURATION || value > MAX_DURATION {
			reason = fmt.Sprintf("duration out of range %d..%d", MIN_DURATION, MAX_DURATION)
			return
		}
		*dst = value
	}

	return train, ""
}
