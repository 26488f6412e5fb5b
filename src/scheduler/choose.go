package scheduler

import "main/src/model"

// chooseNext picks the train to dispatch. Must be called with the mutex held
// and at least one queue non-empty.
//
// Precedence:
//  1. Before the very first crossing of the run, a ready West train goes
//     first (high queue before low), regardless of anything waiting East.
//  2. After two or more consecutive crossings in the same direction, the
//     opposite direction goes next if it has anyone ready (high before low),
//     skipping the normal priority comparison. Falls through when the
//     opposite queues are both empty.
//  3. Otherwise the two high queues compete on (ready time, id); only when
//     both are empty do the low queues compete the same way.
func (c *Core) chooseNext() (id int, ok bool) {
	if !c.everCrossed {
		if id, ok = c.popDirection(model.WEST); ok {
			return id, true
		}
		// no West train yet; fall back to the normal rules
	}

	if c.sameDirStreak >= 2 {
		if id, ok = c.popDirection(c.lastDir.Opposite()); ok {
			return id, true
		}
		// opposite direction has nobody ready; fall through
	}

	if id, ok = c.popPair(model.HIGH_PRIORITY); ok {
		return id, true
	}
	return c.popPair(model.LOW_PRIORITY)
}

// popDirection takes the head of dir's high queue, or its low queue if the
// high one is empty.
func (c *Core) popDirection(dir model.Direction) (id int, ok bool) {
	if id, ok = c.queues[dir][model.HIGH_PRIORITY].Pop(); ok {
		return id, true
	}
	return c.queues[dir][model.LOW_PRIORITY].Pop()
}

// popPair compares the heads of the East and West queues at one priority
// level and takes whichever has the smaller (ready time, id) key.
func (c *Core) popPair(priority model.Priority) (id int, ok bool) {
	east := &c.queues[model.EAST][priority]
	west := &c.queues[model.WEST][priority]

	eastID, eastNS, eastOK := east.Peek()
	westID, westNS, westOK := west.Peek()

	switch {
	case eastOK && westOK:
		if comesBefore(eastID, eastNS, westID, westNS) {
			return east.Pop()
		}
		return west.Pop()
	case eastOK:
		return east.Pop()
	case westOK:
		return west.Pop()
	}
	return 0, false
}

// comesBefore reports whether (idA, nsA) dispatches ahead of (idB, nsB):
// earlier ready time wins, lower id breaks ties.
func comesBefore(idA int, nsA int64, idB int, nsB int64) bool {
	if nsA != nsB {
		return nsA < nsB
	}
	return idA < idB
}
