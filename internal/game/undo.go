package game

// UndoTo rewinds the game to the state just after the named event by
// truncating everything that came later and re-projecting the remaining log.
// There are no inverse patches; the shorter log is simply replayed.
//
// The cut must fall on a command boundary: the first event removed has to be
// the start of a command's batch, so the surviving log is exactly what some
// sequence of commands produced. Undoing to the latest event is a no-op.
//
// Undo is cooperative: any seat may request it, including after the game has
// ended.
func (g *Game) UndoTo(eventID int) error {
	if len(g.Events) == 0 {
		return ruleErr(ErrGameNotStarted, "game has not started")
	}
	idx := -1
	for i := range g.Events {
		if g.Events[i].ID == eventID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ruleErr(ErrBadUndoTarget, "no event with id %d", eventID)
	}
	if idx == len(g.Events)-1 {
		return nil
	}
	if !batchStart(&g.Events[idx+1]) {
		return ruleErr(ErrBadUndoTarget, "event %d is not a command boundary", eventID)
	}
	*g = *Replay(append([]Event(nil), g.Events[:idx+1]...))
	return nil
}

// batchStart reports whether ev is the first event of a command's batch.
// Batches start with a root event, except choice answers, which start with the
// response event linked to the pending choice.
func batchStart(ev *Event) bool {
	if ev.CausedBy == 0 {
		return true
	}
	switch ev.Type {
	case EventDecisionResolved, EventDecisionSkipped, EventReactionRevealed, EventReactionDeclined:
		return true
	}
	return false
}
