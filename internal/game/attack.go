package game

// Attack orchestration. Playing an attack card runs two passes over the other
// players in turn order after the attacker:
//
//  1. Reaction scan: each target holding a reaction card gets a
//     ReactionOpportunity; targets without one get an immediate unblocked
//     AttackResolved. Exactly one AttackResolved is emitted per target.
//  2. Resolution: after the scan completes, each unblocked target suffers the
//     card's effect, pausing for per-target decisions (Militia's discard,
//     Bureaucrat's topdeck, Bandit's trash).
//
// The scan cursor lives in the pending choice's meta, so the whole protocol
// survives command round trips and undo.

// declareAttack starts the attack protocol for a played attack card.
func (g *Game) declareAttack(cause, attacker int, card string, inherit ChoiceMeta) {
	ev := g.emit(cause, Event{Type: EventAttackDeclared, Player: attacker, Card: card})
	scan := &AttackScan{
		Card:     card,
		Attacker: attacker,
		Targets:  g.State.Opponents(attacker),
		Cause:    ev.ID,
	}
	g.advanceScan(scan, inherit.Throne)
}

// advanceScan runs the reaction scan from the current cursor. It pauses with a
// ReactionOpportunity at the first target holding a reaction card, or moves
// into the resolution pass once every target is scanned.
func (g *Game) advanceScan(scan *AttackScan, throne []ThroneFrame) {
	for scan.Cursor < len(scan.Targets) {
		t := scan.Targets[scan.Cursor]
		reactions := g.reactionsInHand(t)
		if len(reactions) > 0 {
			g.emit(scan.Cause, Event{
				Type:   EventReactionOpportunity,
				Player: t,
				Choice: &PendingChoice{
					Kind:          ChoiceReaction,
					Player:        t,
					Prompt:        "Reveal a Reaction card to block the attack?",
					TriggerCard:   scan.Card,
					TriggerPlayer: scan.Attacker,
					Reactions:     reactions,
					Meta:          ChoiceMeta{Scan: scan, Throne: throne},
				},
			})
			return
		}
		g.emit(scan.Cause, Event{Type: EventAttackResolved, Player: t, Card: scan.Card})
		scan.Cursor++
	}
	scan.Resolving = true
	scan.Cursor = 0
	g.continueAttackResolution(scan, throne)
}

// revealReaction answers a pending reaction by revealing the named card. The
// target is marked blocked and the scan resumes at the next target.
func (g *Game) revealReaction(pc *PendingChoice, card string) {
	scan := pc.Meta.Scan
	g.emit(pc.EventID, Event{Type: EventReactionRevealed, Player: pc.Player, Card: card})
	g.emit(scan.Cause, Event{Type: EventAttackResolved, Player: pc.Player, Card: scan.Card, Blocked: true})
	scan.Blocked = append(scan.Blocked, pc.Player)
	scan.Cursor++
	g.advanceScan(scan, pc.Meta.Throne)
}

// declineReaction answers a pending reaction by waiving it. The target is
// resolved unblocked and the scan resumes.
func (g *Game) declineReaction(pc *PendingChoice) {
	scan := pc.Meta.Scan
	g.emit(pc.EventID, Event{Type: EventReactionDeclined, Player: pc.Player})
	g.emit(scan.Cause, Event{Type: EventAttackResolved, Player: pc.Player, Card: scan.Card})
	scan.Cursor++
	g.advanceScan(scan, pc.Meta.Throne)
}

// continueAttackResolution runs the resolution pass from the current cursor,
// skipping blocked targets. When a target needs a decision the pass pauses;
// resumeEffect advances the cursor and re-enters. After the last target the
// attacker's effect chain completes.
func (g *Game) continueAttackResolution(scan *AttackScan, throne []ThroneFrame) {
	for scan.Cursor < len(scan.Targets) {
		t := scan.Targets[scan.Cursor]
		if !scan.IsBlocked(t) && g.resolveAttackTarget(scan, t, throne) {
			return
		}
		scan.Cursor++
	}
	g.finishEffect(scan.Attacker, ChoiceMeta{Throne: throne})
}

// resolveAttackTarget applies the attack card's effect to one unblocked
// target. Returns true when a pending decision was created.
func (g *Game) resolveAttackTarget(scan *AttackScan, target int, throne []ThroneFrame) bool {
	cause := scan.Cause
	switch scan.Card {
	case "Militia":
		hand := g.State.Players[target].Hand
		excess := len(hand) - 3
		if excess <= 0 {
			return false
		}
		g.requireDecision(cause, &PendingChoice{
			Player:   target,
			Prompt:   "Discard down to 3 cards in hand",
			FromZone: ZoneHand,
			Options:  append([]string(nil), hand...),
			Min:      excess,
			Max:      excess,
			Card:     scan.Card,
			Stage:    StageMilitiaDiscard,
			Meta:     ChoiceMeta{Scan: scan, Throne: throne},
		})
		return true

	case "Witch":
		g.gainCard(cause, target, "Curse", ZoneDiscard)
		return false

	case "Bureaucrat":
		var victories []string
		for _, c := range g.State.Players[target].Hand {
			if MustCard(c).Types.Is(TypeVictory) {
				victories = append(victories, c)
			}
		}
		if len(victories) == 0 {
			// Reveal the whole hand to show there is nothing to put back.
			g.emit(cause, Event{Type: EventCardRevealed, Player: target,
				Cards: append([]string(nil), g.State.Players[target].Hand...)})
			return false
		}
		if len(victories) == 1 {
			g.emit(cause, Event{Type: EventCardRevealed, Player: target, Card: victories[0]})
			g.topdeckCard(cause, target, victories[0], ZoneHand)
			return false
		}
		g.requireDecision(cause, &PendingChoice{
			Player:   target,
			Prompt:   "Reveal a Victory card and put it onto your deck",
			FromZone: ZoneHand,
			Options:  victories,
			Min:      1,
			Max:      1,
			Card:     scan.Card,
			Stage:    StageBureaucratTopdeck,
			Meta:     ChoiceMeta{Scan: scan, Throne: throne},
		})
		return true

	case "Bandit":
		g.ensureDeck(cause, target, 2)
		deck := g.State.Players[target].Deck
		n := 2
		if len(deck) < n {
			n = len(deck)
		}
		if n == 0 {
			return false
		}
		revealed := make([]string, 0, n)
		for i := 0; i < n; i++ {
			revealed = append(revealed, deck[len(deck)-1-i])
		}
		g.emit(cause, Event{Type: EventCardRevealed, Player: target, Cards: revealed})
		var loot []string
		for _, c := range revealed {
			def := MustCard(c)
			if def.IsTreasure() && c != "Copper" {
				loot = append(loot, c)
			}
		}
		switch {
		case len(loot) == 0:
			for _, c := range revealed {
				g.discardCard(cause, target, c, ZoneDeck)
			}
			return false
		case len(loot) == 1 || loot[0] == loot[1]:
			g.trashCard(cause, target, loot[0], ZoneDeck)
			for _, c := range multisetMinus(revealed, loot[:1]) {
				g.discardCard(cause, target, c, ZoneDeck)
			}
			return false
		default:
			g.requireDecision(cause, &PendingChoice{
				Player:   target,
				Prompt:   "Trash one of the revealed Treasures",
				FromZone: ZoneDeck,
				Options:  loot,
				Min:      1,
				Max:      1,
				Card:     scan.Card,
				Stage:    StageBanditTrash,
				Meta:     ChoiceMeta{Routing: revealed, Scan: scan, Throne: throne},
			})
			return true
		}

	default:
		panicf("attack resolution for non-attack card %q", scan.Card)
		return false
	}
}

// reactionsInHand returns the distinct reaction cards the player holds.
func (g *Game) reactionsInHand(player int) []string {
	var out []string
	for _, c := range g.State.Players[player].Hand {
		if MustCard(c).IsReaction() && lastIndex(out, c) < 0 {
			out = append(out, c)
		}
	}
	return out
}
