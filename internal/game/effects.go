package game

import "strconv"

// Card effect starters. A starter runs exactly once per play, after the fixed
// grants, and either completes synchronously or leaves a pending decision
// tagged with the Stage to resume at. Any pending it creates carries the
// inherited Throne Room frames so owed replays survive the round trip.

func playCellar(g *Game, cause, player int, inherit ChoiceMeta) {
	hand := handCopy(g, player)
	if len(hand) == 0 {
		return
	}
	g.requireDecision(cause, &PendingChoice{
		Player:   player,
		Prompt:   "Discard any number of cards, then draw that many",
		FromZone: ZoneHand,
		Options:  hand,
		Min:      0,
		Max:      len(hand),
		Card:     "Cellar",
		Stage:    StageCellarDiscard,
		Meta:     ChoiceMeta{Throne: inherit.Throne},
	})
}

func playChapel(g *Game, cause, player int, inherit ChoiceMeta) {
	hand := handCopy(g, player)
	if len(hand) == 0 {
		return
	}
	max := 4
	if len(hand) < max {
		max = len(hand)
	}
	g.requireDecision(cause, &PendingChoice{
		Player:   player,
		Prompt:   "Trash up to 4 cards from your hand",
		FromZone: ZoneHand,
		Options:  hand,
		Min:      0,
		Max:      max,
		Card:     "Chapel",
		Stage:    StageChapelTrash,
		Meta:     ChoiceMeta{Throne: inherit.Throne},
	})
}

func playCouncilRoom(g *Game, cause, player int, inherit ChoiceMeta) {
	for _, t := range g.State.Opponents(player) {
		g.drawCards(cause, t, 1)
	}
}

func playHarbinger(g *Game, cause, player int, inherit ChoiceMeta) {
	discard := append([]string(nil), g.State.Players[player].Discard...)
	if len(discard) == 0 {
		return
	}
	g.requireDecision(cause, &PendingChoice{
		Player:   player,
		Prompt:   "You may put a card from your discard pile onto your deck",
		FromZone: ZoneDiscard,
		Options:  discard,
		Min:      0,
		Max:      1,
		Card:     "Harbinger",
		Stage:    StageHarbingerTopdeck,
		Meta:     ChoiceMeta{Throne: inherit.Throne},
	})
}

func playMoneylender(g *Game, cause, player int, inherit ChoiceMeta) {
	if !g.State.Players[player].HandHas("Copper") {
		return
	}
	g.requireDecision(cause, &PendingChoice{
		Player:   player,
		Prompt:   "You may trash a Copper for +$3",
		FromZone: ZoneHand,
		Options:  []string{"Copper"},
		Min:      0,
		Max:      1,
		Card:     "Moneylender",
		Stage:    StageMoneylenderTrash,
		Meta:     ChoiceMeta{Throne: inherit.Throne},
	})
}

func playWorkshop(g *Game, cause, player int, inherit ChoiceMeta) {
	options := g.State.SupplyCards(4, nil)
	if len(options) == 0 {
		return
	}
	g.requireDecision(cause, &PendingChoice{
		Player:   player,
		Prompt:   "Gain a card costing up to $4",
		FromZone: ZoneSupply,
		Options:  options,
		Min:      1,
		Max:      1,
		Card:     "Workshop",
		Stage:    StageWorkshopGain,
		Meta:     ChoiceMeta{GainZone: ZoneDiscard, Throne: inherit.Throne},
	})
}

func playRemodel(g *Game, cause, player int, inherit ChoiceMeta) {
	hand := handCopy(g, player)
	if len(hand) == 0 {
		return
	}
	g.requireDecision(cause, &PendingChoice{
		Player:   player,
		Prompt:   "Trash a card from your hand",
		FromZone: ZoneHand,
		Options:  hand,
		Min:      1,
		Max:      1,
		Card:     "Remodel",
		Stage:    StageRemodelTrash,
		Meta:     ChoiceMeta{Throne: inherit.Throne},
	})
}

func playMine(g *Game, cause, player int, inherit ChoiceMeta) {
	var treasures []string
	for _, c := range g.State.Players[player].Hand {
		if MustCard(c).IsTreasure() {
			treasures = append(treasures, c)
		}
	}
	if len(treasures) == 0 {
		return
	}
	g.requireDecision(cause, &PendingChoice{
		Player:   player,
		Prompt:   "You may trash a Treasure from your hand",
		FromZone: ZoneHand,
		Options:  treasures,
		Min:      0,
		Max:      1,
		Card:     "Mine",
		Stage:    StageMineTrash,
		Meta:     ChoiceMeta{Throne: inherit.Throne},
	})
}

func playArtisan(g *Game, cause, player int, inherit ChoiceMeta) {
	options := g.State.SupplyCards(5, nil)
	if len(options) == 0 {
		artisanTopdeck(g, cause, player, inherit.Throne)
		return
	}
	g.requireDecision(cause, &PendingChoice{
		Player:   player,
		Prompt:   "Gain a card to your hand costing up to $5",
		FromZone: ZoneSupply,
		Options:  options,
		Min:      1,
		Max:      1,
		Card:     "Artisan",
		Stage:    StageArtisanGain,
		Meta:     ChoiceMeta{GainZone: ZoneHand, Throne: inherit.Throne},
	})
}

func artisanTopdeck(g *Game, cause, player int, throne []ThroneFrame) {
	hand := handCopy(g, player)
	if len(hand) == 0 {
		return
	}
	g.requireDecision(cause, &PendingChoice{
		Player:   player,
		Prompt:   "Put a card from your hand onto your deck",
		FromZone: ZoneHand,
		Options:  hand,
		Min:      1,
		Max:      1,
		Card:     "Artisan",
		Stage:    StageArtisanTopdeck,
		Meta:     ChoiceMeta{Throne: throne},
	})
}

func playSentry(g *Game, cause, player int, inherit ChoiceMeta) {
	g.ensureDeck(cause, player, 2)
	deck := g.State.Players[player].Deck
	n := 2
	if len(deck) < n {
		n = len(deck)
	}
	if n == 0 {
		return
	}
	// Topmost first.
	revealed := make([]string, 0, n)
	for i := 0; i < n; i++ {
		revealed = append(revealed, deck[len(deck)-1-i])
	}
	g.emit(cause, Event{Type: EventCardRevealed, Player: player, Cards: revealed})
	g.requireDecision(cause, &PendingChoice{
		Player:   player,
		Prompt:   "Trash any number of the revealed cards",
		FromZone: ZoneDeck,
		Options:  revealed,
		Min:      0,
		Max:      len(revealed),
		Card:     "Sentry",
		Stage:    StageSentryTrash,
		Meta:     ChoiceMeta{Routing: revealed, Throne: inherit.Throne},
	})
}

func playThroneRoom(g *Game, cause, player int, inherit ChoiceMeta) {
	var actions []string
	for _, c := range g.State.Players[player].Hand {
		if MustCard(c).IsAction() {
			actions = append(actions, c)
		}
	}
	if len(actions) == 0 {
		return
	}
	g.requireDecision(cause, &PendingChoice{
		Player:   player,
		Prompt:   "Choose an Action card to play twice",
		FromZone: ZoneHand,
		Options:  actions,
		Min:      1,
		Max:      1,
		Card:     "Throne Room",
		Stage:    StageThroneChoose,
		Meta:     ChoiceMeta{Throne: inherit.Throne},
	})
}

func playBandit(g *Game, cause, player int, inherit ChoiceMeta) {
	g.gainCard(cause, player, "Gold", ZoneDiscard)
}

func playBureaucrat(g *Game, cause, player int, inherit ChoiceMeta) {
	g.gainCard(cause, player, "Silver", ZoneDeck)
}

// --- Resumption ---

// resumeEffect continues a multi-stage effect after its pending decision was
// answered. picked is the validated selection; it is empty when the decision
// was skipped. cause is the id of the DecisionResolved or DecisionSkipped
// event, so follow-on events nest under the player's answer.
//
// Stages are resumed here and only here; the one-time grants and starters in
// playEffect are structurally out of reach, which is what makes resumption
// idempotent per play.
func (g *Game) resumeEffect(pc *PendingChoice, picked []string, cause int) {
	player := pc.Player
	switch pc.Stage {
	case StageCellarDiscard:
		for _, c := range picked {
			g.discardCard(cause, player, c, ZoneHand)
		}
		g.drawCards(cause, player, len(picked))
		g.finishEffect(player, pc.Meta)

	case StageChapelTrash:
		for _, c := range picked {
			g.trashCard(cause, player, c, ZoneHand)
		}
		g.finishEffect(player, pc.Meta)

	case StageHarbingerTopdeck:
		if len(picked) == 1 {
			g.topdeckCard(cause, player, picked[0], ZoneDiscard)
		}
		g.finishEffect(player, pc.Meta)

	case StageMoneylenderTrash:
		if len(picked) == 1 {
			g.trashCard(cause, player, "Copper", ZoneHand)
			g.addCoins(cause, 3)
		}
		g.finishEffect(player, pc.Meta)

	case StageWorkshopGain:
		g.gainCard(cause, player, picked[0], ZoneDiscard)
		g.finishEffect(player, pc.Meta)

	case StageRemodelTrash:
		trashed := picked[0]
		ceiling := g.State.CostOf(trashed) + 2
		g.trashCard(cause, player, trashed, ZoneHand)
		options := g.State.SupplyCards(ceiling, nil)
		if len(options) == 0 {
			g.finishEffect(player, pc.Meta)
			return
		}
		g.requireDecision(cause, &PendingChoice{
			Player:   player,
			Prompt:   "Gain a card costing up to $" + strconv.Itoa(ceiling),
			FromZone: ZoneSupply,
			Options:  options,
			Min:      1,
			Max:      1,
			Card:     "Remodel",
			Stage:    StageRemodelGain,
			Meta:     ChoiceMeta{GainCeiling: ceiling, GainZone: ZoneDiscard, Throne: pc.Meta.Throne},
		})

	case StageRemodelGain:
		g.gainCard(cause, player, picked[0], pc.Meta.GainZone)
		g.finishEffect(player, pc.Meta)

	case StageMineTrash:
		if len(picked) == 0 {
			g.finishEffect(player, pc.Meta)
			return
		}
		trashed := picked[0]
		ceiling := g.State.CostOf(trashed) + 3
		g.trashCard(cause, player, trashed, ZoneHand)
		options := g.State.SupplyCards(ceiling, func(def *CardDef) bool { return def.IsTreasure() })
		if len(options) == 0 {
			g.finishEffect(player, pc.Meta)
			return
		}
		g.requireDecision(cause, &PendingChoice{
			Player:   player,
			Prompt:   "Gain a Treasure to your hand costing up to $" + strconv.Itoa(ceiling),
			FromZone: ZoneSupply,
			Options:  options,
			Min:      1,
			Max:      1,
			Card:     "Mine",
			Stage:    StageMineGain,
			Meta:     ChoiceMeta{GainCeiling: ceiling, GainZone: ZoneHand, Throne: pc.Meta.Throne},
		})

	case StageMineGain:
		g.gainCard(cause, player, picked[0], pc.Meta.GainZone)
		g.finishEffect(player, pc.Meta)

	case StageArtisanGain:
		g.gainCard(cause, player, picked[0], pc.Meta.GainZone)
		artisanTopdeck(g, cause, player, pc.Meta.Throne)
		if g.State.Pending == nil {
			g.finishEffect(player, pc.Meta)
		}

	case StageArtisanTopdeck:
		g.topdeckCard(cause, player, picked[0], ZoneHand)
		g.finishEffect(player, pc.Meta)

	case StageSentryTrash:
		for _, c := range picked {
			g.trashCard(cause, player, c, ZoneDeck)
		}
		remaining := multisetMinus(pc.Meta.Routing, picked)
		if len(remaining) == 0 {
			g.finishEffect(player, pc.Meta)
			return
		}
		g.requireDecision(cause, &PendingChoice{
			Player:   player,
			Prompt:   "Discard any number of the remaining cards",
			FromZone: ZoneDeck,
			Options:  remaining,
			Min:      0,
			Max:      len(remaining),
			Card:     "Sentry",
			Stage:    StageSentryDiscard,
			Meta:     ChoiceMeta{Routing: remaining, Throne: pc.Meta.Throne},
		})

	case StageSentryDiscard:
		for _, c := range picked {
			g.discardCard(cause, player, c, ZoneDeck)
		}
		remaining := multisetMinus(pc.Meta.Routing, picked)
		if len(remaining) <= 1 {
			g.finishEffect(player, pc.Meta)
			return
		}
		g.requireDecision(cause, &PendingChoice{
			Player:   player,
			Prompt:   "Choose the card to put on top of your deck",
			FromZone: ZoneDeck,
			Options:  remaining,
			Min:      1,
			Max:      1,
			Card:     "Sentry",
			Stage:    StageSentryOrder,
			Meta:     ChoiceMeta{Routing: remaining, Throne: pc.Meta.Throne},
		})

	case StageSentryOrder:
		g.topdeckCard(cause, player, picked[0], ZoneDeck)
		g.finishEffect(player, pc.Meta)

	case StageThroneChoose:
		target := picked[0]
		played := g.emit(cause, Event{Type: EventCardPlayed, Player: player, Card: target})
		stack := append(append([]ThroneFrame(nil), pc.Meta.Throne...), ThroneFrame{
			Card: target, Remaining: 1, Cause: played.ID,
		})
		g.playEffect(played.ID, player, target, ChoiceMeta{Throne: stack})

	case StageMilitiaDiscard:
		for _, c := range picked {
			g.discardCard(cause, player, c, ZoneHand)
		}
		g.advanceResolution(pc.Meta.Scan, pc.Meta.Throne)

	case StageBureaucratTopdeck:
		g.emit(cause, Event{Type: EventCardRevealed, Player: player, Card: picked[0]})
		g.topdeckCard(cause, player, picked[0], ZoneHand)
		g.advanceResolution(pc.Meta.Scan, pc.Meta.Throne)

	case StageBanditTrash:
		g.trashCard(cause, player, picked[0], ZoneDeck)
		for _, c := range multisetMinus(pc.Meta.Routing, picked) {
			g.discardCard(cause, player, c, ZoneDeck)
		}
		g.advanceResolution(pc.Meta.Scan, pc.Meta.Throne)

	default:
		panicf("resume with unknown stage %d", pc.Stage)
	}
}

// advanceResolution steps past the attack target whose decision just resolved.
func (g *Game) advanceResolution(scan *AttackScan, throne []ThroneFrame) {
	scan.Cursor++
	g.continueAttackResolution(scan, throne)
}

func handCopy(g *Game, player int) []string {
	return append([]string(nil), g.State.Players[player].Hand...)
}

// multisetMinus removes each card in picked from all once.
func multisetMinus(all, picked []string) []string {
	out := append([]string(nil), all...)
	for _, c := range picked {
		if i := lastIndex(out, c); i >= 0 {
			out = append(out[:i], out[i+1:]...)
		}
	}
	return out
}
