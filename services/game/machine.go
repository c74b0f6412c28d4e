package game

import (
	game_constants "LaCosa/constants/game"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
)

// Reveal-round decisions accepted by HandleRevealDecision.
const (
	RevealOmit      = "omitir"
	RevealWholeHand = "mostrar_mano"
	RevealInfectado = "mostrar_infectado"
)

// AddPlayer seats a new player in the lobby. The first player to join is
// the host.
func (m *Match) AddPlayer(name string) error {
	if m.Initiated {
		return NewGameRule("the match has already started")
	}
	if len(m.Players) >= m.MaxPlayers {
		return NewGameRule("the match is full")
	}
	for _, p := range m.Players {
		if p.Name == name {
			return NewGameRule("you already joined this match")
		}
	}
	m.Players = append(m.Players, &Player{
		Name:     name,
		IsHost:   len(m.Players) == 0,
		Position: len(m.Players),
		IsAlive:  true,
		Role:     RoleHuman,
	})
	return nil
}

// RemoveLobbyPlayer detaches a player before the match starts, compacting
// positions and reassigning the host flag if the host left.
func (m *Match) RemoveLobbyPlayer(name string) error {
	if m.Initiated {
		return NewGameRule("the match has already started")
	}
	idx := -1
	for i, p := range m.Players {
		if p.Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrPlayerNotInMatch
	}
	wasHost := m.Players[idx].IsHost
	m.Players = append(m.Players[:idx], m.Players[idx+1:]...)
	for i, p := range m.Players {
		p.Position = i
	}
	if wasHost && len(m.Players) > 0 {
		m.Players[0].IsHost = true
	}
	return nil
}

// StartGame deals the initial hands and opens the first turn. Panic and
// ¡Infectado! copies stay out of the deal pool; one random player receives
// La Cosa and becomes the thing.
func (m *Match) StartGame(n Notifier) error {
	if m.Initiated {
		return NewGameRule("the match has already started")
	}
	if len(m.Players) < m.MinPlayers {
		return NewGameRule(fmt.Sprintf("at least %d players are needed", m.MinPlayers))
	}

	cards := BuildDeck(len(m.Players))
	var laCosa *Card
	var dealPool []Card
	var withheld []Card
	for _, c := range cards {
		switch {
		case c.Name == LaCosa:
			card := c
			laCosa = &card
		case c.IsPanic() || c.Name == Infectado:
			withheld = append(withheld, c)
		default:
			dealPool = append(dealPool, c)
		}
	}
	if laCosa == nil {
		return fmt.Errorf("catalog is missing the identity card")
	}

	takeRandom := func() Card {
		i := rand.Intn(len(dealPool))
		card := dealPool[i]
		dealPool[i] = dealPool[len(dealPool)-1]
		dealPool = dealPool[:len(dealPool)-1]
		return card
	}

	thingIdx := rand.Intn(len(m.Players))
	for i, p := range m.Players {
		p.Position = i
		p.IsAlive = true
		p.Quarantine = 0
		p.Hand = nil
		if i == thingIdx {
			p.Role = RoleTheThing
			p.Hand = append(p.Hand, *laCosa)
			for j := 0; j < game_constants.InitialHandSize-1; j++ {
				p.Hand = append(p.Hand, takeRandom())
			}
		} else {
			p.Role = RoleHuman
			for j := 0; j < game_constants.InitialHandSize; j++ {
				p.Hand = append(p.Hand, takeRandom())
			}
		}
	}

	m.Deck = NewDeck(append(dealPool, withheld...))
	m.Obstacles = make([]bool, len(m.Players))
	m.Initiated = true
	m.Clockwise = true
	m.CurrentPlayer = rand.Intn(len(m.Players))
	m.State = StateDrawCard
	m.resetTransient()

	log.Printf("[MATCH-START] Match %s started with %d players, first turn for position %d",
		m.Name, len(m.Players), m.CurrentPlayer)

	positions := make([]gin.H, 0, len(m.Players))
	for _, p := range m.Players {
		positions = append(positions, gin.H{"name": p.Name, "position": p.Position})
	}
	n.Broadcast(m.Name, EventMatchStarted, gin.H{
		"players":     positions,
		"turn_player": m.TurnOwner().Name,
		"clockwise":   m.Clockwise,
	})
	for _, p := range m.Players {
		n.SendToPlayer(p.Name, EventCardDrawn, gin.H{"hand": handNames(p), "initial": true})
	}
	return nil
}

// requireTurn validates phase and turn ownership in one place. Every
// action re-checks both before touching any state.
func (m *Match) requireTurn(playerName string, states ...GameState) (*Player, error) {
	if m.State == StateFinished {
		return nil, ErrMatchFinished
	}
	player, err := m.GetPlayer(playerName)
	if err != nil {
		return nil, err
	}
	ok := false
	for _, s := range states {
		if m.State == s {
			ok = true
			break
		}
	}
	if !ok {
		return nil, NewGameRule(fmt.Sprintf("action not allowed during phase %s", m.State))
	}
	if m.CurrentPlayer != player.Position {
		return nil, NewGameRule("it is not your turn")
	}
	if !player.IsAlive {
		return nil, NewInvalidPlayer("dead players cannot act")
	}
	return player, nil
}

// HandleDraw resolves the draw action that opens every turn. Drawing a
// Panic card forces immediate resolution before normal play.
func (m *Match) HandleDraw(playerName string, n Notifier) error {
	player, err := m.requireTurn(playerName, StateDrawCard)
	if err != nil {
		return err
	}
	card, err := m.DrawRandomCard(player)
	if err != nil {
		return err
	}

	payload := gin.H{"player": player.Name, "in_quarantine": player.InQuarantine()}
	if player.InQuarantine() {
		// Quarantined players draw face up.
		payload["card"] = card.Name
	}
	event := EventCardDrawn
	if card.IsPanic() {
		m.State = StatePanic
		event = EventPanicCardDrawn
		payload["card"] = card.Name
	} else {
		m.State = StatePlayTurn
	}
	n.Broadcast(m.Name, event, payload)
	n.SendToPlayer(player.Name, EventCardDrawn, gin.H{"card": card.Name, "card_id": card.ID})
	return nil
}

// validateTarget applies the capability flags of the played card to the
// chosen target.
func (m *Match) validateTarget(spec CardSpec, card Card, player *Player, targetName string) (*Player, error) {
	if !spec.RequiresTarget {
		return nil, nil
	}
	if targetName == "" {
		return nil, NewInvalidPlayer("this card needs a target")
	}
	target, err := m.GetPlayer(targetName)
	if err != nil {
		return nil, err
	}
	if target.Name == player.Name {
		return nil, NewInvalidPlayer("you cannot target yourself")
	}
	if !target.IsAlive {
		return nil, NewInvalidPlayer("the target is dead")
	}
	switch {
	case spec.ThreeSteps:
		if !m.IsThreeStepsFrom(player, target) {
			return nil, NewInvalidPlayer("the target must be exactly three seats away")
		}
	case spec.RequiresAdjacent:
		if !m.IsAdjacent(player, target) {
			return nil, NewInvalidPlayer("the target is not adjacent")
		}
		// Hacha is played against the very obstacle it removes.
		if card.Name != Hacha {
			if m.ExistsObstacleBetween(player, target) {
				return nil, NewInvalidPlayer("an obstacle blocks the way to the target")
			}
			if target.InQuarantine() {
				return nil, NewInvalidPlayer("the target is in quarantine")
			}
		}
	case spec.AllowsAnyTarget:
		if target.InQuarantine() {
			return nil, NewInvalidPlayer("the target is in quarantine")
		}
	}
	return target, nil
}

// HandlePlayCard resolves playing an Action, Obstacle or Panic card. A
// defensible card freezes the match in a defense window owned by the
// target instead of resolving immediately.
func (m *Match) HandlePlayCard(playerName string, cardID int, targetName string, n Notifier) error {
	player, err := m.requireTurn(playerName, StatePlayTurn, StatePanic)
	if err != nil {
		return err
	}
	card, ok := player.HasCard(cardID)
	if !ok {
		return NewInvalidCard("you do not hold that card")
	}
	spec, ok := GetCardSpec(card.Name)
	if !ok {
		return NewInvalidCard("unknown card")
	}
	if m.State == StatePanic && !card.IsPanic() {
		return NewGameRule("you must play the panic card now")
	}
	if m.State == StatePlayTurn && card.IsPanic() {
		return NewInvalidCard("panic cards resolve only when drawn")
	}
	if card.Type == TypeDefense || card.Type == TypeContagion {
		return NewInvalidCard("that card cannot be played proactively")
	}

	target, err := m.validateTarget(spec, card, player, targetName)
	if err != nil {
		return err
	}

	m.PlayedCard = &card
	m.TurnPlayer = player.Name
	if target != nil {
		m.TargetPlayer = target.Name
	} else {
		m.TargetPlayer = ""
	}
	if err := m.DiscardFromHand(player, card.ID); err != nil {
		return err
	}

	if spec.Defensible() {
		// Park the match and hand turn ownership to the target so only
		// they can answer the window.
		m.State = StateWaitDefense
		m.CurrentPlayer = target.Position
		m.Timestamp = time.Now()
		n.Broadcast(m.Name, EventDefenseRequired, gin.H{
			"player": player.Name,
			"card":   card.Name,
			"target": target.Name,
		})
		return nil
	}

	before := m.State
	if err := dispatchEffect(m, card, player, target, nil, n); err != nil {
		return err
	}
	if m.State != before {
		// The effect parked the match in a specialized phase.
		return nil
	}
	if spec.FreeExchange {
		if player.InQuarantine() {
			return m.EndPlayerTurn(n)
		}
		m.State = StateExchange
		return nil
	}
	return m.maybeExchangeOrEndTurn(player, n)
}

// HandleDiscard resolves a discard during PLAY_TURN or a specialized
// DISCARD phase opened by Olvidadizo or Cita a ciegas.
func (m *Match) HandleDiscard(playerName string, cardID int, n Notifier) error {
	player, err := m.requireTurn(playerName, StatePlayTurn, StateDiscard)
	if err != nil {
		return err
	}
	card, ok := player.HasCard(cardID)
	if !ok {
		return NewInvalidCard("you do not hold that card")
	}
	if card.Name == LaCosa {
		return NewInvalidCard("the identity card can never be discarded")
	}
	if card.Name == Infectado && player.Role == RoleInfected && player.CountByName(Infectado) <= 1 {
		return NewInvalidCard("an infected player must keep one ¡Infectado! card")
	}
	if err := m.DiscardFromHand(player, card.ID); err != nil {
		return err
	}

	payload := gin.H{"player": player.Name, "in_quarantine": player.InQuarantine()}
	if player.InQuarantine() {
		// Quarantine forces face-up discards.
		payload["card"] = card.Name
	}
	n.Broadcast(m.Name, EventCardDiscarded, payload)

	if m.State == StateDiscard && m.PlayedCard != nil {
		switch m.PlayedCard.Name {
		case Olvidadizo:
			m.AmountDiscarded++
			if m.AmountDiscarded < game_constants.OlvidadizoDiscards {
				return nil
			}
			for i := 0; i < game_constants.OlvidadizoDiscards; i++ {
				if _, err := m.DrawNonPanicCard(player); err != nil {
					return err
				}
			}
			n.SendToPlayer(player.Name, EventCardDrawn, gin.H{"hand": handNames(player)})
			return m.maybeExchangeOrEndTurn(player, n)
		case CitaACiegas:
			// The replacement was reserved when the card resolved.
			reserved, err := m.TakeTopCard()
			if err != nil {
				return err
			}
			player.Hand = append(player.Hand, reserved)
			n.SendToPlayer(player.Name, EventCardDrawn, gin.H{"hand": handNames(player)})
			return m.maybeExchangeOrEndTurn(player, n)
		}
	}
	return m.maybeExchangeOrEndTurn(player, n)
}

// maybeExchangeOrEndTurn opens the end-of-turn exchange with the next
// living neighbor unless quarantine or an obstacle blocks passage.
func (m *Match) maybeExchangeOrEndTurn(player *Player, n Notifier) error {
	next := m.PlayerAt(m.NextAlivePosition(player.Position))
	if player.InQuarantine() || next.InQuarantine() || m.ExistsObstacleBetween(player, next) {
		return m.EndPlayerTurn(n)
	}
	m.State = StateExchange
	m.CurrentPlayer = player.Position
	n.Broadcast(m.Name, EventExchangeOffered, gin.H{
		"phase":  string(StateExchange),
		"player": player.Name,
		"with":   next.Name,
	})
	return nil
}

// validateOfferedCard enforces the rules common to every card handed to
// another player.
func validateOfferedCard(player *Player, card Card) error {
	if card.Name == LaCosa {
		return NewInvalidCard("the identity card can never be given away")
	}
	if card.Name == Infectado && player.Role == RoleInfected && player.CountByName(Infectado) <= 1 {
		return NewInvalidCard("an infected player must keep one ¡Infectado! card")
	}
	return nil
}

// runInfectionCheck converts a Human that receives a Contagion card from
// the thing or an infected player.
func (m *Match) runInfectionCheck(giver, receiver *Player, card Card, n Notifier) {
	if card.Name != Infectado {
		return
	}
	if giver.Role != RoleTheThing && giver.Role != RoleInfected {
		return
	}
	if receiver.Role != RoleHuman {
		return
	}
	receiver.Role = RoleInfected
	m.LastInfected = receiver.Name
	n.SendToPlayer(receiver.Name, EventPlayerInfected, gin.H{"by": giver.Name})
	log.Printf("[INFECTION] Match %s: %s infected %s", m.Name, giver.Name, receiver.Name)
}

// HandleExchangeCard covers the three exchange sub-protocols, picked by
// the current phase: initiating an offer, answering one, or submitting to
// the simultaneous vuelta y vuelta round.
func (m *Match) HandleExchangeCard(playerName string, cardID int, targetName string, n Notifier) error {
	if m.State == StateVueltaYVuelta {
		return m.handleVueltaSubmission(playerName, cardID, n)
	}

	player, err := m.requireTurn(playerName, StateExchange, StateWaitExchange)
	if err != nil {
		return err
	}
	card, ok := player.HasCard(cardID)
	if !ok {
		return NewInvalidCard("you do not hold that card")
	}
	if err := validateOfferedCard(player, card); err != nil {
		return err
	}

	if m.State == StateExchange {
		target, err := m.resolveExchangeTarget(player, targetName)
		if err != nil {
			return err
		}
		m.ExchangeCard = &card
		m.ExchangePlayer = player.Name
		m.TargetPlayer = target.Name
		m.State = StateWaitExchange
		m.CurrentPlayer = target.Position
		m.Timestamp = time.Now()
		n.SendToPlayer(target.Name, EventExchangeOffered, gin.H{"from": player.Name})
		return nil
	}

	// WAIT_EXCHANGE: the target answers with their own card and the swap
	// executes atomically.
	offerer, err := m.GetPlayer(m.ExchangePlayer)
	if err != nil {
		return err
	}
	offeredCard := *m.ExchangeCard
	if err := m.ExchangeHands(offerer, offeredCard.ID, player, card.ID); err != nil {
		return err
	}
	m.runInfectionCheck(offerer, player, offeredCard, n)
	m.runInfectionCheck(player, offerer, card, n)
	n.Broadcast(m.Name, EventCardsExchanged, gin.H{
		"player": offerer.Name,
		"with":   player.Name,
	})
	m.CurrentPlayer = offerer.Position
	return m.EndPlayerTurn(n)
}

// resolveExchangeTarget picks the exchange recipient: the next living
// neighbor by default, or a free target when the last played card allows
// it (Seducción).
func (m *Match) resolveExchangeTarget(player *Player, targetName string) (*Player, error) {
	freeTarget := false
	if m.PlayedCard != nil {
		if spec, ok := GetCardSpec(m.PlayedCard.Name); ok {
			freeTarget = spec.FreeExchange
		}
	}
	if freeTarget && targetName != "" {
		target, err := m.GetPlayer(targetName)
		if err != nil {
			return nil, err
		}
		if !target.IsAlive {
			return nil, NewInvalidPlayer("the target is dead")
		}
		if target.Name == player.Name {
			return nil, NewInvalidPlayer("you cannot exchange with yourself")
		}
		if target.InQuarantine() {
			return nil, NewInvalidPlayer("the target is in quarantine")
		}
		return target, nil
	}
	return m.PlayerAt(m.NextAlivePosition(player.Position)), nil
}

// handleVueltaSubmission records one submission of the simultaneous
// all-players exchange and rotates every card once the round is full.
func (m *Match) handleVueltaSubmission(playerName string, cardID int, n Notifier) error {
	player, err := m.GetPlayer(playerName)
	if err != nil {
		return err
	}
	if !player.IsAlive {
		return NewInvalidPlayer("dead players cannot act")
	}
	if m.ExchangeRound == nil {
		m.ExchangeRound = make(map[string]int)
	}
	if _, dup := m.ExchangeRound[player.Name]; dup {
		return NewGameRule("you already submitted a card this round")
	}
	card, ok := player.HasCard(cardID)
	if !ok {
		return NewInvalidCard("you do not hold that card")
	}
	if err := validateOfferedCard(player, card); err != nil {
		return err
	}
	m.ExchangeRound[player.Name] = cardID
	if !m.vueltaRoundComplete() {
		return nil
	}
	return m.resolveVueltaRound(n)
}

// vueltaRoundComplete reports whether every living player has submitted a
// card. Only living players count, so a seat dying mid-round can complete
// it.
func (m *Match) vueltaRoundComplete() bool {
	for _, p := range m.Players {
		if !p.IsAlive {
			continue
		}
		if _, ok := m.ExchangeRound[p.Name]; !ok {
			return false
		}
	}
	return true
}

// resolveVueltaRound rotates every submitted card one living seat along the
// ring. All submissions are checked before any hand changes, then all cards
// are pulled before any is delivered so the rotation is simultaneous.
func (m *Match) resolveVueltaRound(n Notifier) error {
	for _, p := range m.Players {
		if !p.IsAlive {
			continue
		}
		if _, ok := p.HasCard(m.ExchangeRound[p.Name]); !ok {
			return NewInvalidCard(fmt.Sprintf("card %d is not in %s's hand", m.ExchangeRound[p.Name], p.Name))
		}
	}
	type delivery struct {
		giver    *Player
		receiver *Player
		card     Card
	}
	var deliveries []delivery
	for _, p := range m.Players {
		if !p.IsAlive {
			continue
		}
		pulled, err := m.removeFromHand(p, m.ExchangeRound[p.Name])
		if err != nil {
			return err
		}
		receiver := m.PlayerAt(m.NextAlivePosition(p.Position))
		deliveries = append(deliveries, delivery{giver: p, receiver: receiver, card: pulled})
	}
	for _, d := range deliveries {
		d.receiver.Hand = append(d.receiver.Hand, d.card)
		m.runInfectionCheck(d.giver, d.receiver, d.card, n)
	}
	n.Broadcast(m.Name, EventCardsExchanged, gin.H{"round": "vuelta_y_vuelta"})
	return m.EndPlayerTurn(n)
}

// HandleDefend answers an open defense window or an exchange offer with a
// counter card. The defender discards it, draws a non-panic replacement
// and the turn returns to the original owner.
func (m *Match) HandleDefend(playerName string, cardID int, n Notifier) error {
	player, err := m.requireTurn(playerName, StateWaitDefense, StateWaitExchange)
	if err != nil {
		return err
	}
	card, ok := player.HasCard(cardID)
	if !ok {
		return NewInvalidCard("you do not hold that card")
	}
	if card.Type != TypeDefense {
		return NewInvalidCard("that card is not a defense")
	}

	if m.State == StateWaitDefense {
		return m.defendAttack(player, card, n)
	}
	return m.defendExchange(player, card, n)
}

func (m *Match) defendAttack(defender *Player, card Card, n Notifier) error {
	attackSpec, _ := GetCardSpec(m.PlayedCard.Name)
	if !attackSpec.CanBeDefendedWith(card.Name) {
		return NewInvalidCard(fmt.Sprintf("%s does not stop %s", card.Name, m.PlayedCard.Name))
	}
	if err := m.DiscardFromHand(defender, card.ID); err != nil {
		return err
	}
	if _, err := m.DrawNonPanicCard(defender); err != nil {
		return err
	}
	attacker, err := m.GetPlayer(m.TurnPlayer)
	if err != nil {
		return err
	}
	if err := dispatchEffect(m, *m.PlayedCard, attacker, defender, &card, n); err != nil {
		return err
	}
	m.CurrentPlayer = attacker.Position
	return m.maybeExchangeOrEndTurn(attacker, n)
}

func (m *Match) defendExchange(defender *Player, card Card, n Notifier) error {
	switch card.Name {
	case NoGracias, Aterrador:
		if card.Name == Aterrador {
			// The defender gets to see what was coming.
			n.SendToPlayer(defender.Name, EventCardRevealed, gin.H{
				"player": m.ExchangePlayer,
				"card":   m.ExchangeCard.Name,
			})
		}
		if err := m.DiscardFromHand(defender, card.ID); err != nil {
			return err
		}
		if _, err := m.DrawNonPanicCard(defender); err != nil {
			return err
		}
		offerer, err := m.GetPlayer(m.ExchangePlayer)
		if err != nil {
			return err
		}
		n.Broadcast(m.Name, EventAttackDefended, gin.H{
			"player":  defender.Name,
			"against": offerer.Name,
			"card":    card.Name,
		})
		m.CurrentPlayer = offerer.Position
		return m.EndPlayerTurn(n)
	case Fallaste:
		// The offer is redirected, not cancelled: the exchange chain
		// continues with the defender's next living neighbor.
		if err := m.DiscardFromHand(defender, card.ID); err != nil {
			return err
		}
		if _, err := m.DrawNonPanicCard(defender); err != nil {
			return err
		}
		offerer, err := m.GetPlayer(m.ExchangePlayer)
		if err != nil {
			return err
		}
		next := m.PlayerAt(m.NextAlivePosition(defender.Position))
		n.Broadcast(m.Name, EventAttackDefended, gin.H{
			"player":  defender.Name,
			"against": offerer.Name,
			"card":    Fallaste,
		})
		if next.Position == offerer.Position {
			// Nobody left to redirect to.
			m.CurrentPlayer = offerer.Position
			return m.EndPlayerTurn(n)
		}
		m.TargetPlayer = next.Name
		m.CurrentPlayer = next.Position
		n.SendToPlayer(next.Name, EventExchangeOffered, gin.H{"from": offerer.Name})
		return nil
	default:
		return NewInvalidCard(fmt.Sprintf("%s cannot answer an exchange", card.Name))
	}
}

// HandleSkipDefense lets the attack or the exchange resolve unresisted.
func (m *Match) HandleSkipDefense(playerName string, n Notifier) error {
	player, err := m.requireTurn(playerName, StateWaitDefense)
	if err != nil {
		return err
	}
	attacker, err := m.GetPlayer(m.TurnPlayer)
	if err != nil {
		return err
	}
	if err := dispatchEffect(m, *m.PlayedCard, attacker, player, nil, n); err != nil {
		return err
	}
	m.CurrentPlayer = attacker.Position
	return m.maybeExchangeOrEndTurn(attacker, n)
}

// HandleRevealDecision advances the reveal-or-pass ritual opened by
// Revelaciones. Showing an ¡Infectado! card, or a full hand that contains
// one, ends the round immediately.
func (m *Match) HandleRevealDecision(playerName, decision string, n Notifier) error {
	player, err := m.requireTurn(playerName, StateRevelaciones)
	if err != nil {
		return err
	}
	starter, err := m.GetPlayer(m.TurnPlayer)
	if err != nil {
		return err
	}

	endRound := false
	switch decision {
	case RevealOmit:
		// Nothing shown.
	case RevealWholeHand:
		n.Broadcast(m.Name, EventHandRevealed, gin.H{
			"player": player.Name,
			"hand":   handNames(player),
		})
		endRound = player.CountByName(Infectado) > 0
	case RevealInfectado:
		if player.CountByName(Infectado) == 0 {
			return NewInvalidCard("you hold no ¡Infectado! card to reveal")
		}
		n.Broadcast(m.Name, EventCardRevealed, gin.H{
			"player": player.Name,
			"card":   Infectado,
		})
		endRound = true
	default:
		return NewGameRule("unknown reveal decision")
	}

	next := m.PlayerAt(m.NextAlivePosition(player.Position))
	if endRound || next.Position == starter.Position {
		m.CurrentPlayer = starter.Position
		return m.maybeExchangeOrEndTurn(starter, n)
	}
	m.CurrentPlayer = next.Position
	n.Broadcast(m.Name, EventRevealTurn, gin.H{
		"player":  next.Name,
		"starter": starter.Name,
	})
	return nil
}

// EndPlayerTurn closes the turn: transient fields reset, every quarantine
// counter ticks down once, and the next living player starts at DRAW_CARD.
func (m *Match) EndPlayerTurn(n Notifier) error {
	next := m.NextAlivePosition(m.CurrentPlayer)
	for _, p := range m.Players {
		if p.Quarantine > 0 {
			p.Quarantine--
		}
	}
	m.resetTransient()
	m.State = StateDrawCard
	m.CurrentPlayer = next
	n.Broadcast(m.Name, EventTurnStarted, gin.H{
		"player":      m.TurnOwner().Name,
		"clockwise":   m.Clockwise,
		"quarantined": m.QuarantinedPlayers(),
	})
	return nil
}

// HandleLeave detaches a player from a running match. The seat dies, the
// hand is discarded, and the thing leaving hands the win to the humans.
func (m *Match) HandleLeave(playerName string, n Notifier) error {
	player, err := m.GetPlayer(playerName)
	if err != nil {
		return err
	}
	if m.State == StateFinished {
		return ErrMatchFinished
	}
	if !m.Initiated {
		return m.RemoveLobbyPlayer(playerName)
	}
	player.IsAlive = false
	player.Quarantine = 0
	m.DiscardWholeHand(player)
	n.Broadcast(m.Name, EventPlayerDied, gin.H{"player": player.Name, "left": true})
	if player.Role == RoleTheThing {
		return m.finish(ReasonThingDied, n)
	}
	if m.State == StateVueltaYVuelta {
		// The leaver's hand is already discarded, so their submission (if
		// any) is void; the remaining living players may now form a full
		// round.
		delete(m.ExchangeRound, player.Name)
		if m.vueltaRoundComplete() {
			return m.resolveVueltaRound(n)
		}
		return nil
	}
	if m.CurrentPlayer == player.Position {
		return m.EndPlayerTurn(n)
	}
	return nil
}
