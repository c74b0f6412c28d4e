package game

import (
	"fmt"
	"math/rand"
)

// Deck holds the two per-match piles. Cards move between the draw pile,
// the discard pile and the players' hands and are never destroyed.
type Deck struct {
	DrawPile    []Card `json:"draw_pile"`
	DiscardPile []Card `json:"discard_pile"`
}

// NewDeck wraps an already-built card list as a draw pile.
func NewDeck(cards []Card) *Deck {
	return &Deck{DrawPile: cards}
}

// reshuffle moves the whole discard pile back into the draw pile.
func (d *Deck) reshuffle() {
	d.DrawPile = append(d.DrawPile, d.DiscardPile...)
	d.DiscardPile = nil
}

// takeRandom removes and returns one uniformly random card from the draw
// pile. The caller must guarantee the pile is not empty.
func (d *Deck) takeRandom() Card {
	i := rand.Intn(len(d.DrawPile))
	card := d.DrawPile[i]
	d.DrawPile[i] = d.DrawPile[len(d.DrawPile)-1]
	d.DrawPile = d.DrawPile[:len(d.DrawPile)-1]
	return card
}

// DrawRandomCard moves one card into the player's hand. A pending top-card
// override bypasses the piles entirely; otherwise an empty draw pile is
// replenished from the discard pile first.
func (m *Match) DrawRandomCard(p *Player) (Card, error) {
	if m.TopCard != nil {
		card := *m.TopCard
		m.TopCard = nil
		p.Hand = append(p.Hand, card)
		return card, nil
	}
	if len(m.Deck.DrawPile) == 0 {
		m.Deck.reshuffle()
	}
	if len(m.Deck.DrawPile) == 0 {
		// With correct deck construction the piles can never both be
		// empty while hands hold cards; treat as an internal defect.
		return Card{}, fmt.Errorf("deck exhausted in match %s: no cards to draw", m.Name)
	}
	card := m.Deck.takeRandom()
	p.Hand = append(p.Hand, card)
	return card, nil
}

// DrawNonPanicCard draws until a non-Panic card comes up, discarding every
// Panic card drawn along the way. Used by forced-redraw effects.
func (m *Match) DrawNonPanicCard(p *Player) (Card, error) {
	for {
		card, err := m.DrawRandomCard(p)
		if err != nil {
			return Card{}, err
		}
		if !card.IsPanic() {
			return card, nil
		}
		if err := m.DiscardFromHand(p, card.ID); err != nil {
			return Card{}, err
		}
	}
}

// takeNonPanic pulls one non-Panic card straight from the piles without
// giving it to anybody, burning Panic copies to the discard pile. Used by
// effects that reserve the deck's next card.
func (m *Match) takeNonPanic() (Card, error) {
	for {
		if len(m.Deck.DrawPile) == 0 {
			m.Deck.reshuffle()
		}
		if len(m.Deck.DrawPile) == 0 {
			return Card{}, fmt.Errorf("deck exhausted in match %s: no cards to draw", m.Name)
		}
		card := m.Deck.takeRandom()
		if card.IsPanic() {
			m.Deck.DiscardPile = append(m.Deck.DiscardPile, card)
			continue
		}
		return card, nil
	}
}

// DiscardFromHand moves a card from the player's hand to the discard pile.
func (m *Match) DiscardFromHand(p *Player, cardID int) error {
	card, err := m.removeFromHand(p, cardID)
	if err != nil {
		return err
	}
	m.Deck.DiscardPile = append(m.Deck.DiscardPile, card)
	return nil
}

// ExchangeHands atomically swaps one card between two hands.
func (m *Match) ExchangeHands(a *Player, cardA int, b *Player, cardB int) error {
	if _, ok := a.HasCard(cardA); !ok {
		return NewInvalidCard(fmt.Sprintf("%s does not hold the offered card", a.Name))
	}
	if _, ok := b.HasCard(cardB); !ok {
		return NewInvalidCard(fmt.Sprintf("%s does not hold the offered card", b.Name))
	}
	cardFromA, _ := m.removeFromHand(a, cardA)
	cardFromB, _ := m.removeFromHand(b, cardB)
	a.Hand = append(a.Hand, cardFromB)
	b.Hand = append(b.Hand, cardFromA)
	return nil
}

// DiscardWholeHand dumps every card of the player into the discard pile.
func (m *Match) DiscardWholeHand(p *Player) {
	m.Deck.DiscardPile = append(m.Deck.DiscardPile, p.Hand...)
	p.Hand = nil
}

func (m *Match) removeFromHand(p *Player, cardID int) (Card, error) {
	for i, c := range p.Hand {
		if c.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c, nil
		}
	}
	return Card{}, NewInvalidCard(fmt.Sprintf("card %d is not in %s's hand", cardID, p.Name))
}

// SetTopCard arms the override slot consumed by the next draw.
func (m *Match) SetTopCard(card Card) {
	m.TopCard = &card
}

// TakeTopCard clears and returns the override card.
func (m *Match) TakeTopCard() (Card, error) {
	if m.TopCard == nil {
		return Card{}, ErrNoTopCard
	}
	card := *m.TopCard
	m.TopCard = nil
	return card, nil
}

// TotalCards counts every card instance of the match across both piles,
// all hands and the override slot. Conserved for the whole match life.
func (m *Match) TotalCards() int {
	total := len(m.Deck.DrawPile) + len(m.Deck.DiscardPile)
	for _, p := range m.Players {
		total += len(p.Hand)
	}
	if m.TopCard != nil {
		total++
	}
	return total
}
