package game

import (
	"github.com/gin-gonic/gin"
)

// recordingNotifier captures every notification so tests can assert on
// the payloads the state machine emits.
type recordingNotifier struct {
	events []recordedEvent
}

type recordedEvent struct {
	To      string // empty for broadcasts
	Event   string
	Payload gin.H
}

func (r *recordingNotifier) Broadcast(_ string, event string, payload gin.H) {
	r.events = append(r.events, recordedEvent{Event: event, Payload: payload})
}

func (r *recordingNotifier) SendToPlayer(username string, event string, payload gin.H) {
	r.events = append(r.events, recordedEvent{To: username, Event: event, Payload: payload})
}

func (r *recordingNotifier) last(event string) (recordedEvent, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Event == event {
			return r.events[i], true
		}
	}
	return recordedEvent{}, false
}

func (r *recordingNotifier) count(event string) int {
	n := 0
	for _, e := range r.events {
		if e.Event == event {
			n++
		}
	}
	return n
}

// testMatch builds a started match with empty hands, an empty deck and
// the thing seated at thingIdx, bypassing the random deal.
func testMatch(names []string, thingIdx int) *Match {
	m := NewMatch("partida", "", 4, 12)
	for i, name := range names {
		m.Players = append(m.Players, &Player{
			Name:     name,
			IsHost:   i == 0,
			Position: i,
			Role:     RoleHuman,
			IsAlive:  true,
		})
	}
	m.Players[thingIdx].Role = RoleTheThing
	m.Obstacles = make([]bool, len(names))
	m.Deck = NewDeck(nil)
	m.Initiated = true
	m.Clockwise = true
	m.State = StateDrawCard
	m.CurrentPlayer = 0
	return m
}

// giveCard puts a fresh copy of the named card into the player's hand.
func giveCard(p *Player, id int, name string) Card {
	spec := cardSpecs[name]
	card := Card{ID: id, Name: name, Type: spec.Type, Number: 4}
	p.Hand = append(p.Hand, card)
	return card
}

// pileCard appends a copy of the named card to the draw pile.
func pileCard(m *Match, id int, name string) Card {
	spec := cardSpecs[name]
	card := Card{ID: id, Name: name, Type: spec.Type, Number: 4}
	m.Deck.DrawPile = append(m.Deck.DrawPile, card)
	return card
}
