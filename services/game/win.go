package game

import (
	"log"

	"github.com/gin-gonic/gin"
)

// Win reasons broadcast with the final result.
const (
	ReasonThingDied            = "thing_died"
	ReasonIncorrectDeclaration = "incorrect_declaration"
	ReasonNoHumansAlive        = "no_humans_alive"
)

// evaluateWinners resolves the winner list for a terminal reason.
func (m *Match) evaluateWinners(reason string) []string {
	switch reason {
	case ReasonThingDied, ReasonIncorrectDeclaration:
		return m.LivingHumans()
	case ReasonNoHumansAlive:
		if m.LivingCount() == len(m.Players) {
			// Nobody died on the way: the thing wins alone.
			if thing := m.TheThingPlayer(); thing != nil {
				return []string{thing.Name}
			}
			return nil
		}
		var winners []string
		for _, p := range m.Players {
			if !p.IsAlive {
				continue
			}
			if p.Role != RoleInfected && p.Role != RoleTheThing {
				continue
			}
			if p.Name == m.LastInfected {
				// The most recently converted player is denied the win.
				continue
			}
			winners = append(winners, p.Name)
		}
		return winners
	}
	return nil
}

// finish moves the match to the terminal state, broadcasts the result and
// returns ErrMatchFinished so callers halt further processing.
func (m *Match) finish(reason string, n Notifier) error {
	winners := m.evaluateWinners(reason)
	m.State = StateFinished
	m.Winners = winners
	m.WinReason = reason
	log.Printf("[MATCH-END] Match %s finished: reason=%s winners=%v", m.Name, reason, winners)
	n.Broadcast(m.Name, EventMatchFinished, gin.H{
		"reason":  reason,
		"winners": winners,
	})
	return ErrMatchFinished
}

// HandleDeclare resolves the thing's accusation that no humans remain.
// A correct declaration awards the infected side, a wrong one the humans.
func (m *Match) HandleDeclare(playerName string, n Notifier) error {
	player, err := m.GetPlayer(playerName)
	if err != nil {
		return err
	}
	if m.State != StatePlayTurn {
		return NewGameRule("declarations are only allowed during your play phase")
	}
	if m.CurrentPlayer != player.Position {
		return NewGameRule("it is not your turn")
	}
	if player.Role != RoleTheThing {
		return NewGameRule("only the thing can declare")
	}
	if len(m.LivingHumans()) > 0 {
		return m.finish(ReasonIncorrectDeclaration, n)
	}
	return m.finish(ReasonNoHumansAlive, n)
}
