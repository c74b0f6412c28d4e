package game

import "github.com/gin-gonic/gin"

// Event names emitted by the state machine. The socket layer forwards them
// verbatim to the clients of the match room.
const (
	EventMatchStarted    = "match_started"
	EventTurnStarted     = "turn_started"
	EventCardDrawn       = "card_drawn"
	EventPanicCardDrawn  = "panic_card_drawn"
	EventCardPlayed      = "card_played"
	EventCardDiscarded   = "card_discarded"
	EventDefenseRequired = "defense_required"
	EventAttackDefended  = "attack_defended"
	EventPlayerDied      = "player_died"
	EventPositionsSwap   = "positions_swapped"
	EventDirectionChange = "direction_changed"
	EventDoorPlaced      = "door_placed"
	EventQuarantine      = "quarantine_placed"
	EventHandRevealed    = "hand_revealed"
	EventCardRevealed    = "card_revealed"
	EventExchangeOffered = "exchange_offered"
	EventCardsExchanged  = "cards_exchanged"
	EventPlayerInfected  = "player_infected"
	EventVueltaYVuelta   = "vuelta_y_vuelta"
	EventRevealTurn      = "reveal_turn"
	EventMatchFinished   = "match_finished"
	EventObstaclesClear  = "obstacles_cleared"
)

// Notifier is the injected messaging capability. Both operations are
// fire-and-forget: a disconnected recipient never aborts a state
// transition nor blocks delivery to other clients.
type Notifier interface {
	Broadcast(matchName string, event string, payload gin.H)
	SendToPlayer(username string, event string, payload gin.H)
}

// NopNotifier discards every notification. Used by tests that only care
// about state transitions.
type NopNotifier struct{}

func (NopNotifier) Broadcast(string, string, gin.H)    {}
func (NopNotifier) SendToPlayer(string, string, gin.H) {}
