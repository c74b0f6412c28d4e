package game

import "errors"

// Referential errors surfaced by the registry boundary.
var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrPlayerNotInMatch = errors.New("player is not in this match")
	ErrNoTopCard        = errors.New("no top card override set")
)

// ErrMatchFinished is a terminal control-flow signal, not a rejection: once
// a match reaches FINISHED the connection layer must tear the match down.
var ErrMatchFinished = errors.New("match finished")

// ErrorKind classifies single-action rejections so the transport layer can
// report them back to the acting client.
type ErrorKind string

const (
	KindInvalidCard   ErrorKind = "invalid_card"
	KindInvalidPlayer ErrorKind = "invalid_player"
	KindGameRule      ErrorKind = "game_rule"
)

// GameError is a locally recoverable rejection: match state is unchanged
// and the message is sent only to the acting client.
type GameError struct {
	Kind    ErrorKind
	Message string
}

func (e *GameError) Error() string { return e.Message }

// NewInvalidCard reports a card-level violation (missing card, wrong type,
// not in hand, or a specific card rule).
func NewInvalidCard(message string) error {
	return &GameError{Kind: KindInvalidCard, Message: message}
}

// NewInvalidPlayer reports a target-level violation (dead target, wrong
// match, self-target, adjacency, obstacle or quarantine).
func NewInvalidPlayer(message string) error {
	return &GameError{Kind: KindInvalidPlayer, Message: message}
}

// NewGameRule reports a rule violation not tied to a specific card or
// player, like acting out of phase or out of turn.
func NewGameRule(message string) error {
	return &GameError{Kind: KindGameRule, Message: message}
}

// IsRejection reports whether err is a recoverable single-action rejection.
func IsRejection(err error) bool {
	var gameErr *GameError
	return errors.As(err, &gameErr)
}
