package game

import (
	"sync"
	"time"
)

// GameState is the phase of the match state machine. Every inbound action
// is validated against the current phase before mutating anything.
type GameState string

const (
	StateLobby         GameState = "LOBBY"
	StateDrawCard      GameState = "DRAW_CARD"
	StatePlayTurn      GameState = "PLAY_TURN"
	StatePanic         GameState = "PANIC"
	StateDiscard       GameState = "DISCARD"
	StateExchange      GameState = "EXCHANGE"
	StateWaitExchange  GameState = "WAIT_EXCHANGE"
	StateWaitDefense   GameState = "WAIT_DEFENSE"
	StateVueltaYVuelta GameState = "VUELTA_Y_VUELTA"
	StateRevelaciones  GameState = "REVELACIONES"
	StateFinished      GameState = "FINISHED"
)

// Role of a player, assigned once when the match starts.
type Role string

const (
	RoleHuman    Role = "humano"
	RoleInfected Role = "infectado"
	RoleTheThing Role = "la_cosa"
)

// Player is a seat in the ring. Position is dense 0..N-1, assigned at
// match start and stable afterwards even when the player dies.
type Player struct {
	Name       string `json:"name"`
	IsHost     bool   `json:"is_host"`
	Position   int    `json:"position"`
	Role       Role   `json:"role"`
	IsAlive    bool   `json:"is_alive"`
	Quarantine int    `json:"quarantine"` // rounds-remaining counter, 0 means free
	Hand       []Card `json:"hand"`
}

// InQuarantine reports whether the quarantine counter is still running.
func (p *Player) InQuarantine() bool { return p.Quarantine > 0 }

// HasCard reports whether the player holds the given card instance.
func (p *Player) HasCard(cardID int) (Card, bool) {
	for _, c := range p.Hand {
		if c.ID == cardID {
			return c, true
		}
	}
	return Card{}, false
}

// CountByName returns how many copies of a card name the player holds.
func (p *Player) CountByName(name string) int {
	n := 0
	for _, c := range p.Hand {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Match is the shared per-match aggregate. All mutations happen through
// the state machine while holding mu; handlers never touch fields from
// outside the critical section.
type Match struct {
	mu sync.Mutex

	Name         string
	PasswordHash string
	MinPlayers   int
	MaxPlayers   int
	Initiated    bool

	State         GameState
	Clockwise     bool
	CurrentPlayer int // position of the turn owner
	Players       []*Player
	Obstacles     []bool // one bit per gap between consecutive positions
	Deck          *Deck

	// Transient sub-protocol fields, reset at end of turn.
	PlayedCard      *Card
	TurnPlayer      string // original turn owner while a defense window is open
	TargetPlayer    string
	ExchangeCard    *Card
	ExchangePlayer  string
	ExchangeRound   map[string]int // username -> card ID, vuelta y vuelta submissions
	TopCard         *Card          // override slot for the next draw
	LastInfected    string
	AmountDiscarded int
	Timestamp       time.Time // defense window start, for UI elapsed-time display

	// Terminal result, set once State becomes FINISHED.
	Winners   []string
	WinReason string
}

// NewMatch creates a not-yet-started match shell.
func NewMatch(name, passwordHash string, minPlayers, maxPlayers int) *Match {
	return &Match{
		Name:         name,
		PasswordHash: passwordHash,
		MinPlayers:   minPlayers,
		MaxPlayers:   maxPlayers,
		State:        StateLobby,
		Clockwise:    true,
	}
}

// Lock acquires the match-level critical section.
func (m *Match) Lock() { m.mu.Lock() }

// Unlock releases the match-level critical section.
func (m *Match) Unlock() { m.mu.Unlock() }

// GetPlayer finds a player by name.
func (m *Match) GetPlayer(name string) (*Player, error) {
	for _, p := range m.Players {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, ErrPlayerNotInMatch
}

// PlayerAt returns the player seated at the given position.
func (m *Match) PlayerAt(position int) *Player {
	for _, p := range m.Players {
		if p.Position == position {
			return p
		}
	}
	return nil
}

// TurnOwner returns the player whose turn it is.
func (m *Match) TurnOwner() *Player {
	return m.PlayerAt(m.CurrentPlayer)
}

// LivingCount returns the number of players still alive.
func (m *Match) LivingCount() int {
	n := 0
	for _, p := range m.Players {
		if p.IsAlive {
			n++
		}
	}
	return n
}

// LivingHumans returns the names of every living Human.
func (m *Match) LivingHumans() []string {
	var names []string
	for _, p := range m.Players {
		if p.IsAlive && p.Role == RoleHuman {
			names = append(names, p.Name)
		}
	}
	return names
}

// TheThingPlayer returns the designated antagonist, dead or alive.
func (m *Match) TheThingPlayer() *Player {
	for _, p := range m.Players {
		if p.Role == RoleTheThing {
			return p
		}
	}
	return nil
}

// QuarantineLevel derives the tri-state quarantine value reported to the
// UI: 0 free, 1 one round-equivalent left, 2 more than one.
func (m *Match) QuarantineLevel(p *Player) int {
	if p.Quarantine <= 0 {
		return 0
	}
	if m.LivingCount() > 0 && p.Quarantine/m.LivingCount() > 1 {
		return 2
	}
	return 1
}

// QuarantinedPlayers reports the tri-state level per player name.
func (m *Match) QuarantinedPlayers() map[string]int {
	out := make(map[string]int)
	for _, p := range m.Players {
		out[p.Name] = m.QuarantineLevel(p)
	}
	return out
}

// resetTransient clears the per-round sub-protocol fields.
func (m *Match) resetTransient() {
	m.PlayedCard = nil
	m.TurnPlayer = ""
	m.TargetPlayer = ""
	m.ExchangeCard = nil
	m.ExchangePlayer = ""
	m.ExchangeRound = nil
	m.AmountDiscarded = 0
	m.Timestamp = time.Time{}
}

// MatchManager is the in-memory registry of live matches. The registry
// lock only protects the map itself; per-match mutation runs under each
// match's own mutex.
type MatchManager struct {
	mu      sync.RWMutex
	matches map[string]*Match
}

// NewMatchManager creates an empty registry.
func NewMatchManager() *MatchManager {
	return &MatchManager{matches: make(map[string]*Match)}
}

// Register adds a match to the registry. Names are unique.
func (mm *MatchManager) Register(m *Match) error {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if _, exists := mm.matches[m.Name]; exists {
		return NewGameRule("a match with that name already exists")
	}
	mm.matches[m.Name] = m
	return nil
}

// Get looks a match up by name.
func (mm *MatchManager) Get(name string) (*Match, error) {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	m, ok := mm.matches[name]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

// Remove deletes a match from the registry.
func (mm *MatchManager) Remove(name string) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	delete(mm.matches, name)
}

// Names lists the registered match names.
func (mm *MatchManager) Names() []string {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	names := make([]string, 0, len(mm.matches))
	for name := range mm.matches {
		names = append(names, name)
	}
	return names
}

// WithMatch runs fn inside the match's critical section. Every inbound
// action goes through here so read-validate-mutate sequences are atomic
// relative to other actions on the same match.
func (mm *MatchManager) WithMatch(name string, fn func(*Match) error) error {
	m, err := mm.Get(name)
	if err != nil {
		return err
	}
	m.Lock()
	defer m.Unlock()
	return fn(m)
}
