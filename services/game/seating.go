package game

// Seating and adjacency math. Positions are raw seat numbers 0..N-1; the
// obstacle ring has one bit per gap, bit i covering the gap between
// positions i and i+1 (bit N-1 covers the wraparound gap N-1 / 0).

// nextAliveForced walks one seat at a time in the forced direction until a
// living player is found. The caller guarantees at least one living player
// other than the starting seat.
func (m *Match) nextAliveForced(from int, clockwise bool) int {
	n := len(m.Players)
	step := 1
	if !clockwise {
		step = n - 1 // -1 mod n
	}
	pos := from
	for {
		pos = (pos + step) % n
		if p := m.PlayerAt(pos); p != nil && p.IsAlive {
			return pos
		}
	}
}

// NextAlivePosition steps along the current turn direction, skipping dead
// seats, and returns the next living position.
func (m *Match) NextAlivePosition(from int) int {
	return m.nextAliveForced(from, m.Clockwise)
}

// PreviousAlivePosition is the inverse of NextAlivePosition.
func (m *Match) PreviousAlivePosition(from int) int {
	return m.nextAliveForced(from, !m.Clockwise)
}

// IsAdjacent reports whether b is a living-ring neighbor of a. Obstacles
// block passage, not the adjacency relation itself. Dead seats are not on
// the living ring, so they are adjacent to nobody.
func (m *Match) IsAdjacent(a, b *Player) bool {
	if !a.IsAlive || !b.IsAlive {
		return false
	}
	if a.Position == b.Position {
		return false
	}
	return m.nextAliveForced(a.Position, true) == b.Position ||
		m.nextAliveForced(a.Position, false) == b.Position
}

// obstacleIndex returns the ring bit covering the gap that starts at pos.
func (m *Match) obstacleIndex(pos int) int {
	return pos % len(m.Players)
}

// ExistsObstacleBetween reports whether a barred door or a quarantined
// player sits strictly between two adjacent seats, walking the shorter
// living-neighbor path seat by seat with the direction forced clockwise.
func (m *Match) ExistsObstacleBetween(a, b *Player) bool {
	if a.Position == b.Position {
		return false
	}
	start, end := a.Position, b.Position
	if m.nextAliveForced(a.Position, true) != b.Position {
		start, end = b.Position, a.Position
	}
	n := len(m.Players)
	for pos := start; pos != end; pos = (pos + 1) % n {
		if m.Obstacles[m.obstacleIndex(pos)] {
			return true
		}
		if pos != start {
			if p := m.PlayerAt(pos); p != nil && p.IsAlive && p.InQuarantine() {
				return true
			}
		}
	}
	return false
}

// SetBarredDoorBetween sets the ring bit at the gap between the two raw
// positions. The wraparound pair (0, N-1) maps to the last ring slot.
// No-op when both players share a position.
func (m *Match) SetBarredDoorBetween(a, b *Player) {
	if a.Position == b.Position {
		return
	}
	m.Obstacles[m.doorIndexBetween(a.Position, b.Position)] = true
}

// RemoveBarredDoorBetween clears the ring bit between the two positions.
func (m *Match) RemoveBarredDoorBetween(a, b *Player) {
	if a.Position == b.Position {
		return
	}
	m.Obstacles[m.doorIndexBetween(a.Position, b.Position)] = false
}

func (m *Match) doorIndexBetween(posA, posB int) int {
	n := len(m.Players)
	lo, hi := posA, posB
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == 0 && hi == n-1 {
		return n - 1
	}
	return lo
}

// IsThreeStepsFrom reports whether b is exactly three living steps away
// from a, in either direction. Never true for a == b.
func (m *Match) IsThreeStepsFrom(a, b *Player) bool {
	if a.Position == b.Position {
		return false
	}
	pos := a.Position
	for i := 0; i < 3; i++ {
		pos = m.nextAliveForced(pos, true)
	}
	if pos == b.Position {
		return true
	}
	pos = a.Position
	for i := 0; i < 3; i++ {
		pos = m.nextAliveForced(pos, false)
	}
	return pos == b.Position
}

// ClearAllDoors wipes the whole obstacle ring.
func (m *Match) ClearAllDoors() {
	for i := range m.Obstacles {
		m.Obstacles[i] = false
	}
}

// ClearAllQuarantines zeroes every quarantine counter.
func (m *Match) ClearAllQuarantines() {
	for _, p := range m.Players {
		p.Quarantine = 0
	}
}

// SwapPositions exchanges the seats of two players, moving any turn
// ownership marker with the seat owner that holds it.
func (m *Match) SwapPositions(a, b *Player) {
	ownerA := m.CurrentPlayer == a.Position
	ownerB := m.CurrentPlayer == b.Position
	a.Position, b.Position = b.Position, a.Position
	if ownerA {
		m.CurrentPlayer = a.Position
	} else if ownerB {
		m.CurrentPlayer = b.Position
	}
}
