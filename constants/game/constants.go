package game_constants

const MinPlayersPerMatch = 4
const MaxPlayersPerMatch = 12
const InitialHandSize = 4 // NOTE: This is what frontend uses

// Quarantine lasts two full table rounds, measured in player turns.
const QuarantineRoundMultiplier = 2

// Olvidadizo forces this many discards before the replacement draws.
const OlvidadizoDiscards = 3
