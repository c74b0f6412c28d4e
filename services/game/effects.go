package game

import (
	game_constants "LaCosa/constants/game"
	"math/rand"

	"github.com/gin-gonic/gin"
)

// EffectFunc applies the side effect of a played card. defense is non-nil
// when the target answered the defense window with a counter card; each
// defense either cancels the effect outright or substitutes an alternate
// one. Effects run exactly once per trigger.
type EffectFunc func(m *Match, player, target *Player, defense *Card, n Notifier) error

// dispatchEffect runs the registered effect of a played card, if any.
func dispatchEffect(m *Match, card Card, player, target *Player, defense *Card, n Notifier) error {
	spec, ok := GetCardSpec(card.Name)
	if !ok || spec.Effect == nil {
		// Cards without effect only exist to trigger the exchange phase.
		return nil
	}
	return spec.Effect(m, player, target, defense, n)
}

func handNames(p *Player) []string {
	names := make([]string, 0, len(p.Hand))
	for _, c := range p.Hand {
		names = append(names, c.Name)
	}
	return names
}

func effectLanzallamas(m *Match, player, target *Player, defense *Card, n Notifier) error {
	if defense != nil && defense.Name == NadaDeBarbacoas {
		n.Broadcast(m.Name, EventAttackDefended, gin.H{
			"player":  target.Name,
			"against": player.Name,
			"card":    NadaDeBarbacoas,
		})
		return nil
	}
	target.IsAlive = false
	target.Quarantine = 0
	m.DiscardWholeHand(target)
	n.Broadcast(m.Name, EventPlayerDied, gin.H{
		"player": target.Name,
		"killer": player.Name,
	})
	if target.Role == RoleTheThing {
		return m.finish(ReasonThingDied, n)
	}
	return nil
}

func effectAnalisis(m *Match, player, target *Player, _ *Card, n Notifier) error {
	n.SendToPlayer(player.Name, EventHandRevealed, gin.H{
		"player": target.Name,
		"hand":   handNames(target),
	})
	n.Broadcast(m.Name, EventCardPlayed, gin.H{
		"player": player.Name,
		"card":   Analisis,
		"target": target.Name,
	})
	return nil
}

func effectHacha(m *Match, player, target *Player, _ *Card, n Notifier) error {
	if target.InQuarantine() {
		target.Quarantine = 0
		n.Broadcast(m.Name, EventObstaclesClear, gin.H{
			"player":  player.Name,
			"cleared": "cuarentena",
			"target":  target.Name,
		})
		return nil
	}
	m.RemoveBarredDoorBetween(player, target)
	n.Broadcast(m.Name, EventObstaclesClear, gin.H{
		"player":  player.Name,
		"cleared": "puerta",
		"target":  target.Name,
	})
	return nil
}

func effectSospecha(m *Match, player, target *Player, _ *Card, n Notifier) error {
	if len(target.Hand) > 0 {
		card := target.Hand[rand.Intn(len(target.Hand))]
		n.SendToPlayer(player.Name, EventCardRevealed, gin.H{
			"player": target.Name,
			"card":   card.Name,
		})
	}
	n.Broadcast(m.Name, EventCardPlayed, gin.H{
		"player": player.Name,
		"card":   Sospecha,
		"target": target.Name,
	})
	return nil
}

func effectWhisky(m *Match, player, _ *Player, _ *Card, n Notifier) error {
	n.Broadcast(m.Name, EventHandRevealed, gin.H{
		"player": player.Name,
		"hand":   handNames(player),
	})
	return nil
}

// effectSwapPositions backs Cambio de lugar, ¡Más vale que corras!,
// ¡Sal de aquí! and Uno, dos... — the targeting differences live in the
// capability table, the effect is the same seat swap.
func effectSwapPositions(m *Match, player, target *Player, defense *Card, n Notifier) error {
	if defense != nil && defense.Name == AquiEstoyBien {
		n.Broadcast(m.Name, EventAttackDefended, gin.H{
			"player":  target.Name,
			"against": player.Name,
			"card":    AquiEstoyBien,
		})
		return nil
	}
	m.SwapPositions(player, target)
	n.Broadcast(m.Name, EventPositionsSwap, gin.H{
		"player": player.Name,
		"target": target.Name,
	})
	return nil
}

func effectReverseDirection(m *Match, player, _ *Player, _ *Card, n Notifier) error {
	m.Clockwise = !m.Clockwise
	n.Broadcast(m.Name, EventDirectionChange, gin.H{
		"player":    player.Name,
		"clockwise": m.Clockwise,
	})
	return nil
}

// Seducción has no immediate board effect; the state machine opens a
// free-target exchange after it resolves.
func effectSeduccion(m *Match, player, target *Player, _ *Card, n Notifier) error {
	n.Broadcast(m.Name, EventCardPlayed, gin.H{
		"player": player.Name,
		"card":   Seduccion,
		"target": target.Name,
	})
	return nil
}

func effectPuertaAtrancada(m *Match, player, target *Player, _ *Card, n Notifier) error {
	m.SetBarredDoorBetween(player, target)
	n.Broadcast(m.Name, EventDoorPlaced, gin.H{
		"player": player.Name,
		"target": target.Name,
	})
	return nil
}

func effectCuarentena(m *Match, player, target *Player, _ *Card, n Notifier) error {
	target.Quarantine = game_constants.QuarantineRoundMultiplier * m.LivingCount()
	n.Broadcast(m.Name, EventQuarantine, gin.H{
		"player": player.Name,
		"target": target.Name,
		"rounds": m.QuarantineLevel(target),
	})
	return nil
}

func effectVueltaYVuelta(m *Match, player, _ *Player, _ *Card, n Notifier) error {
	m.State = StateVueltaYVuelta
	m.ExchangeRound = make(map[string]int)
	n.Broadcast(m.Name, EventVueltaYVuelta, gin.H{
		"player":    player.Name,
		"clockwise": m.Clockwise,
	})
	return nil
}

func effectCuerdasPodridas(m *Match, player, _ *Player, _ *Card, n Notifier) error {
	m.ClearAllQuarantines()
	n.Broadcast(m.Name, EventObstaclesClear, gin.H{
		"player":  player.Name,
		"cleared": "cuarentenas",
	})
	return nil
}

func effectTresCuatro(m *Match, player, _ *Player, _ *Card, n Notifier) error {
	m.ClearAllDoors()
	n.Broadcast(m.Name, EventObstaclesClear, gin.H{
		"player":  player.Name,
		"cleared": "puertas",
	})
	return nil
}

func effectEsAquiLaFiesta(m *Match, player, _ *Player, _ *Card, n Notifier) error {
	m.ClearAllDoors()
	m.ClearAllQuarantines()
	n.Broadcast(m.Name, EventObstaclesClear, gin.H{
		"player":  player.Name,
		"cleared": "todo",
	})
	return nil
}

// Olvidadizo parks the match in DISCARD until the player has dropped
// three cards; the replacement draws happen when the counter fills up.
func effectOlvidadizo(m *Match, player, _ *Player, _ *Card, n Notifier) error {
	m.State = StateDiscard
	m.AmountDiscarded = 0
	n.Broadcast(m.Name, EventCardPlayed, gin.H{
		"player": player.Name,
		"card":   Olvidadizo,
	})
	return nil
}

func effectRevelaciones(m *Match, player, _ *Player, _ *Card, n Notifier) error {
	m.State = StateRevelaciones
	n.Broadcast(m.Name, EventRevealTurn, gin.H{
		"player":  player.Name,
		"starter": player.Name,
	})
	return nil
}

func effectQueQuedeEntreNosotros(m *Match, player, target *Player, _ *Card, n Notifier) error {
	n.SendToPlayer(target.Name, EventHandRevealed, gin.H{
		"player": player.Name,
		"hand":   handNames(player),
	})
	n.Broadcast(m.Name, EventCardPlayed, gin.H{
		"player": player.Name,
		"card":   QueQuedeEntreNosotros,
		"target": target.Name,
	})
	return nil
}

// Cita a ciegas: the player swaps one card with the top of the deck. The
// incoming card is reserved in the override slot before the player chooses
// what to drop, so the swap partner is fixed the moment the card resolves.
func effectCitaACiegas(m *Match, player, _ *Player, _ *Card, n Notifier) error {
	card, err := m.takeNonPanic()
	if err != nil {
		return err
	}
	m.SetTopCard(card)
	m.State = StateDiscard
	m.AmountDiscarded = 0
	n.Broadcast(m.Name, EventCardPlayed, gin.H{
		"player": player.Name,
		"card":   CitaACiegas,
	})
	return nil
}

func effectUps(m *Match, player, _ *Player, _ *Card, n Notifier) error {
	n.Broadcast(m.Name, EventHandRevealed, gin.H{
		"player": player.Name,
		"hand":   handNames(player),
	})
	return nil
}
