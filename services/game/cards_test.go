package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countByName(cards []Card) map[string]int {
	out := make(map[string]int)
	for _, c := range cards {
		out[c.Name]++
	}
	return out
}

func TestBuildDeckHasExactlyOneLaCosa(t *testing.T) {
	for players := 4; players <= 12; players++ {
		deck := BuildDeck(players)
		assert.Equal(t, 1, countByName(deck)[LaCosa], "players=%d", players)
	}
}

func TestBuildDeckRespectsCopyThresholds(t *testing.T) {
	four := countByName(BuildDeck(4))
	assert.Equal(t, 7, four[Infectado])
	assert.Equal(t, 2, four[Lanzallamas])
	assert.Equal(t, 0, four[Analisis], "Análisis copies need 5 players")
	assert.Equal(t, 0, four[VueltaYVuelta])
	assert.Equal(t, 0, four[Ups])

	ten := countByName(BuildDeck(10))
	assert.Equal(t, 18, ten[Infectado])
	assert.Equal(t, 5, ten[Lanzallamas])
	assert.Equal(t, 1, ten[Ups])
	assert.Equal(t, 2, ten[VueltaYVuelta])
}

func TestBuildDeckGrowsMonotonically(t *testing.T) {
	prev := len(BuildDeck(4))
	for players := 5; players <= 12; players++ {
		cur := len(BuildDeck(players))
		assert.GreaterOrEqual(t, cur, prev, "deck size never shrinks as the table grows")
		prev = cur
	}
}

func TestBuildDeckIDsAreDenseAndUnique(t *testing.T) {
	deck := BuildDeck(12)
	seen := make(map[int]bool, len(deck))
	for _, c := range deck {
		assert.False(t, seen[c.ID], "duplicate id %d", c.ID)
		assert.GreaterOrEqual(t, c.ID, 0)
		assert.Less(t, c.ID, len(deck))
		seen[c.ID] = true
	}
}

func TestEveryCatalogEntryHasASpec(t *testing.T) {
	for _, entry := range catalog {
		spec, ok := GetCardSpec(entry.name)
		require.True(t, ok, "card %q has no registered spec", entry.name)
		assert.NotEmpty(t, spec.Type, "card %q has no type", entry.name)
	}
}

func TestDefenseCardsCarryNoEffect(t *testing.T) {
	for name, spec := range cardSpecs {
		if spec.Type != TypeDefense {
			continue
		}
		assert.Nil(t, spec.Effect, "defense %q must not resolve proactively", name)
		assert.False(t, spec.RequiresTarget, "defense %q must not take a target", name)
	}
}

func TestDefensibleSpecs(t *testing.T) {
	flame, _ := GetCardSpec(Lanzallamas)
	assert.True(t, flame.Defensible())
	assert.True(t, flame.CanBeDefendedWith(NadaDeBarbacoas))
	assert.False(t, flame.CanBeDefendedWith(AquiEstoyBien))

	swap, _ := GetCardSpec(CambioDeLugar)
	assert.True(t, swap.CanBeDefendedWith(AquiEstoyBien))

	whisky, _ := GetCardSpec(Whisky)
	assert.False(t, whisky.Defensible())
}

func TestPanicFlagFollowsType(t *testing.T) {
	assert.True(t, Card{Name: Ups, Type: TypePanic}.IsPanic())
	assert.False(t, Card{Name: Whisky, Type: TypeAction}.IsPanic())
}
