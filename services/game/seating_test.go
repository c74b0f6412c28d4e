package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextAndPreviousAliveAreInverses(t *testing.T) {
	m := testMatch([]string{"ana", "bruno", "carla", "diego", "elena"}, 0)
	m.Players[2].IsAlive = false

	for _, clockwise := range []bool{true, false} {
		m.Clockwise = clockwise
		for _, p := range m.Players {
			if !p.IsAlive {
				continue
			}
			next := m.NextAlivePosition(p.Position)
			assert.Equal(t, p.Position, m.PreviousAlivePosition(next),
				"prev(next(%d)) should round-trip (clockwise=%v)", p.Position, clockwise)
		}
	}
}

func TestNextAliveSkipsDeadSeats(t *testing.T) {
	m := testMatch([]string{"ana", "bruno", "carla", "diego"}, 0)
	m.Players[1].IsAlive = false
	m.Players[2].IsAlive = false

	assert.Equal(t, 3, m.NextAlivePosition(0))
	assert.Equal(t, 0, m.NextAlivePosition(3))
}

func TestIsAdjacentIsSymmetric(t *testing.T) {
	m := testMatch([]string{"ana", "bruno", "carla", "diego", "elena"}, 0)
	m.Players[3].IsAlive = false

	for _, a := range m.Players {
		for _, b := range m.Players {
			assert.Equal(t, m.IsAdjacent(a, b), m.IsAdjacent(b, a),
				"adjacency must be symmetric for %s/%s", a.Name, b.Name)
		}
	}
	// With diego dead, carla and elena become neighbors.
	carla, _ := m.GetPlayer("carla")
	elena, _ := m.GetPlayer("elena")
	assert.True(t, m.IsAdjacent(carla, elena))

	// A dead seat is off the living ring in both directions.
	diego, _ := m.GetPlayer("diego")
	assert.False(t, m.IsAdjacent(diego, carla))
	assert.False(t, m.IsAdjacent(carla, diego))
	assert.False(t, m.IsAdjacent(diego, elena))
	assert.False(t, m.IsAdjacent(elena, diego))
}

func TestAdjacencyIgnoresObstacles(t *testing.T) {
	m := testMatch([]string{"ana", "bruno", "carla", "diego"}, 0)
	ana, _ := m.GetPlayer("ana")
	bruno, _ := m.GetPlayer("bruno")
	m.SetBarredDoorBetween(ana, bruno)

	// Doors block passage, not the adjacency relation.
	assert.True(t, m.IsAdjacent(ana, bruno))
	assert.True(t, m.ExistsObstacleBetween(ana, bruno))
}

func TestBarredDoorWraparoundSlot(t *testing.T) {
	m := testMatch([]string{"ana", "bruno", "carla", "diego"}, 0)
	ana, _ := m.GetPlayer("ana")
	diego, _ := m.GetPlayer("diego")

	m.SetBarredDoorBetween(ana, diego)
	require.True(t, m.Obstacles[3], "the (0, N-1) gap maps to the last ring slot")

	// Detected walking from either side.
	assert.True(t, m.ExistsObstacleBetween(ana, diego))
	assert.True(t, m.ExistsObstacleBetween(diego, ana))
	// The other gaps stay clear.
	bruno, _ := m.GetPlayer("bruno")
	assert.False(t, m.ExistsObstacleBetween(ana, bruno))
}

func TestObstacleBetweenSeesQuarantinedSeatInBetween(t *testing.T) {
	m := testMatch([]string{"ana", "bruno", "carla", "diego"}, 0)
	// bruno is dead, so ana and carla are living neighbors with bruno's
	// seat in between.
	m.Players[1].IsAlive = false
	m.Players[1].Quarantine = 0

	ana, _ := m.GetPlayer("ana")
	carla, _ := m.GetPlayer("carla")
	assert.False(t, m.ExistsObstacleBetween(ana, carla))

	// A door on the dead seat's gap still blocks the path.
	m.Obstacles[1] = true
	assert.True(t, m.ExistsObstacleBetween(ana, carla))
}

func TestExistsObstacleBetweenEndpointQuarantineDoesNotCount(t *testing.T) {
	m := testMatch([]string{"ana", "bruno", "carla", "diego"}, 0)
	ana, _ := m.GetPlayer("ana")
	bruno, _ := m.GetPlayer("bruno")
	bruno.Quarantine = 4

	// Quarantine only blocks when strictly between the two seats.
	assert.False(t, m.ExistsObstacleBetween(ana, bruno))
}

func TestIsThreeStepsFrom(t *testing.T) {
	m := testMatch([]string{"ana", "bruno", "carla", "diego", "elena", "fidel"}, 0)
	ana, _ := m.GetPlayer("ana")
	diego, _ := m.GetPlayer("diego")
	bruno, _ := m.GetPlayer("bruno")

	assert.True(t, m.IsThreeStepsFrom(ana, diego))
	assert.False(t, m.IsThreeStepsFrom(ana, bruno))
	assert.False(t, m.IsThreeStepsFrom(ana, ana))

	// Dead seats are skipped when counting steps.
	m.Players[1].IsAlive = false
	elena, _ := m.GetPlayer("elena")
	assert.True(t, m.IsThreeStepsFrom(ana, elena))
}

func TestSwapPositionsMovesTurnOwnership(t *testing.T) {
	m := testMatch([]string{"ana", "bruno", "carla", "diego"}, 0)
	ana, _ := m.GetPlayer("ana")
	carla, _ := m.GetPlayer("carla")
	m.CurrentPlayer = 0

	m.SwapPositions(ana, carla)

	assert.Equal(t, 2, ana.Position)
	assert.Equal(t, 0, carla.Position)
	assert.Equal(t, 2, m.CurrentPlayer, "turn follows the owner to the new seat")
}
