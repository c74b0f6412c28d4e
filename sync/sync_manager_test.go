package sync

import (
	"LaCosa/services/game"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistMatchResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	syncManager := NewSyncManager(nil, db)

	m := game.NewMatch("partida", "", 4, 12)
	m.WinReason = game.ReasonThingDied
	m.Winners = []string{"ana", "diego"}

	mock.ExpectExec(`UPDATE game_matches`).
		WithArgs(game.ReasonThingDied, []byte(`["ana","diego"]`), "partida").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, syncManager.PersistMatchResult(m))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistMatchResultEmptyWinners(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	syncManager := NewSyncManager(nil, db)

	m := game.NewMatch("partida", "", 4, 12)
	m.WinReason = game.ReasonNoHumansAlive

	mock.ExpectExec(`UPDATE game_matches`).
		WithArgs(game.ReasonNoHumansAlive, []byte(`null`), "partida").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, syncManager.PersistMatchResult(m))
	assert.NoError(t, mock.ExpectationsWereMet())
}
