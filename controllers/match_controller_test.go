package controllers

import (
	"LaCosa/services/game"
	"LaCosa/services/redis"
	"LaCosa/sync"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetMatchInfo(t *testing.T) {
	// Setup test environment
	gin.SetMode(gin.TestMode)
	db, mock, _ := sqlmock.New()
	defer db.Close()

	// Seat two players in the live registry
	matches := game.NewMatchManager()
	live := game.NewMatch("partida", "", 4, 12)
	live.AddPlayer("ana")
	live.AddPlayer("bruno")
	matches.Register(live)

	// Create controller with mocked dependencies
	matchController := &MatchController{
		DB:          db,
		RedisClient: &redis.RedisClient{},
		SyncManager: &sync.SyncManager{},
		Matches:     matches,
	}

	// Setup router
	router := gin.New()
	router.GET("/matches/:name", matchController.GetMatchInfo)

	fmt.Println("Request: GET /matches/partida")

	mock.ExpectQuery(`SELECT name, host_username, min_players, max_players, password_hash FROM game_matches WHERE name = \$1 AND has_started = false`).
		WithArgs("partida").
		WillReturnRows(sqlmock.NewRows([]string{"name", "host_username", "min_players", "max_players", "password_hash"}).
			AddRow("partida", "ana", 4, 12, ""))

	// Create HTTP request
	req, _ := http.NewRequest("GET", "/matches/partida", nil)
	w := httptest.NewRecorder()

	// Execute request
	router.ServeHTTP(w, req)

	// Verify response
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	fmt.Println("Response:", w.Body.String())

	assert.Equal(t, "partida", response["match_name"])
	assert.Equal(t, "ana", response["host_name"])
	assert.Equal(t, false, response["private"])
	assert.Equal(t, float64(2), response["player_count"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMatchInfoNotFound(t *testing.T) {
	// Setup test environment
	gin.SetMode(gin.TestMode)
	db, mock, _ := sqlmock.New()
	defer db.Close()

	matchController := &MatchController{
		DB:          db,
		RedisClient: &redis.RedisClient{},
		SyncManager: &sync.SyncManager{},
		Matches:     game.NewMatchManager(),
	}

	router := gin.New()
	router.GET("/matches/:name", matchController.GetMatchInfo)

	fmt.Println("Request: GET /matches/nonexistent")

	mock.ExpectQuery(`SELECT name, host_username, min_players, max_players, password_hash FROM game_matches WHERE name = \$1 AND has_started = false`).
		WithArgs("nonexistent").
		WillReturnError(sql.ErrNoRows)

	req, _ := http.NewRequest("GET", "/matches/nonexistent", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	fmt.Println("Response:", w.Body.String())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMatchResult(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock, _ := sqlmock.New()
	defer db.Close()

	matchController := &MatchController{
		DB:      db,
		Matches: game.NewMatchManager(),
	}

	router := gin.New()
	router.GET("/matches/:name/result", matchController.GetMatchResult)

	mock.ExpectQuery(`SELECT win_reason, winners FROM game_matches WHERE name = \$1 AND win_reason <> ''`).
		WithArgs("partida").
		WillReturnRows(sqlmock.NewRows([]string{"win_reason", "winners"}).
			AddRow("thing_died", []byte(`["ana","diego"]`)))

	req, _ := http.NewRequest("GET", "/matches/partida/result", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "thing_died", response["win_reason"])
	assert.Equal(t, []interface{}{"ana", "diego"}, response["winners"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMatches(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock, _ := sqlmock.New()
	defer db.Close()

	matchController := &MatchController{
		DB:      db,
		Matches: game.NewMatchManager(),
	}

	router := gin.New()
	router.GET("/matches", matchController.ListMatches)

	mock.ExpectQuery(`SELECT name, host_username, min_players, max_players, password_hash FROM game_matches WHERE has_started = false`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "host_username", "min_players", "max_players", "password_hash"}).
			AddRow("partida", "ana", 4, 12, "").
			AddRow("privada", "bruno", 4, 8, "$2a$10$hash"))

	req, _ := http.NewRequest("GET", "/matches", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	matches := response["matches"].([]interface{})
	assert.Len(t, matches, 2)
	second := matches[1].(map[string]interface{})
	assert.Equal(t, "privada", second["match_name"])
	assert.Equal(t, true, second["private"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
