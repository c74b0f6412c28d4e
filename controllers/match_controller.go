package controllers

import (
	game_constants "LaCosa/constants/game"
	"LaCosa/middleware"
	"LaCosa/services/game"
	"LaCosa/services/redis"
	"LaCosa/sync"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type MatchController struct {
	DB          *sql.DB
	RedisClient *redis.RedisClient
	SyncManager *sync.SyncManager
	Matches     *game.MatchManager
}

// CreateMatch godoc
// @Summary Create a new match lobby
// @Param match_name formData string true "Match name"
// @Param password formData string false "Password for private matches"
// @Param min_players formData int false "Minimum players (default 4)"
// @Param max_players formData int false "Maximum players (default 12)"
// @Success 201 {object} map[string]interface{}
// @Router /auth/matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	session := sessions.Default(c)
	host, _ := session.Get(middleware.UserKey).(string)

	matchName := strings.TrimSpace(c.PostForm("match_name"))
	if matchName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Match name can't be empty"})
		return
	}

	minPlayers, err := strconv.Atoi(c.DefaultPostForm("min_players", "4"))
	if err != nil || minPlayers < game_constants.MinPlayersPerMatch {
		minPlayers = game_constants.MinPlayersPerMatch
	}
	maxPlayers, err := strconv.Atoi(c.DefaultPostForm("max_players", "12"))
	if err != nil || maxPlayers > game_constants.MaxPlayersPerMatch {
		maxPlayers = game_constants.MaxPlayersPerMatch
	}
	if maxPlayers < minPlayers {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_players can't be below min_players"})
		return
	}

	passwordHash := ""
	if password := c.PostForm("password"); password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
			return
		}
		passwordHash = string(hash)
	}

	_, err = mc.DB.Exec(`
		INSERT INTO game_matches (name, host_username, password_hash, min_players, max_players, has_started)
		VALUES ($1, $2, $3, $4, $5, false)
	`, matchName, host, passwordHash, minPlayers, maxPlayers)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A match with that name already exists"})
		return
	}

	match := game.NewMatch(matchName, passwordHash, minPlayers, maxPlayers)
	if err := mc.Matches.Register(match); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"match_name":  matchName,
		"host":        host,
		"min_players": minPlayers,
		"max_players": maxPlayers,
		"private":     passwordHash != "",
	})
}

// GetMatchInfo godoc
// @Summary Information about a lobby that has not started yet
// @Param name path string true "Match name"
// @Success 200 {object} map[string]interface{}
// @Router /matches/{name} [get]
func (mc *MatchController) GetMatchInfo(c *gin.Context) {
	name := c.Param("name")

	var match_psql struct {
		Name         string `json:"match_name"`
		HostUsername string `json:"host_name"`
		MinPlayers   int    `json:"min_players"`
		MaxPlayers   int    `json:"max_players"`
		PasswordHash string `json:"-"`
	}

	err := mc.DB.QueryRow(`
		SELECT name, host_username, min_players, max_players, password_hash
		FROM game_matches
		WHERE name = $1 AND has_started = false
	`, name).Scan(
		&match_psql.Name, &match_psql.HostUsername, &match_psql.MinPlayers,
		&match_psql.MaxPlayers, &match_psql.PasswordHash,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying database: " + err.Error()})
		}
		return
	}

	// Seated players live in memory until the match starts.
	playerCount := 0
	seated := []string{}
	if live, err := mc.Matches.Get(name); err == nil {
		live.Lock()
		for _, p := range live.Players {
			seated = append(seated, p.Name)
		}
		playerCount = len(live.Players)
		live.Unlock()
	}

	c.JSON(http.StatusOK, gin.H{
		"match_name":   match_psql.Name,
		"host_name":    match_psql.HostUsername,
		"min_players":  match_psql.MinPlayers,
		"max_players":  match_psql.MaxPlayers,
		"private":      match_psql.PasswordHash != "",
		"player_count": playerCount,
		"players":      seated,
	})
}

// ListMatches godoc
// @Summary List lobbies waiting for players
// @Success 200 {object} map[string]interface{}
// @Router /matches [get]
func (mc *MatchController) ListMatches(c *gin.Context) {
	rows, err := mc.DB.Query(`
		SELECT name, host_username, min_players, max_players, password_hash
		FROM game_matches
		WHERE has_started = false
		ORDER BY created_at DESC
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying database: " + err.Error()})
		return
	}
	defer rows.Close()

	matches := []gin.H{}
	for rows.Next() {
		var name, host, passwordHash string
		var minPlayers, maxPlayers int
		if err := rows.Scan(&name, &host, &minPlayers, &maxPlayers, &passwordHash); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error scanning row: " + err.Error()})
			return
		}
		playerCount := 0
		if live, liveErr := mc.Matches.Get(name); liveErr == nil {
			live.Lock()
			playerCount = len(live.Players)
			live.Unlock()
		}
		matches = append(matches, gin.H{
			"match_name":   name,
			"host_name":    host,
			"min_players":  minPlayers,
			"max_players":  maxPlayers,
			"private":      passwordHash != "",
			"player_count": playerCount,
		})
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// DeleteMatch godoc
// @Summary Delete a lobby that has not started (host only)
// @Param name path string true "Match name"
// @Success 200 {object} map[string]string
// @Router /auth/matches/{name} [delete]
func (mc *MatchController) DeleteMatch(c *gin.Context) {
	session := sessions.Default(c)
	username, _ := session.Get(middleware.UserKey).(string)
	name := c.Param("name")

	var host string
	err := mc.DB.QueryRow(`
		SELECT host_username FROM game_matches
		WHERE name = $1 AND has_started = false
	`, name).Scan(&host)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying database: " + err.Error()})
		}
		return
	}
	if host != username {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the host can delete the match"})
		return
	}

	if _, err := mc.DB.Exec(`DELETE FROM game_matches WHERE name = $1`, name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting match: " + err.Error()})
		return
	}
	mc.Matches.Remove(name)
	if err := mc.RedisClient.CleanupMatchKeys(name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error cleaning match data: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Match deleted"})
}

// GetMatchResult godoc
// @Summary Result of a finished match
// @Param name path string true "Match name"
// @Success 200 {object} map[string]interface{}
// @Router /matches/{name}/result [get]
func (mc *MatchController) GetMatchResult(c *gin.Context) {
	name := c.Param("name")

	var winReason string
	var winners []byte
	err := mc.DB.QueryRow(`
		SELECT win_reason, winners
		FROM game_matches
		WHERE name = $1 AND win_reason <> ''
	`, name).Scan(&winReason, &winners)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "No result for that match"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying database: " + err.Error()})
		}
		return
	}

	var winnerNames []string
	if len(winners) > 0 {
		if err := json.Unmarshal(winners, &winnerNames); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Corrupt winners column"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"match_name": name,
		"win_reason": winReason,
		"winners":    winnerNames,
	})
}
