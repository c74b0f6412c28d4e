package utils

import (
	"fmt"

	models "LaCosa/models/postgres"

	"gorm.io/gorm"
)

// UserExists reports whether a registered account with that username exists.
func UserExists(db *gorm.DB, username string) error {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	return err
}

// CheckMatchExists returns the persistent record of a match.
func CheckMatchExists(db *gorm.DB, matchName string) (*models.GameMatch, error) {
	var match models.GameMatch
	result := db.Where("name = ?", matchName).First(&match)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("match not found")
		}
		return nil, result.Error
	}
	return &match, nil
}

// MarkMatchStarted flips the has_started flag of a match record.
func MarkMatchStarted(db *gorm.DB, matchName string) error {
	return db.Model(&models.GameMatch{}).
		Where("name = ?", matchName).
		Update("has_started", true).Error
}

// SaveMatchPlayer upserts one seat row of a started match.
func SaveMatchPlayer(db *gorm.DB, matchName, username string, position int, isHost bool) error {
	seat := models.MatchPlayer{
		MatchName: matchName,
		Username:  username,
		Position:  position,
		IsHost:    isHost,
	}
	return db.Save(&seat).Error
}

// IsPlayerInMatch reports whether a player holds a seat in a started match.
func IsPlayerInMatch(db *gorm.DB, matchName string, username string) (bool, error) {
	var count int64
	err := db.Model(&models.MatchPlayer{}).
		Where("match_name = ? AND username = ?", matchName, username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
