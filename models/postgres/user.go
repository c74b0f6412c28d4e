package postgres

import (
	"time"
)

/*
 * 'User' contains the blueprint definition of a registered player account.
 */
type User struct {
	Username     string    `gorm:"primaryKey;size:50;not null"`
	Email        string    `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	Icon         int       `gorm:"default:1"`
	MemberSince  time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
