package models

import (
	"gorm.io/gorm"
)

const (
	RoleCandidate   = "candidate"
	RoleInterviewer = "interviewer"
)

// User represents a registered user in the system.
type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	Name         string `json:"name"`
	Role         string `gorm:"default:candidate" json:"role"`
	PasswordHash string `gorm:"not null" json:"-"`
}
