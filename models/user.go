package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the local user record owned by the streak service.
// Created idempotently at bootstrap; real profile data lives in the
// profile service, we only need a stable key and a placeholder name.
type User struct {
	UserID    string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	Username  string    `gorm:"index;not null" json:"username"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
