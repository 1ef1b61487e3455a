package models

import "time"

const (
	FileActionCreate = "create"
	FileActionUpdate = "update"
	FileActionPatch  = "patch"
	FileActionDelete = "delete"
)

type TranslationFileChange struct {
	ID        uint      `gorm:"primaryKey"`
	FileName  string    `gorm:"not null;index"`
	Action    string    `gorm:"not null"`
	Actor     string    `gorm:"not null;default:system"`
	CreatedAt time.Time `gorm:"not null"`
}
