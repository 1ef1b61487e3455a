package models

import "time"

type DiffRun struct {
	ID             uint      `gorm:"primaryKey"`
	LocaleA        string    `gorm:"not null"`
	LocaleB        string    `gorm:"not null"`
	KeysA          int       `gorm:"not null;default:0"`
	KeysB          int       `gorm:"not null;default:0"`
	OnlyInA        []string  `gorm:"serializer:json"`
	OnlyInB        []string  `gorm:"serializer:json"`
	IgnorePatterns []string  `gorm:"serializer:json"`
	CreatedAt      time.Time `gorm:"not null"`
}
