package domain

import "time"

type Review struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"index;not null"`
	Name      string `gorm:"not null"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"type:text"`
	Avatar    string
	CreatedAt time.Time
}
