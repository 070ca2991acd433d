package domain

import "time"

type Product struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"not null"`
	Price       float64 `gorm:"not null"`
	Image       string
	Description string `gorm:"type:text"`
	Stock       int    `gorm:"not null;default:0"`
	Images      []ProductImage
	Sizes       []ProductSize
	Features    []ProductFeature
	Categories  []Category `gorm:"many2many:product_categories"`
	Reviews     []Review
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"index;not null"`
	URL       string `gorm:"not null"`
}

type ProductSize struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"index;not null"`
	Label     string `gorm:"not null"`
}

type ProductFeature struct {
	ID          uint   `gorm:"primaryKey"`
	ProductID   uint   `gorm:"index;not null"`
	Description string `gorm:"not null"`
}

type Category struct {
	ID         uint   `gorm:"primaryKey"`
	Title      string `gorm:"not null"`
	Collection string
	ThumbSrc   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
