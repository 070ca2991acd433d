package domain

import "time"

type OrderStatus string

// Order payment lifecycle. An order that never enters checkout stays in
// StatusCreated; the expiry sweep only touches StatusPaymentPending.
const (
	StatusCreated        OrderStatus = "created"
	StatusPaymentPending OrderStatus = "payment_pending"
	StatusPaid           OrderStatus = "paid"
	StatusExpired        OrderStatus = "expired"
)

type Order struct {
	ID          uint        `gorm:"primaryKey"`
	OrderNumber string      `gorm:"index;not null"`
	Status      OrderStatus `gorm:"type:varchar(32);not null;default:'created'"`
	Lines       []OrderLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderLine struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`
	Quantity  int  `gorm:"not null"`
	Product   Product
}
