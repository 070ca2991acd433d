package dto

import "time"

type OrderItem struct {
	ProductID uint `json:"productoId"`
	Quantity  int  `json:"cantidad"`
}

type OrderRequest struct {
	OrderNumber string      `json:"numeroOrden"`
	Items       []OrderItem `json:"productos"`
}

type OrderLineResponse struct {
	ProductID   uint    `json:"productoId"`
	ProductName string  `json:"nombre"`
	Price       float64 `json:"precio"`
	Quantity    int     `json:"cantidad"`
}

type OrderResponse struct {
	ID          uint                `json:"id"`
	OrderNumber string              `json:"numeroOrden"`
	Status      string              `json:"estado"`
	Lines       []OrderLineResponse `json:"productos"`
	CreatedAt   time.Time           `json:"creadoEn"`
}
