package service

import (
	"context"
	"io"

	"tienda-api/internal/dto"
)

type CatalogService interface {
	GetProducts(ctx context.Context) (data []dto.ProductResponse, err error)
	AddProduct(ctx context.Context, req dto.ProductRequest) (resp dto.ProductResponse, err error)

	GetCategories(ctx context.Context) (data []dto.CategoryResponse, err error)
	AddCategory(ctx context.Context, req dto.CategoryRequest) (resp dto.CategoryResponse, err error)

	GetReviews(ctx context.Context, productID uint) (data []dto.ReviewResponse, err error)
	AddReview(ctx context.Context, productID uint, req dto.ReviewRequest) (resp dto.ReviewResponse, err error)

	SaveUpload(filename string, src io.Reader) (resp dto.UploadResponse, err error)
}

type OrderService interface {
	AddOrder(ctx context.Context, req dto.OrderRequest) (resp dto.OrderResponse, err error)
	GetOrders(ctx context.Context) (data []dto.OrderResponse, err error)

	CreateCheckoutSession(ctx context.Context, req dto.PaymentRequest) (resp dto.PaymentResponse, err error)
	HandlePaymentEvent(ctx context.Context, payload []byte, signature string) (err error)

	ExpireStalePayments()
}

// PaymentGateway is the hosted-checkout provider seam.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req dto.PaymentRequest) (sessionID string, err error)
	ParseEvent(payload []byte, signature string) (event dto.PaymentEvent, err error)
}

// Mailer sends one transactional message per call.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// EventPublisher emits best-effort domain events to the broker.
type EventPublisher interface {
	Publish(eventType string, key string, data interface{}) error
}
