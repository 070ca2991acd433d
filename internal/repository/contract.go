package repository

import (
	"context"
	"time"

	"tienda-api/internal/domain"
)

type CatalogRepository interface {
	GetProducts(ctx context.Context) (data []domain.Product, err error)
	GetProductByID(ctx context.Context, id uint) (data domain.Product, err error)
	AddProduct(ctx context.Context, data *domain.Product) (err error)

	GetCategories(ctx context.Context) (data []domain.Category, err error)
	GetCategoriesByIDs(ctx context.Context, ids []uint) (data []domain.Category, err error)
	AddCategory(ctx context.Context, data *domain.Category) (err error)

	GetReviewsByProductID(ctx context.Context, productID uint) (data []domain.Review, err error)
	AddReview(ctx context.Context, data *domain.Review) (err error)
}

type OrderRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo OrderRepository) error) error

	AddOrder(ctx context.Context, data *domain.Order) (err error)
	GetOrders(ctx context.Context) (data []domain.Order, err error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (data domain.Order, err error)
	GetProductsByIDs(ctx context.Context, ids []uint) (data []domain.Product, err error)
	UpdateOrderStatus(ctx context.Context, id uint, status domain.OrderStatus) (err error)
	GetStalePaymentOrders(ctx context.Context, olderThan time.Time) (data []domain.Order, err error)
}
