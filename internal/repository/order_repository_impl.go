package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"tienda-api/internal/domain"
	"tienda-api/pkg/errs"
)

type OrderRepositoryImpl struct {
	db *gorm.DB
}

func CreateOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

func (r *OrderRepositoryImpl) AddOrder(ctx context.Context, data *domain.Order) (err error) {
	err = r.db.WithContext(ctx).Create(data).Error
	if err != nil {
		log.Error().Err(err).Str("component", "AddOrder").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

func (r *OrderRepositoryImpl) GetOrders(ctx context.Context) (data []domain.Order, err error) {
	err = r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.Product").
		Order("id desc").
		Find(&data).Error
	if err != nil {
		log.Error().Err(err).Str("component", "GetOrders").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *OrderRepositoryImpl) GetOrderByNumber(ctx context.Context, orderNumber string) (data domain.Order, err error) {
	err = r.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&data).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return data, errs.ErrNotFound
		}
		log.Error().Err(err).Str("component", "GetOrderByNumber").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *OrderRepositoryImpl) GetProductsByIDs(ctx context.Context, ids []uint) (data []domain.Product, err error) {
	err = r.db.WithContext(ctx).Where("id IN ?", ids).Find(&data).Error
	if err != nil {
		log.Error().Err(err).Str("component", "GetProductsByIDs").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *OrderRepositoryImpl) UpdateOrderStatus(ctx context.Context, id uint, status domain.OrderStatus) (err error) {
	err = r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Update("status", status).Error
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateOrderStatus").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

func (r *OrderRepositoryImpl) GetStalePaymentOrders(ctx context.Context, olderThan time.Time) (data []domain.Order, err error) {
	err = r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", domain.StatusPaymentPending, olderThan).
		Find(&data).Error
	if err != nil {
		log.Error().Err(err).Str("component", "GetStalePaymentOrders").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *OrderRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo OrderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &OrderRepositoryImpl{db: tx})
	})
}
