package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"tienda-api/internal/domain"
	"tienda-api/pkg/errs"
)

type CatalogRepositoryImpl struct {
	db *gorm.DB
}

func CreateCatalogRepository(db *gorm.DB) CatalogRepository {
	return &CatalogRepositoryImpl{db: db}
}

func (r *CatalogRepositoryImpl) GetProducts(ctx context.Context) (data []domain.Product, err error) {
	err = r.db.WithContext(ctx).
		Preload("Images").
		Preload("Sizes").
		Preload("Features").
		Preload("Categories").
		Order("id desc").
		Find(&data).Error
	if err != nil {
		log.Error().Err(err).Str("component", "GetProducts").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *CatalogRepositoryImpl) GetProductByID(ctx context.Context, id uint) (data domain.Product, err error) {
	err = r.db.WithContext(ctx).First(&data, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return data, errs.ErrProductNotFound
		}
		log.Error().Err(err).Str("component", "GetProductByID").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *CatalogRepositoryImpl) AddProduct(ctx context.Context, data *domain.Product) (err error) {
	err = r.db.WithContext(ctx).Create(data).Error
	if err != nil {
		log.Error().Err(err).Str("component", "AddProduct").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

func (r *CatalogRepositoryImpl) GetCategories(ctx context.Context) (data []domain.Category, err error) {
	err = r.db.WithContext(ctx).Order("id desc").Find(&data).Error
	if err != nil {
		log.Error().Err(err).Str("component", "GetCategories").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *CatalogRepositoryImpl) GetCategoriesByIDs(ctx context.Context, ids []uint) (data []domain.Category, err error) {
	err = r.db.WithContext(ctx).Where("id IN ?", ids).Find(&data).Error
	if err != nil {
		log.Error().Err(err).Str("component", "GetCategoriesByIDs").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *CatalogRepositoryImpl) AddCategory(ctx context.Context, data *domain.Category) (err error) {
	err = r.db.WithContext(ctx).Create(data).Error
	if err != nil {
		log.Error().Err(err).Str("component", "AddCategory").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

func (r *CatalogRepositoryImpl) GetReviewsByProductID(ctx context.Context, productID uint) (data []domain.Review, err error) {
	err = r.db.WithContext(ctx).Where("product_id = ?", productID).Order("id desc").Find(&data).Error
	if err != nil {
		log.Error().Err(err).Str("component", "GetReviewsByProductID").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *CatalogRepositoryImpl) AddReview(ctx context.Context, data *domain.Review) (err error) {
	err = r.db.WithContext(ctx).Create(data).Error
	if err != nil {
		log.Error().Err(err).Str("component", "AddReview").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}
