package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tienda-api/internal/domain"
	"tienda-api/internal/dto"
	"tienda-api/internal/repository"
	"tienda-api/pkg/errs"
)

type CatalogServiceImpl struct {
	repo      repository.CatalogRepository
	uploadDir string
}

func CreateCatalogService(repo repository.CatalogRepository, uploadDir string) CatalogService {
	return &CatalogServiceImpl{repo: repo, uploadDir: uploadDir}
}

func (s *CatalogServiceImpl) GetProducts(ctx context.Context) (data []dto.ProductResponse, err error) {
	products, err := s.repo.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	data = make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		data = append(data, productResponse(p))
	}

	return data, nil
}

func (s *CatalogServiceImpl) AddProduct(ctx context.Context, req dto.ProductRequest) (resp dto.ProductResponse, err error) {
	if req.Name == "" || req.Price <= 0 {
		return resp, errs.ErrClient
	}

	categories, err := s.resolveCategories(ctx, req.Categories)
	if err != nil {
		return resp, err
	}

	product := domain.Product{
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		Description: req.Description,
		Stock:       req.Stock,
		Categories:  categories,
	}
	for _, url := range req.Images {
		product.Images = append(product.Images, domain.ProductImage{URL: url})
	}
	for _, label := range req.Sizes {
		product.Sizes = append(product.Sizes, domain.ProductSize{Label: label})
	}
	for _, desc := range req.Features {
		product.Features = append(product.Features, domain.ProductFeature{Description: desc})
	}

	if err := s.repo.AddProduct(ctx, &product); err != nil {
		return resp, err
	}

	return productResponse(product), nil
}

func (s *CatalogServiceImpl) resolveCategories(ctx context.Context, ids []uint) ([]domain.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}

	categories, err := s.repo.GetCategoriesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(unique) {
		return nil, errs.ErrCategoryNotFound
	}

	return categories, nil
}

func (s *CatalogServiceImpl) GetCategories(ctx context.Context) (data []dto.CategoryResponse, err error) {
	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	data = make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		data = append(data, categoryResponse(c))
	}

	return data, nil
}

func (s *CatalogServiceImpl) AddCategory(ctx context.Context, req dto.CategoryRequest) (resp dto.CategoryResponse, err error) {
	if req.Title == "" {
		return resp, errs.ErrClient
	}

	category := domain.Category{
		Title:      req.Title,
		Collection: req.Collection,
		ThumbSrc:   req.ThumbSrc,
	}

	if err := s.repo.AddCategory(ctx, &category); err != nil {
		return resp, err
	}

	return categoryResponse(category), nil
}

func (s *CatalogServiceImpl) GetReviews(ctx context.Context, productID uint) (data []dto.ReviewResponse, err error) {
	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.GetReviewsByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	data = make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		data = append(data, reviewResponse(r))
	}

	return data, nil
}

func (s *CatalogServiceImpl) AddReview(ctx context.Context, productID uint, req dto.ReviewRequest) (resp dto.ReviewResponse, err error) {
	if req.Name == "" || req.Rating < 1 || req.Rating > 5 {
		return resp, errs.ErrClient
	}

	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		return resp, err
	}

	review := domain.Review{
		ProductID: productID,
		Name:      req.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Avatar:    req.Avatar,
	}

	if err := s.repo.AddReview(ctx, &review); err != nil {
		return resp, err
	}

	return reviewResponse(review), nil
}

// SaveUpload stores the file under a generated name. The uuid fragment keeps
// two uploads landing in the same millisecond from colliding.
func (s *CatalogServiceImpl) SaveUpload(filename string, src io.Reader) (resp dto.UploadResponse, err error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		log.Error().Err(err).Str("component", "SaveUpload").Msg("")
		return resp, errs.ErrInternalServer
	}

	name := uploadFileName(filename)
	dst, err := os.Create(filepath.Join(s.uploadDir, name))
	if err != nil {
		log.Error().Err(err).Str("component", "SaveUpload").Msg("")
		return resp, errs.ErrInternalServer
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		log.Error().Err(err).Str("component", "SaveUpload").Msg("")
		return resp, errs.ErrInternalServer
	}

	return dto.UploadResponse{ImageURL: "/uploads/" + name}, nil
}

func uploadFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String()[:8], ext)
}

func productResponse(p domain.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Stock:       p.Stock,
		Images:      make([]string, 0, len(p.Images)),
		Sizes:       make([]string, 0, len(p.Sizes)),
		Features:    make([]string, 0, len(p.Features)),
		Categories:  make([]dto.CategoryResponse, 0, len(p.Categories)),
	}
	for _, img := range p.Images {
		resp.Images = append(resp.Images, img.URL)
	}
	for _, size := range p.Sizes {
		resp.Sizes = append(resp.Sizes, size.Label)
	}
	for _, feat := range p.Features {
		resp.Features = append(resp.Features, feat.Description)
	}
	for _, cat := range p.Categories {
		resp.Categories = append(resp.Categories, categoryResponse(cat))
	}

	return resp
}

func categoryResponse(c domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:         c.ID,
		Title:      c.Title,
		Collection: c.Collection,
		ThumbSrc:   c.ThumbSrc,
	}
}

func reviewResponse(r domain.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:      r.ID,
		Name:    r.Name,
		Rating:  r.Rating,
		Comment: r.Comment,
		Avatar:  r.Avatar,
	}
}
