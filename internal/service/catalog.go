package service

import (
	"context"
	"errors"
	"fmt"
	"greenmart-api/internal/dto"
	"greenmart-api/internal/model"
	"greenmart-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogService interface {
	CreateProduct(ctx context.Context, req *dto.ProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, productID string, req *dto.ProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	ListProducts(ctx context.Context, filter *dto.ProductFilter) ([]*model.Product, error)

	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	RenameCategory(ctx context.Context, categoryID, name string) error
	DeleteCategory(ctx context.Context, categoryID string) error
	ListCategories(ctx context.Context) ([]*model.Category, error)

	CreateFAQ(ctx context.Context, req *dto.FAQRequest) (*model.FAQ, error)
	UpdateFAQ(ctx context.Context, faqID string, req *dto.FAQRequest) error
	DeleteFAQ(ctx context.Context, faqID string) error
	ListFAQs(ctx context.Context) ([]*model.FAQ, error)
}

type catalogServiceImpl struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	faqRepo      repository.FAQRepository
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	faqRepo repository.FAQRepository,
) CatalogService {
	return &catalogServiceImpl{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		faqRepo:      faqRepo,
	}
}

func validateProduct(req *dto.ProductRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if len(req.Images) == 0 {
		return fmt.Errorf("%w: product requires at least one image", ErrValidation)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if req.InStock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	if !model.ValidProductCategory(req.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, req.Category)
	}
	return nil
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, req *dto.ProductRequest) (*model.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	product := productFromRequest(uuid.NewString(), req)
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, productID string, req *dto.ProductRequest) (*model.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}

	product := productFromRequest(productID, req)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.FindByID(ctx, productID)
}

func productFromRequest(id string, req *dto.ProductRequest) *model.Product {
	images := make([]model.ProductImage, len(req.Images))
	for i, url := range req.Images {
		images[i] = model.ProductImage{ProductID: id, URL: url}
	}

	return &model.Product{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		Images:        images,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Category:      req.Category,
		InStock:       req.InStock,
		IsOrganic:     req.IsOrganic,
		IsFeatured:    req.IsFeatured,
		IsBestSeller:  req.IsBestSeller,
		IsNewArrival:  req.IsNewArrival,
	}
}

func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, productID string) error {
	return s.productRepo.Delete(ctx, productID)
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}

	return product, nil
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, filter *dto.ProductFilter) ([]*model.Product, error) {
	return s.productRepo.List(ctx, filter)
}

func (s *catalogServiceImpl) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}

	if _, err := s.categoryRepo.FindByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: category %q already exists", ErrConflict, name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &model.Category{
		ID:   uuid.NewString(),
		Name: name,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *catalogServiceImpl) RenameCategory(ctx context.Context, categoryID, name string) error {
	if name == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}

	err := s.categoryRepo.Rename(ctx, categoryID, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: category", ErrNotFound)
	}
	return err
}

func (s *catalogServiceImpl) DeleteCategory(ctx context.Context, categoryID string) error {
	return s.categoryRepo.Delete(ctx, categoryID)
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogServiceImpl) CreateFAQ(ctx context.Context, req *dto.FAQRequest) (*model.FAQ, error) {
	if req.Question == "" || req.Answer == "" {
		return nil, fmt.Errorf("%w: question and answer are required", ErrValidation)
	}

	faq := &model.FAQ{
		ID:       uuid.NewString(),
		Question: req.Question,
		Answer:   req.Answer,
	}
	if err := s.faqRepo.Create(ctx, faq); err != nil {
		return nil, err
	}

	return faq, nil
}

func (s *catalogServiceImpl) UpdateFAQ(ctx context.Context, faqID string, req *dto.FAQRequest) error {
	if req.Question == "" || req.Answer == "" {
		return fmt.Errorf("%w: question and answer are required", ErrValidation)
	}

	err := s.faqRepo.Update(ctx, faqID, req.Question, req.Answer)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: faq", ErrNotFound)
	}
	return err
}

func (s *catalogServiceImpl) DeleteFAQ(ctx context.Context, faqID string) error {
	return s.faqRepo.Delete(ctx, faqID)
}

func (s *catalogServiceImpl) ListFAQs(ctx context.Context) ([]*model.FAQ, error) {
	return s.faqRepo.List(ctx)
}
