package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
)

const productCacheTTL = 5 * time.Minute

// ProductCache 商品读缓存，可为 nil（禁用缓存）。
type ProductCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type ProductService struct {
	repo  domain.ProductRepository
	cache ProductCache
}

func NewProductService(repo domain.ProductRepository, cache ProductCache) *ProductService {
	return &ProductService{repo: repo, cache: cache}
}

func productCacheKey(id uint) string { return fmt.Sprintf("catalog:product:%d", id) }

func (s *ProductService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

// GetProduct 返回商品；不存在时返回 (nil, nil)。
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	if s.cache != nil {
		var cached domain.Product
		if hit, err := s.cache.GetJSON(ctx, productCacheKey(id), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil || product == nil {
		return product, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, productCacheKey(id), product, productCacheTTL); err != nil {
			logger.Warn(ctx, "Failed to cache product", "product_id", id, "error", err)
		}
	}
	return product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, name, description string, price decimal.Decimal, brandID, categoryID uint) (*domain.Product, error) {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("product %q: %w", name, domain.ErrProductExists)
	}

	product := &domain.Product{
		Name:        name,
		Description: description,
		Price:       price,
		BrandID:     brandID,
		CategoryID:  categoryID,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uint, name, description string, price decimal.Decimal, brandID, categoryID uint) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}

	product.Name = name
	product.Description = description
	product.Price = price
	product.BrandID = brandID
	product.CategoryID = categoryID
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// SearchProducts 按条件检索；空条件返回全部商品。
func (s *ProductService) SearchProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	if filter.IsEmpty() {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, filter)
}

func (s *ProductService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
		logger.Warn(ctx, "Failed to invalidate product cache", "product_id", id, "error", err)
	}
}
