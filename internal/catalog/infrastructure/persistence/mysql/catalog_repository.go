// Package mysql 提供商品目录仓储接口的 GORM 实现。
package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
	"github.com/wyfcoding/ecommerce/pkg/db"
	"github.com/wyfcoding/ecommerce/pkg/logger"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储实例
func NewProductRepository(gdb *gorm.DB) domain.ProductRepository {
	return &productRepository{db: gdb}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := db.FromContext(ctx, r.db).Create(product).Error; err != nil {
		logger.Error(ctx, "product_repository.create failed", "name", product.Name, "error", err)
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	if err := db.FromContext(ctx, r.db).Save(product).Error; err != nil {
		logger.Error(ctx, "product_repository.save failed", "product_id", product.ID, "error", err)
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := db.FromContext(ctx, r.db).
		Preload("Brand").Preload("Category").
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.Error(ctx, "product_repository.get failed", "product_id", id, "error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (r *productRepository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	var product domain.Product
	err := db.FromContext(ctx, r.db).Where("name = ?", name).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product by name: %w", err)
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	err := db.FromContext(ctx, r.db).
		Preload("Brand").Preload("Category").
		Find(&products).Error
	if err != nil {
		logger.Error(ctx, "product_repository.list failed", "error", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) Search(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	q := db.FromContext(ctx, r.db).
		Model(&domain.Product{}).
		Preload("Brand").Preload("Category")

	if filter.Name != "" {
		q = q.Where("LOWER(products.name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.CategoryName != "" {
		q = q.Joins("JOIN categories ON categories.id = products.category_id").
			Where("LOWER(categories.name) = ?", strings.ToLower(filter.CategoryName))
	}
	if filter.MinPrice != nil {
		q = q.Where("products.price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("products.price <= ?", filter.MaxPrice)
	}

	var products []*domain.Product
	if err := q.Find(&products).Error; err != nil {
		logger.Error(ctx, "product_repository.search failed", "error", err)
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	if err := db.FromContext(ctx, r.db).Delete(&domain.Product{}, id).Error; err != nil {
		logger.Error(ctx, "product_repository.delete failed", "product_id", id, "error", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

type brandRepository struct {
	db *gorm.DB
}

// NewBrandRepository 创建品牌仓储实例
func NewBrandRepository(gdb *gorm.DB) domain.BrandRepository {
	return &brandRepository{db: gdb}
}

func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	if err := db.FromContext(ctx, r.db).Create(brand).Error; err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

func (r *brandRepository) Save(ctx context.Context, brand *domain.Brand) error {
	if err := db.FromContext(ctx, r.db).Save(brand).Error; err != nil {
		return fmt.Errorf("failed to save brand: %w", err)
	}
	return nil
}

func (r *brandRepository) GetByID(ctx context.Context, id uint) (*domain.Brand, error) {
	var brand domain.Brand
	err := db.FromContext(ctx, r.db).First(&brand, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return &brand, nil
}

func (r *brandRepository) GetByName(ctx context.Context, name string) (*domain.Brand, error) {
	var brand domain.Brand
	err := db.FromContext(ctx, r.db).Where("name = ?", name).First(&brand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get brand by name: %w", err)
	}
	return &brand, nil
}

func (r *brandRepository) List(ctx context.Context) ([]*domain.Brand, error) {
	var brands []*domain.Brand
	if err := db.FromContext(ctx, r.db).Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

func (r *brandRepository) Delete(ctx context.Context, id uint) error {
	if err := db.FromContext(ctx, r.db).Delete(&domain.Brand{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	return nil
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储实例
func NewCategoryRepository(gdb *gorm.DB) domain.CategoryRepository {
	return &categoryRepository{db: gdb}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if err := db.FromContext(ctx, r.db).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) Save(ctx context.Context, category *domain.Category) error {
	if err := db.FromContext(ctx, r.db).Save(category).Error; err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*domain.Category, error) {
	var category domain.Category
	err := db.FromContext(ctx, r.db).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	err := db.FromContext(ctx, r.db).Where("name = ?", name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	if err := db.FromContext(ctx, r.db).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	if err := db.FromContext(ctx, r.db).Delete(&domain.Category{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
