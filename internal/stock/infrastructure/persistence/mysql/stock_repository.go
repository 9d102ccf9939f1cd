// Package mysql 提供库存仓储接口的 GORM 实现。
package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wyfcoding/ecommerce/internal/stock/domain"
	"github.com/wyfcoding/ecommerce/pkg/db"
	"github.com/wyfcoding/ecommerce/pkg/logger"
)

type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository 创建库存仓储实例
func NewStockRepository(gdb *gorm.DB) domain.StockRepository {
	return &stockRepository{db: gdb}
}

func (r *stockRepository) Create(ctx context.Context, stock *domain.Stock) error {
	if err := db.FromContext(ctx, r.db).Create(stock).Error; err != nil {
		logger.Error(ctx, "stock_repository.create failed", "product_id", stock.ProductID, "error", err)
		return fmt.Errorf("failed to create stock: %w", err)
	}
	return nil
}

func (r *stockRepository) Save(ctx context.Context, stock *domain.Stock) error {
	if err := db.FromContext(ctx, r.db).Save(stock).Error; err != nil {
		logger.Error(ctx, "stock_repository.save failed", "stock_id", stock.ID, "error", err)
		return fmt.Errorf("failed to save stock: %w", err)
	}
	return nil
}

func (r *stockRepository) GetByID(ctx context.Context, id uint) (*domain.Stock, error) {
	var stock domain.Stock
	err := db.FromContext(ctx, r.db).First(&stock, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}
	return &stock, nil
}

func (r *stockRepository) List(ctx context.Context) ([]*domain.Stock, error) {
	var stocks []*domain.Stock
	if err := db.FromContext(ctx, r.db).Find(&stocks).Error; err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}
	return stocks, nil
}

func (r *stockRepository) ListByProduct(ctx context.Context, productID uint) ([]*domain.Stock, error) {
	var stocks []*domain.Stock
	err := db.FromContext(ctx, r.db).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&stocks).Error
	if err != nil {
		logger.Error(ctx, "stock_repository.list_by_product failed", "product_id", productID, "error", err)
		return nil, fmt.Errorf("failed to list stocks by product: %w", err)
	}
	return stocks, nil
}

// ListByProductForUpdate 对返回行加 FOR UPDATE 行锁，
// 使同一商品的并发下单在数据层串行化，避免读-改-写丢失更新。
func (r *stockRepository) ListByProductForUpdate(ctx context.Context, productID uint) ([]*domain.Stock, error) {
	var stocks []*domain.Stock
	err := db.FromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&stocks).Error
	if err != nil {
		logger.Error(ctx, "stock_repository.list_by_product_for_update failed", "product_id", productID, "error", err)
		return nil, fmt.Errorf("failed to lock stocks by product: %w", err)
	}
	return stocks, nil
}

func (r *stockRepository) GetByProductAndLocation(ctx context.Context, productID uint, location string) (*domain.Stock, error) {
	var stock domain.Stock
	err := db.FromContext(ctx, r.db).
		Where("product_id = ? AND location = ?", productID, location).
		First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock by product and location: %w", err)
	}
	return &stock, nil
}

func (r *stockRepository) Delete(ctx context.Context, id uint) error {
	if err := db.FromContext(ctx, r.db).Delete(&domain.Stock{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete stock: %w", err)
	}
	return nil
}
