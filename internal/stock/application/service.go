package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/ecommerce/internal/stock/domain"
)

type StockService struct {
	repo domain.StockRepository
}

func NewStockService(repo domain.StockRepository) *StockService {
	return &StockService{repo: repo}
}

func (s *StockService) ListStocks(ctx context.Context) ([]*domain.Stock, error) {
	return s.repo.List(ctx)
}

func (s *StockService) GetStock(ctx context.Context, id uint) (*domain.Stock, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *StockService) CreateStock(ctx context.Context, productID uint, location string, quantity int) (*domain.Stock, error) {
	stock := &domain.Stock{ProductID: productID, Location: location, Quantity: quantity}
	if err := s.repo.Create(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

func (s *StockService) UpdateStock(ctx context.Context, id uint, productID uint, location string, quantity int) (*domain.Stock, error) {
	stock, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, fmt.Errorf("stock %d: %w", id, domain.ErrStockNotFound)
	}

	stock.ProductID = productID
	stock.Location = location
	stock.Quantity = quantity
	if err := s.repo.Save(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

func (s *StockService) DeleteStock(ctx context.Context, id uint) error {
	stock, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if stock == nil {
		return fmt.Errorf("stock %d: %w", id, domain.ErrStockNotFound)
	}
	return s.repo.Delete(ctx, id)
}

// ListByProduct 返回商品的全部库存记录；无记录时返回空切片，不视为错误。
func (s *StockService) ListByProduct(ctx context.Context, productID uint) ([]*domain.Stock, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *StockService) GetByProductAndLocation(ctx context.Context, productID uint, location string) (*domain.Stock, error) {
	return s.repo.GetByProductAndLocation(ctx, productID, location)
}

// UpdateQuantity 将 (productID, location) 对应记录的数量整体覆盖为 quantity。
// 这是绝对值写入而非增量；调用方自行计算新值。
func (s *StockService) UpdateQuantity(ctx context.Context, productID uint, location string, quantity int) error {
	stock, err := s.repo.GetByProductAndLocation(ctx, productID, location)
	if err != nil {
		return err
	}
	if stock == nil {
		return fmt.Errorf("product %d location %q: %w", productID, location, domain.ErrStockNotFound)
	}

	stock.Quantity = quantity
	return s.repo.Save(ctx, stock)
}
