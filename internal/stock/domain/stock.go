// Package domain 包含库存台账的领域模型。
// 一个商品可在多个库存位各有一条记录；(product, location) 组合视为唯一。
package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrStockNotFound 库存记录不存在
var ErrStockNotFound = errors.New("stock not found")

// Stock 库存记录
// 数量恒为非负；订单扣减由订单工作流计算出新的绝对值后整体覆盖。
type Stock struct {
	gorm.Model
	ProductID uint   `gorm:"column:product_id;index;not null" json:"product_id"`
	Location  string `gorm:"column:location;type:varchar(100);not null" json:"location"`
	Quantity  int    `gorm:"column:quantity;not null;default:0" json:"quantity"`
}

func (Stock) TableName() string { return "stocks" }

// StockRepository 库存仓储接口
type StockRepository interface {
	Create(ctx context.Context, stock *Stock) error
	Save(ctx context.Context, stock *Stock) error
	// GetByID 返回库存记录；不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id uint) (*Stock, error)
	List(ctx context.Context) ([]*Stock, error)
	// ListByProduct 返回商品的全部库存记录，按主键升序；无记录时返回空切片
	ListByProduct(ctx context.Context, productID uint) ([]*Stock, error)
	// ListByProductForUpdate 同 ListByProduct，但在事务内对返回行加行锁
	ListByProductForUpdate(ctx context.Context, productID uint) ([]*Stock, error)
	// GetByProductAndLocation 返回指定库存位的记录；不存在时返回 (nil, nil)
	GetByProductAndLocation(ctx context.Context, productID uint, location string) (*Stock, error)
	Delete(ctx context.Context, id uint) error
}
