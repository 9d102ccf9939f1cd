package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = errors.New("order not found")
	// ErrEmptyOrder 订单不含任何明细行
	ErrEmptyOrder = errors.New("order must contain at least one line")
	// ErrInvalidQuantity 明细行数量必须为正
	ErrInvalidQuantity = errors.New("order line quantity must be positive")
)

// InsufficientStockError 全部库存位的总量不足以满足某一明细行。
// Product 为不足的商品名，用于向客户端报告。
type InsufficientStockError struct {
	Product string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product: %s", e.Product)
}
