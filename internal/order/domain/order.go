// Package domain 包含订单的领域模型。
// Order 是聚合根，独占其订单明细；订单与明细永远作为一个整体持久化。
package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus 订单状态
type OrderStatus string

const (
	// OrderStatusPending 已创建，等待后续处理
	OrderStatusPending OrderStatus = "PENDING"
)

// Order 订单实体（聚合根）
type Order struct {
	gorm.Model
	// 所属用户 ID
	UserID uint `gorm:"column:user_id;index;not null" json:"user_id"`
	// 下单时间
	OrderDate time.Time `gorm:"column:order_date;not null" json:"order_date"`
	// 订单总额，等于全部明细的 单价×数量 之和
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`
	// 订单状态
	Status OrderStatus `gorm:"column:status;type:varchar(20);index;not null" json:"status"`
	// 订单明细，随订单一并创建
	Details []OrderDetail `gorm:"foreignKey:OrderID" json:"details"`
}

func (Order) TableName() string { return "orders" }

// OrderDetail 订单明细
// Price 是下单时刻的商品单价快照，商品后续改价不影响历史明细。
type OrderDetail struct {
	gorm.Model
	OrderID   uint            `gorm:"column:order_id;index;not null" json:"order_id"`
	ProductID uint            `gorm:"column:product_id;index;not null" json:"product_id"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
}

func (OrderDetail) TableName() string { return "order_details" }

// NewOrder 创建待持久化的订单
func NewOrder(userID uint, totalAmount decimal.Decimal, details []OrderDetail) *Order {
	return &Order{
		UserID:      userID,
		OrderDate:   time.Now(),
		TotalAmount: totalAmount,
		Status:      OrderStatusPending,
		Details:     details,
	}
}

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// Save 持久化订单及其全部明细（先订单后明细，明细引用生成的订单 ID）
	Save(ctx context.Context, order *Order) error
	// GetByID 返回订单（含明细）；不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id uint) (*Order, error)
	// ListByUser 返回用户的全部订单（含明细），按存储顺序
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
}
