package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreatedEvent 订单创建成功后发布的领域事件
type OrderCreatedEvent struct {
	OrderID     uint            `json:"order_id"`
	UserID      uint            `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	LineCount   int             `json:"line_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EventPublisher 领域事件发布接口。
// 事件在事务提交之后发布，发布失败不影响订单结果。
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event *OrderCreatedEvent) error
}
