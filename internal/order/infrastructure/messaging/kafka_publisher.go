// Package messaging 提供订单领域事件的 Kafka 发布实现。
package messaging

import (
	"context"
	"strconv"

	"github.com/wyfcoding/ecommerce/internal/order/domain"
	"github.com/wyfcoding/ecommerce/pkg/mq"
)

// KafkaEventPublisher 将订单事件写入 Kafka。
// 以 order_id 为 key，保证同一订单的事件进入同一分区。
type KafkaEventPublisher struct {
	producer *mq.KafkaProducer
	topic    string
}

// NewKafkaEventPublisher 创建 Kafka 事件发布器
func NewKafkaEventPublisher(producer *mq.KafkaProducer, topic string) domain.EventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) PublishOrderCreated(ctx context.Context, event *domain.OrderCreatedEvent) error {
	key := strconv.FormatUint(uint64(event.OrderID), 10)
	return p.producer.SendMessage(ctx, p.topic, key, event)
}
