package events

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"knowledgebase/global"
	"knowledgebase/models"
)

// DuplicateConsumer 消费 duplicate_article_warning 队列并落库。
// Persist 可注入，方便不依赖 broker/数据库的测试。
type DuplicateConsumer struct {
	Persist func(rec *models.DuplicateRecord) error
	Logger  *zap.SugaredLogger
}

func NewDuplicateConsumer() *DuplicateConsumer {
	return &DuplicateConsumer{
		Persist: func(rec *models.DuplicateRecord) error {
			return global.Db.Create(rec).Error
		},
		Logger: global.Logger,
	}
}

// Start 阻塞消费，直到 channel 关闭才返回
func (c *DuplicateConsumer) Start() error {
	ch, err := Channel()
	if err != nil {
		return err
	}

	// prefetch=1，靠 ack 做背压
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := ch.Consume(QueueDuplicateWarning, "kb-worker-"+uuid.NewString(), false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", QueueDuplicateWarning, err)
	}

	c.Logger.Infof("Listening for %s events...", QueueDuplicateWarning)

	for d := range deliveries {
		c.Handle(d)
	}
	return errors.New("delivery channel closed")
}

// Handle 处理单条消息。每条消息离开时必然是 ack 或 nack，
// 不存在既不确认也不拒绝的悬挂状态。
func (c *DuplicateConsumer) Handle(d amqp.Delivery) {
	var event DuplicateArticleWarningEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		// poison message, requeue 只会无限循环
		c.Logger.Errorw("discarding malformed duplicate warning", "error", err)
		c.nack(d, false)
		return
	}

	rec := &models.DuplicateRecord{
		NewArticleID:      event.NewArticleID,
		ExistingArticleID: event.ExistingArticleID,
		TenantID:          event.TenantID,
		Reason:            event.Reason,
		Timestamp:         event.Timestamp,
	}

	if err := c.Persist(rec); err != nil {
		// 首次失败重投一次，重投后仍失败则丢弃
		c.Logger.Errorw("failed to persist duplicate record",
			"error", err,
			"tenantId", event.TenantID,
			"redelivered", d.Redelivered,
		)
		c.nack(d, !d.Redelivered)
		return
	}

	c.Logger.Infow("duplicate warning recorded",
		"tenantId", event.TenantID,
		"existingArticleId", event.ExistingArticleID,
		"reason", event.Reason,
	)

	if err := d.Ack(false); err != nil {
		c.Logger.Errorw("failed to ack delivery", "error", err)
	}
}

func (c *DuplicateConsumer) nack(d amqp.Delivery, requeue bool) {
	if err := d.Nack(false, requeue); err != nil {
		c.Logger.Errorw("failed to nack delivery", "error", err)
	}
}
