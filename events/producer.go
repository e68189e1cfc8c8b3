package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"knowledgebase/global"
)

const (
	publishAttempts = 3
	publishBackoff  = 200 * time.Millisecond
	publishTimeout  = 5 * time.Second
)

// Publisher 生产者用到的 amqp channel 子集
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// EmitDuplicateWarning 向持久化队列发布一条重复告警事件
func EmitDuplicateWarning(ctx context.Context, pub Publisher, event DuplicateArticleWarningEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal duplicate warning: %w", err)
	}

	return pub.PublishWithContext(ctx, "", QueueDuplicateWarning, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Body:         body,
	})
}

// EmitDuplicateWarningsAsync 在后台尽力投递事件。
// 发布失败只记日志，不影响触发它的创建请求。
func EmitDuplicateWarningsAsync(warnings []DuplicateArticleWarningEvent) {
	if len(warnings) == 0 {
		return
	}

	go func() {
		for _, event := range warnings {
			event := event
			err := withBackoff(publishAttempts, publishBackoff, func() error {
				ch, err := Channel()
				if err != nil {
					return err
				}
				ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
				defer cancel()
				return EmitDuplicateWarning(ctx, ch, event)
			})
			if err != nil {
				global.Logger.Errorw("dropping duplicate warning event",
					"error", err,
					"tenantId", event.TenantID,
					"existingArticleId", event.ExistingArticleID,
					"reason", event.Reason,
				)
				continue
			}
			global.Logger.Infow("duplicate_article_warning emitted",
				"tenantId", event.TenantID,
				"existingArticleId", event.ExistingArticleID,
				"reason", event.Reason,
			)
		}
	}()
}

// withBackoff 重试 fn，每次失败后等待并将间隔翻倍
func withBackoff(attempts int, delay time.Duration, fn func() error) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(delay)
			delay *= 2
		}
		if lastErr = fn(); lastErr == nil {
			return nil
		}
	}
	return lastErr
}
