package events

import (
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"knowledgebase/config"
)

var (
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
)

// Channel 返回进程级共享的 channel，首次调用时建立连接并声明队列。
// 队列声明是幂等的；连接断开后下一次调用会重新拨号。
func Channel() (*amqp.Channel, error) {
	mu.Lock()
	defer mu.Unlock()

	if channel != nil && !channel.IsClosed() {
		return channel, nil
	}

	url := config.AppConfig.RabbitMQ.Url
	if url == "" {
		url = "amqp://localhost"
	}

	c, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := c.Channel()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if _, err := ch.QueueDeclare(QueueDuplicateWarning, true, false, false, false, nil); err != nil {
		c.Close()
		return nil, fmt.Errorf("declare queue %s: %w", QueueDuplicateWarning, err)
	}

	conn = c
	channel = ch
	return channel, nil
}
