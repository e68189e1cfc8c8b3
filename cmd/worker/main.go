package main

import (
	"time"

	"knowledgebase/config"
	"knowledgebase/events"
	"knowledgebase/global"
)

const (
	reconnectBase = time.Second
	reconnectMax  = 30 * time.Second
)

// 独立的消费者进程。broker 掉线不退出，按退避间隔重连，
// Channel() 在下一次 Start 时会重新拨号并幂等声明队列。
func main() {
	config.InitConfig()
	global.Logger.Info("Worker database connected")

	backoff := reconnectBase
	for {
		started := time.Now()
		err := events.NewDuplicateConsumer().Start()

		if time.Since(started) > time.Minute {
			backoff = reconnectBase
		}
		global.Logger.Errorw("Consumer stopped, reconnecting", "error", err, "backoff", backoff)
		time.Sleep(backoff)
		if backoff < reconnectMax {
			backoff *= 2
		}
	}
}
