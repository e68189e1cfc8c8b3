package events

// QueueDuplicateWarning 重复告警队列名，生产者与消费者共用
const QueueDuplicateWarning = "duplicate_article_warning"

const (
	ReasonTitleMatch = "title_match"
	ReasonAliasMatch = "alias_match"
)

// DuplicateArticleWarningEvent 队列消息体，字段名即线上格式，不能改
type DuplicateArticleWarningEvent struct {
	NewArticleID      uint   `json:"newArticleId"`
	ExistingArticleID uint   `json:"existingArticleId"`
	TenantID          uint   `json:"tenantId"`
	Reason            string `json:"reason"`
	Timestamp         string `json:"timestamp"`
}
