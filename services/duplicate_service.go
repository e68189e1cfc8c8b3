package services

import (
	"strings"
	"time"

	"knowledgebase/events"
	"knowledgebase/models"
)

// ScanForDuplicates 在租户已有文章（含别名）里做大小写不敏感的精确匹配。
// existing 必须是新文章入库前的快照，这样候选永远不会匹配到自己；
// newArticleID 则是入库后生成的真实 id。每命中一次产生一条事件。
func ScanForDuplicates(existing []models.Article, title string, tenantID, newArticleID uint, at time.Time) []events.DuplicateArticleWarningEvent {
	needle := strings.ToLower(title)
	ts := at.UTC().Format(time.RFC3339)

	var warnings []events.DuplicateArticleWarningEvent
	for _, article := range existing {
		if strings.ToLower(article.Title) == needle {
			warnings = append(warnings, events.DuplicateArticleWarningEvent{
				NewArticleID:      newArticleID,
				ExistingArticleID: article.ID,
				TenantID:          tenantID,
				Reason:            events.ReasonTitleMatch,
				Timestamp:         ts,
			})
		}
		for _, alias := range article.Aliases {
			if strings.ToLower(alias.Text) == needle {
				warnings = append(warnings, events.DuplicateArticleWarningEvent{
					NewArticleID:      newArticleID,
					ExistingArticleID: article.ID,
					TenantID:          tenantID,
					Reason:            events.ReasonAliasMatch,
					Timestamp:         ts,
				})
			}
		}
	}
	return warnings
}

// HeuristicGroup 同一小写 key 下的一组文章
type HeuristicGroup struct {
	MatchKey string           `json:"matchKey"`
	Articles []models.Article `json:"articles"`
}

// BuildHeuristicGroups 按小写的标题/别名 key 聚合文章，只输出含 2 篇以上
// 不同文章的 key。同一篇文章的标题和别名撞同一个 key 只算一次。
func BuildHeuristicGroups(articles []models.Article) []HeuristicGroup {
	byKey := make(map[string][]models.Article)
	var order []string

	for _, article := range articles {
		keys := make([]string, 0, 1+len(article.Aliases))
		keys = append(keys, strings.ToLower(article.Title))
		for _, alias := range article.Aliases {
			keys = append(keys, strings.ToLower(alias.Text))
		}

		seen := make(map[string]struct{}, len(keys))
		for _, key := range keys {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if _, known := byKey[key]; !known {
				order = append(order, key)
			}
			byKey[key] = append(byKey[key], article)
		}
	}

	var groups []HeuristicGroup
	for _, key := range order {
		if group := byKey[key]; len(group) > 1 {
			groups = append(groups, HeuristicGroup{MatchKey: key, Articles: group})
		}
	}
	return groups
}
