package contents

import (
	"strconv"
	"strings"

	"freelancer-access/internal/domain/access"
	"freelancer-access/internal/domain/content"

	"gorm.io/gorm"
)

// allowedFor computes the listing decision for a content type.
// Attachments go through the media resolver: the per-type path treats
// "attachment" as a type never enabled for restriction and would pass
// every attachment through unfiltered.
func allowedFor(eng *access.Engine, user access.User, contentType string) (access.Decision, error) {
	if contentType == content.TypeAttachment {
		return eng.AllowedMediaIDs(user)
	}
	return eng.AllowedIDs(user, contentType)
}

// canAccessItem answers a direct open of one content row, routing
// attachments through the media resolver like allowedFor.
func canAccessItem(eng *access.Engine, user access.User, item content.Content) (bool, error) {
	if item.Type == content.TypeAttachment {
		decision, err := eng.AllowedMediaIDs(user)
		if err != nil {
			return false, err
		}
		return decision.Contains(item.ID), nil
	}
	return eng.CanAccess(user, item.Type, item.ID)
}

func typedContentQuery(db *gorm.DB, contentType string) *gorm.DB {
	return db.Model(&content.Content{}).
		Where("type = ? AND status <> ?", contentType, content.StatusTrash)
}

// applyDecision turns an engine decision into an inclusion filter on the
// query. Unrestricted applies nothing; an empty allowed set filters down
// to the sentinel ID 0, which matches no row.
func applyDecision(q *gorm.DB, d access.Decision) *gorm.DB {
	if d.Unrestricted {
		return q
	}
	return q.Where("id IN ?", d.FilterIDs())
}

// parseIDList reads a comma-separated ?ids= pre-filter.
func parseIDList(raw string) []int64 {
	if raw == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
