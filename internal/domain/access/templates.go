package access

import (
	"sort"
	"time"
)

// Template is a named, reusable bundle of grants across content types,
// applicable to any user in replace or merge mode.
type Template struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Content     map[string][]int64 `json:"content"`
	Created     time.Time          `json:"created"`
	Modified    time.Time          `json:"modified"`
}

// SanitizeContent normalizes every ID set in a template's content map and
// drops sets that end up empty.
func SanitizeContent(content map[string][]int64) map[string][]int64 {
	out := make(map[string][]int64, len(content))
	for key, ids := range content {
		normalized := NormalizeIDs(ids)
		if len(normalized) > 0 {
			out[key] = normalized
		}
	}
	return out
}

// Summary counts the items per content-type key, for listings.
func (t Template) Summary() map[string]int {
	summary := make(map[string]int, len(t.Content))
	for key, ids := range t.Content {
		summary[key] = len(ids)
	}
	return summary
}

// ApplyTemplate writes a template's grants onto a user. In merge mode
// each set is unioned with the user's existing grant; otherwise it
// replaces it. Content types are written independently: a failure leaves
// earlier types applied, which is fine since grants are idempotent and
// correctable one type at a time.
func (e *Engine) ApplyTemplate(tpl Template, userID int64, merge bool) error {
	keys := make([]string, 0, len(tpl.Content))
	for key := range tpl.Content {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		ids := NormalizeIDs(tpl.Content[key])
		if merge {
			existing, err := e.Grants.Grant(userID, key)
			if err != nil {
				return err
			}
			ids = unionIDs(existing, ids)
		}
		if err := e.Grants.SetGrant(userID, key, ids); err != nil {
			return err
		}
	}
	return nil
}

// SnapshotUser builds a template from a user's current grants across all
// enabled types, taxonomies and media. Empty sets are omitted.
func (e *Engine) SnapshotUser(userID int64, name, description string) (Template, error) {
	settings, err := e.Settings.Settings()
	if err != nil {
		return Template{}, err
	}

	keys := append([]string{}, settings.EnabledTypes...)
	for _, taxonomy := range settings.EnabledTaxonomies {
		keys = append(keys, TaxonomyKey(taxonomy))
	}
	keys = append(keys, KeyMedia)

	content := make(map[string][]int64)
	for _, key := range keys {
		ids, err := e.Grants.Grant(userID, key)
		if err != nil {
			return Template{}, err
		}
		if normalized := NormalizeIDs(ids); len(normalized) > 0 {
			content[key] = normalized
		}
	}

	return Template{
		Name:        name,
		Description: description,
		Content:     content,
	}, nil
}
