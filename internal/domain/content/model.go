package content

import "time"

// Content types with dedicated behavior. Custom types are arbitrary
// slugs; attachments are content rows like everything else, WordPress
// posts-table style.
const (
	TypePage       = "page"
	TypePost       = "post"
	TypeAttachment = "attachment"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusTrash     = "trash"
)

type Content struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	Type     string `gorm:"size:64;not null;index" json:"type"`
	Title    string `gorm:"not null" json:"title"`
	Body     string `gorm:"type:text" json:"body"`
	Status   string `gorm:"size:32;not null;default:'draft';index" json:"status"`
	AuthorID int64  `gorm:"index" json:"author_id"`

	// ParentID links an attachment to the content it was uploaded to.
	ParentID *int64 `gorm:"index" json:"parent_id,omitempty"`

	// FeaturedMediaID is the attachment used as featured image.
	FeaturedMediaID *int64 `gorm:"index" json:"featured_media_id,omitempty"`

	// MimeType is set on attachments only.
	MimeType string `gorm:"size:100" json:"mime_type,omitempty"`

	Terms []Term `gorm:"many2many:content_terms;" json:"terms,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Term struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	Taxonomy string `gorm:"size:64;not null;index:idx_terms_taxonomy_slug,priority:1" json:"taxonomy"`
	Name     string `gorm:"size:200;not null" json:"name"`
	Slug     string `gorm:"size:200;not null;index:idx_terms_taxonomy_slug,priority:2" json:"slug"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaxonomiesByType maps a content type to the taxonomies that apply to
// it. The content model is host-owned, so this stays a plain lookup the
// way the host registers taxonomies, not configuration.
var TaxonomiesByType = map[string][]string{
	TypePost: {"category", "post_tag"},
}

func TaxonomiesFor(contentType string) []string {
	return TaxonomiesByType[contentType]
}
