package store

import (
	"time"

	"gorm.io/datatypes"
)

// ContentGrant is one (user, content type) allow-list row. IDs are stored
// as a JSON array; SetGrant filters invalid entries before they land here.
type ContentGrant struct {
	ID          int64                      `gorm:"primaryKey"`
	UserID      int64                      `gorm:"not null;uniqueIndex:idx_grants_user_type,priority:1"`
	ContentType string                     `gorm:"size:96;not null;uniqueIndex:idx_grants_user_type,priority:2"`
	IDs         datatypes.JSONSlice[int64] `gorm:"column:item_ids"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserSchedule is the optional per-user access window. A row never has
// both bounds null: saving such a schedule deletes the row instead.
type UserSchedule struct {
	ID        int64      `gorm:"primaryKey"`
	UserID    int64      `gorm:"not null;uniqueIndex"`
	StartDate *time.Time `gorm:"type:date"`
	EndDate   *time.Time `gorm:"type:date"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccessSetting is the single restriction-configuration row.
type AccessSetting struct {
	ID                int64                       `gorm:"primaryKey"`
	RestrictedRoles   datatypes.JSONSlice[string] `gorm:"column:restricted_roles"`
	EnabledTypes      datatypes.JSONSlice[string] `gorm:"column:enabled_post_types"`
	EnabledTaxonomies datatypes.JSONSlice[string] `gorm:"column:enabled_taxonomies"`
	MediaRestriction  bool                        `gorm:"not null;default:true"`
	UpdatedAt         time.Time
}

// AccessTemplate is a stored grant bundle. Content maps content-type keys
// to ID arrays.
type AccessTemplate struct {
	ID          string         `gorm:"size:64;primaryKey"`
	Name        string         `gorm:"not null"`
	Description string         `gorm:"type:text"`
	Content     datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AccessLogEntry records one denied direct-access attempt. The store
// keeps only the 50 newest entries.
type AccessLogEntry struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"index"`
	UserLogin    string    `gorm:"size:200"`
	ContentID    int64
	ContentTitle string    `gorm:"size:255"`
	IP           string    `gorm:"size:64"`
	CreatedAt    time.Time `gorm:"index"`
}
