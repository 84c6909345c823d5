package store

import (
	"gorm.io/gorm"

	"freelancer-access/internal/domain/content"
)

// Directory implements access.ContentDirectory over the contents table.
// Every lookup runs against any status except trash; grants apply to
// drafts the same as to published items.
type Directory struct {
	DB *gorm.DB
}

func (d Directory) IDsWithTerms(contentType, taxonomy string, termIDs []int64) ([]int64, error) {
	if len(termIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := d.DB.Model(&content.Content{}).
		Distinct("contents.id").
		Joins("JOIN content_terms ct ON ct.content_id = contents.id").
		Joins("JOIN terms t ON t.id = ct.term_id").
		Where("contents.type = ? AND contents.status <> ?", contentType, content.StatusTrash).
		Where("t.taxonomy = ? AND t.id IN ?", taxonomy, termIDs).
		Pluck("contents.id", &ids).Error
	return ids, err
}

func (d Directory) TaxonomiesFor(contentType string) ([]string, error) {
	return content.TaxonomiesFor(contentType), nil
}

func (d Directory) AttachmentsOwnedBy(userID int64) ([]int64, error) {
	var ids []int64
	err := d.DB.Model(&content.Content{}).
		Where("type = ? AND author_id = ?", content.TypeAttachment, userID).
		Pluck("id", &ids).Error
	return ids, err
}

// AttachmentsRelatedTo covers both the formal parent-child relationship
// and featured images of the given content.
func (d Directory) AttachmentsRelatedTo(contentIDs []int64) ([]int64, error) {
	if len(contentIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := d.DB.Model(&content.Content{}).
		Where("type = ? AND parent_id IN ?", content.TypeAttachment, contentIDs).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	var featured []int64
	err = d.DB.Model(&content.Content{}).
		Where("id IN ? AND featured_media_id IS NOT NULL", contentIDs).
		Pluck("featured_media_id", &featured).Error
	if err != nil {
		return nil, err
	}
	return append(ids, featured...), nil
}

func (d Directory) BodiesOf(contentIDs []int64) ([]string, error) {
	if len(contentIDs) == 0 {
		return nil, nil
	}
	var bodies []string
	err := d.DB.Model(&content.Content{}).
		Where("id IN ? AND body <> ''", contentIDs).
		Pluck("body", &bodies).Error
	return bodies, err
}
