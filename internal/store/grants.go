package store

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"freelancer-access/internal/domain/access"
)

// Grants implements access.GrantStore on top of content_grants.
type Grants struct {
	DB *gorm.DB
}

func (s Grants) Grant(userID int64, contentType string) ([]int64, error) {
	var row ContentGrant
	err := s.DB.Where("user_id = ? AND content_type = ?", userID, contentType).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// Normalize on read too: the column is plain JSON and externally
	// writable.
	return access.NormalizeIDs(row.IDs), nil
}

func (s Grants) SetGrant(userID int64, contentType string, ids []int64) error {
	row := ContentGrant{
		UserID:      userID,
		ContentType: contentType,
		IDs:         datatypes.NewJSONSlice(access.NormalizeIDs(ids)),
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "content_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"item_ids", "updated_at"}),
	}).Create(&row).Error
}

// GrantsFor returns every grant row a user has, keyed by content type.
func (s Grants) GrantsFor(userID int64) (map[string][]int64, error) {
	var rows []ContentGrant
	if err := s.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string][]int64, len(rows))
	for _, row := range rows {
		out[row.ContentType] = access.NormalizeIDs(row.IDs)
	}
	return out, nil
}

// ClearUser removes every grant and the schedule of a user.
func (s Grants) ClearUser(userID int64) error {
	if err := s.DB.Where("user_id = ?", userID).Delete(&ContentGrant{}).Error; err != nil {
		return err
	}
	return s.DB.Where("user_id = ?", userID).Delete(&UserSchedule{}).Error
}
