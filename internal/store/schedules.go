package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"freelancer-access/internal/domain/access"
)

// Schedules implements access.ScheduleStore.
type Schedules struct {
	DB *gorm.DB
}

func (s Schedules) Schedule(userID int64) (*access.Schedule, error) {
	var row UserSchedule
	err := s.DB.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &access.Schedule{Start: row.StartDate, End: row.EndDate}, nil
}

// SetSchedule upserts the user's window. A schedule with both bounds nil
// is indistinguishable from no schedule, so it is stored as no row at
// all.
func (s Schedules) SetSchedule(userID int64, schedule *access.Schedule) error {
	if schedule.IsZero() {
		return s.DB.Where("user_id = ?", userID).Delete(&UserSchedule{}).Error
	}
	row := UserSchedule{
		UserID:    userID,
		StartDate: schedule.Start,
		EndDate:   schedule.End,
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_date", "end_date", "updated_at"}),
	}).Create(&row).Error
}
