package store

import "gorm.io/gorm"

// maxLogEntries caps the denial log so it never grows past the most
// recent attempts.
const maxLogEntries = 50

// Logs persists denied direct-access attempts, newest first.
type Logs struct {
	DB *gorm.DB
}

func (s Logs) Append(entry AccessLogEntry) error {
	if err := s.DB.Create(&entry).Error; err != nil {
		return err
	}
	// Trim everything older than the newest maxLogEntries rows.
	return s.DB.Exec(
		`DELETE FROM access_log_entries WHERE id NOT IN (
			SELECT id FROM access_log_entries ORDER BY id DESC LIMIT ?
		)`, maxLogEntries,
	).Error
}

func (s Logs) List() ([]AccessLogEntry, error) {
	var rows []AccessLogEntry
	err := s.DB.Order("id DESC").Limit(maxLogEntries).Find(&rows).Error
	return rows, err
}

func (s Logs) Count() (int64, error) {
	var n int64
	err := s.DB.Model(&AccessLogEntry{}).Count(&n).Error
	return n, err
}
