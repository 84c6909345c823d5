package store

import (
	"gorm.io/gorm"

	"freelancer-access/internal/domain/access"
)

// NewEngine wires the decision engine to its gorm-backed stores. Cheap to
// construct, so handlers build one per request from the shared DB handle.
func NewEngine(db *gorm.DB) *access.Engine {
	return access.NewEngine(
		Grants{DB: db},
		Schedules{DB: db},
		Settings{DB: db},
		Directory{DB: db},
	)
}
