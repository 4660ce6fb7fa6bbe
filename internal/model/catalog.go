package model

import (
	"time"

	"gorm.io/gorm"
)

// CatalogItem represents a reusable master material/work-item definition.
// Line items copy its fields at insertion time; a later edit here never
// changes rows already placed into a room.
type CatalogItem struct {
	ID                 uint           `json:"id" gorm:"primarykey"`
	Name               string         `json:"name" gorm:"type:varchar(255);not null"`
	Unit               string         `json:"unit" gorm:"type:varchar(50);not null"`
	DefaultRate        float64        `json:"default_rate" gorm:"type:decimal(15,2);not null"`
	Category           string         `json:"category" gorm:"type:varchar(100);index"`
	DefaultDescription string         `json:"default_description" gorm:"type:text"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
