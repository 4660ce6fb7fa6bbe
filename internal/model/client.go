package model

import (
	"time"

	"gorm.io/gorm"
)

// Client represents a customer of the firm
type Client struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	Email     string         `json:"email" gorm:"type:varchar(255)"`
	Phone     string         `json:"phone" gorm:"type:varchar(50)"`
	Address   string         `json:"address" gorm:"type:text"`
	Notes     string         `json:"notes" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
