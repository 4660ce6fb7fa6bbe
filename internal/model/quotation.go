package model

import (
	"time"
)

// Quotation statuses
const (
	QuotationStatusDraft    = "Draft"
	QuotationStatusPending  = "Pending"
	QuotationStatusApproved = "Approved"
	QuotationStatusRejected = "Rejected"
)

// Design fee types
const (
	DesignFeeFlat       = "flat"
	DesignFeePercentage = "percentage"
)

// Quotation represents a cost estimate composed of per-room line items.
//
// TotalAmount carries the live sum of room totals, maintained by the
// aggregation engine after every line-item mutation. Saving the finalized
// price (PUT /quotations/:id/total) overwrites it with the grand total
// (materials + labor + design fee + tax) until the next ledger mutation
// re-sums it.
type Quotation struct {
	ID             uint      `json:"id" gorm:"primarykey"`
	ClientID       uint      `json:"client_id" gorm:"index;not null"`
	Title          string    `json:"title" gorm:"type:varchar(255);not null"`
	Status         string    `json:"status" gorm:"type:varchar(20);default:'Draft';index"`
	TotalAmount    float64   `json:"total_amount" gorm:"type:decimal(15,2);default:0"`
	LaborCost      float64   `json:"labor_cost" gorm:"type:decimal(15,2);default:0"`
	DesignFeeType  string    `json:"design_fee_type" gorm:"type:varchar(20);default:'percentage'"`
	DesignFeeValue float64   `json:"design_fee_value" gorm:"type:decimal(15,2);default:0"`
	TaxPercentage  float64   `json:"tax_percentage" gorm:"type:decimal(5,2);default:18"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Client *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Rooms  []Room  `json:"rooms,omitempty" gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`
}

// Room represents one room of a quotation.
// RoomTotal is derived from the room's line items and is never written
// directly by a client request.
type Room struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	QuotationID uint      `json:"quotation_id" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Length      float64   `json:"length" gorm:"type:decimal(10,2);default:0"`
	Width       float64   `json:"width" gorm:"type:decimal(10,2);default:0"`
	Height      float64   `json:"height" gorm:"type:decimal(10,2);default:0"`
	Notes       string    `json:"notes" gorm:"type:text"`
	RoomTotal   float64   `json:"room_total" gorm:"type:decimal(15,2);default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Items []RoomLineItem `json:"items,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

// RoomLineItem represents one row of work/material placed into a room.
// CatalogItemID is nil for custom/ad-hoc items. Name, unit and rate are
// value copies taken from the catalog at insertion time; the foreign key
// is kept for traceability only. Total always equals Rate * Quantity.
type RoomLineItem struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	RoomID        uint      `json:"room_id" gorm:"index;not null"`
	CatalogItemID *uint     `json:"material_id" gorm:"index"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Specification string    `json:"specification" gorm:"type:text"`
	Unit          string    `json:"unit" gorm:"type:varchar(50)"`
	Rate          float64   `json:"price" gorm:"type:decimal(15,2);not null"`
	Quantity      float64   `json:"quantity" gorm:"type:decimal(12,2);not null"`
	Total         float64   `json:"total" gorm:"type:decimal(15,2);not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
