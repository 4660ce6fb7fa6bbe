package model

import (
	"time"
)

// Project statuses
const (
	ProjectStatusPlanning   = "Planning"
	ProjectStatusInProgress = "In Progress"
	ProjectStatusOnHold     = "On Hold"
	ProjectStatusCompleted  = "Completed"
)

// Task statuses
const (
	TaskStatusPending    = "Pending"
	TaskStatusInProgress = "In Progress"
	TaskStatusDone       = "Done"
)

// Project represents work converted from an approved quotation.
// Budget is a snapshot of the quotation's total_amount at creation time and
// is not re-synced afterwards. At most one project exists per quotation;
// deletion is a hard delete so the quotation can be converted again.
type Project struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	QuotationID uint       `json:"quotation_id" gorm:"uniqueIndex;not null"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null"`
	Status      string     `json:"status" gorm:"type:varchar(20);default:'Planning';index"`
	Budget      float64    `json:"budget" gorm:"type:decimal(15,2);default:0"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Quotation *Quotation `json:"quotation,omitempty" gorm:"foreignKey:QuotationID"`
}

// Task represents a unit of project work
type Task struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	ProjectID uint       `json:"project_id" gorm:"index;not null"`
	Title     string     `json:"title" gorm:"type:varchar(255);not null"`
	Status    string     `json:"status" gorm:"type:varchar(20);default:'Pending'"`
	DueDate   *time.Time `json:"due_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Expense represents money spent against a project's budget
type Expense struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	ProjectID   uint      `json:"project_id" gorm:"index;not null"`
	Description string    `json:"description" gorm:"type:varchar(255);not null"`
	Amount      float64   `json:"amount" gorm:"type:decimal(15,2);not null"`
	Category    string    `json:"category" gorm:"type:varchar(100)"`
	ExpenseDate time.Time `json:"expense_date" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectNote represents a free-form note attached to a project
type ProjectNote struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ProjectID uint      `json:"project_id" gorm:"index;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
