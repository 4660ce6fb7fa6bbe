// Package report provides read-only financial views derived from quotations,
// expenses and projects. Nothing here writes to the store.
package report

import (
	"time"

	"gorm.io/gorm"

	"studiodesk/internal/model"
)

// Project health classifications
const (
	HealthOnTrack  = "on_track"
	HealthAtRisk   = "at_risk"
	HealthCritical = "critical"
)

// Financials summarizes revenue and spending for the current period
type Financials struct {
	RevenueYTD    float64 `json:"revenueYTD"`
	RevenueMonth  float64 `json:"revenueMonth"`
	ExpensesMonth float64 `json:"expensesMonth"`
}

// Pipeline summarizes open and recently won quotations
type Pipeline struct {
	PendingCount  int64   `json:"pendingCount"`
	PendingValue  float64 `json:"pendingValue"`
	WonMonthCount int64   `json:"wonMonthCount"`
	WonMonthValue float64 `json:"wonMonthValue"`
}

// ProjectHealth classifies an active project's spend against its budget
type ProjectHealth struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Budget     float64 `json:"budget"`
	TotalSpent float64 `json:"total_spent"`
	SpentPct   float64 `json:"spent_pct"`
	Health     string  `json:"health"`
}

// Stats is the dashboard payload
type Stats struct {
	Financials Financials      `json:"financials"`
	Pipeline   Pipeline        `json:"pipeline"`
	Projects   []ProjectHealth `json:"projects"`
}

// DashboardStats derives the dashboard view for the period containing now.
// Date filters use half-open ranges so the queries stay portable across
// Postgres and the SQLite used in tests.
func DashboardStats(db *gorm.DB, now time.Time) (*Stats, error) {
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)
	nextYear := yearStart.AddDate(1, 0, 0)

	stats := &Stats{Projects: []ProjectHealth{}}

	err := db.Model(&model.Quotation{}).
		Where("status = ? AND updated_at >= ? AND updated_at < ?", model.QuotationStatusApproved, yearStart, nextYear).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.Financials.RevenueYTD).Error
	if err != nil {
		return nil, err
	}

	wonMonth := "status = ? AND updated_at >= ? AND updated_at < ?"
	err = db.Model(&model.Quotation{}).
		Where(wonMonth, model.QuotationStatusApproved, monthStart, nextMonth).
		Count(&stats.Pipeline.WonMonthCount).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&model.Quotation{}).
		Where(wonMonth, model.QuotationStatusApproved, monthStart, nextMonth).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.Pipeline.WonMonthValue).Error
	if err != nil {
		return nil, err
	}
	stats.Financials.RevenueMonth = stats.Pipeline.WonMonthValue

	err = db.Model(&model.Expense{}).
		Where("expense_date >= ? AND expense_date < ?", monthStart, nextMonth).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.Financials.ExpensesMonth).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&model.Quotation{}).
		Where("status = ?", model.QuotationStatusPending).
		Count(&stats.Pipeline.PendingCount).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&model.Quotation{}).
		Where("status = ?", model.QuotationStatusPending).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.Pipeline.PendingValue).Error
	if err != nil {
		return nil, err
	}

	var active []model.Project
	if err := db.Where("status = ?", model.ProjectStatusInProgress).Find(&active).Error; err != nil {
		return nil, err
	}
	for _, p := range active {
		var spent float64
		err := db.Model(&model.Expense{}).
			Where("project_id = ?", p.ID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&spent).Error
		if err != nil {
			return nil, err
		}
		stats.Projects = append(stats.Projects, classifyProject(&p, spent))
	}

	return stats, nil
}

// classifyProject computes the spent percentage and health bucket for one
// active project.
func classifyProject(p *model.Project, totalSpent float64) ProjectHealth {
	ph := ProjectHealth{
		ID:         p.ID,
		Name:       p.Name,
		Budget:     p.Budget,
		TotalSpent: totalSpent,
		Health:     HealthOnTrack,
	}
	if p.Budget > 0 {
		ph.SpentPct = totalSpent / p.Budget * 100
	} else if totalSpent > 0 {
		// Spending against a zero budget is over budget by definition.
		ph.SpentPct = 100 + totalSpent
	}

	switch {
	case ph.SpentPct > 100:
		ph.Health = HealthCritical
	case ph.SpentPct > 80:
		ph.Health = HealthAtRisk
	}
	return ph
}
