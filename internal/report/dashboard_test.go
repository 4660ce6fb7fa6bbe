package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"studiodesk/internal/model"
	"studiodesk/internal/report"
	"studiodesk/internal/testutil"
)

func seedQuotation(t *testing.T, db *gorm.DB, title, status string, total float64, updatedAt time.Time) *model.Quotation {
	t.Helper()
	q := testutil.CreateQuotation(t, db, title)
	require.NoError(t, db.Model(&model.Quotation{}).
		Where("id = ?", q.ID).
		UpdateColumns(map[string]interface{}{
			"status":       status,
			"total_amount": total,
		}).Error)
	require.NoError(t, db.Model(&model.Quotation{}).
		Where("id = ?", q.ID).
		UpdateColumn("updated_at", updatedAt).Error)
	q.Status = status
	q.TotalAmount = total
	return q
}

func seedProject(t *testing.T, db *gorm.DB, q *model.Quotation, name, status string, budget float64) *model.Project {
	t.Helper()
	p := &model.Project{
		QuotationID: q.ID,
		Name:        name,
		Status:      status,
		Budget:      budget,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedExpense(t *testing.T, db *gorm.DB, projectID uint, amount float64, date time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&model.Expense{
		ProjectID:   projectID,
		Description: "expense",
		Amount:      amount,
		ExpenseDate: date,
	}).Error)
}

func TestDashboardRevenueAndPipeline(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	// Won this month, won earlier this year, won last year, pending, draft.
	seedQuotation(t, db, "Won August", model.QuotationStatusApproved, 10000, now.AddDate(0, 0, -3))
	seedQuotation(t, db, "Won March", model.QuotationStatusApproved, 5000, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))
	seedQuotation(t, db, "Won Last Year", model.QuotationStatusApproved, 7000, time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC))
	seedQuotation(t, db, "Pending A", model.QuotationStatusPending, 3000, now)
	seedQuotation(t, db, "Pending B", model.QuotationStatusPending, 2000, now)
	seedQuotation(t, db, "Draft", model.QuotationStatusDraft, 500, now)

	stats, err := report.DashboardStats(db, now)
	require.NoError(t, err)

	assert.Equal(t, 15000.0, stats.Financials.RevenueYTD)
	assert.Equal(t, 10000.0, stats.Financials.RevenueMonth)
	assert.Equal(t, int64(1), stats.Pipeline.WonMonthCount)
	assert.Equal(t, 10000.0, stats.Pipeline.WonMonthValue)
	assert.Equal(t, int64(2), stats.Pipeline.PendingCount)
	assert.Equal(t, 5000.0, stats.Pipeline.PendingValue)
}

func TestDashboardExpensesThisMonth(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	q := seedQuotation(t, db, "For Project", model.QuotationStatusApproved, 10000, now)
	p := seedProject(t, db, q, "Site Work", model.ProjectStatusCompleted, 10000)

	seedExpense(t, db, p.ID, 800, time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC))
	seedExpense(t, db, p.ID, 200, time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC))
	seedExpense(t, db, p.ID, 999, time.Date(2026, time.July, 30, 0, 0, 0, 0, time.UTC))

	stats, err := report.DashboardStats(db, now)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, stats.Financials.ExpensesMonth)
}

func TestProjectHealthClassification(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		budget float64
		spent  float64
		health string
	}{
		{"Healthy", 1000, 500, report.HealthOnTrack},
		{"Boundary Eighty", 1000, 800, report.HealthOnTrack},
		{"Risky", 1000, 850, report.HealthAtRisk},
		{"Boundary Hundred", 1000, 1000, report.HealthAtRisk},
		{"Blown", 1000, 1200, report.HealthCritical},
	}

	for i, tc := range cases {
		q := seedQuotation(t, db, tc.name, model.QuotationStatusApproved, tc.budget, now.AddDate(0, 0, -i))
		p := seedProject(t, db, q, tc.name, model.ProjectStatusInProgress, tc.budget)
		if tc.spent > 0 {
			seedExpense(t, db, p.ID, tc.spent, now)
		}
	}

	// Non-active projects stay off the dashboard.
	qDone := seedQuotation(t, db, "Done", model.QuotationStatusApproved, 500, now)
	seedProject(t, db, qDone, "Done", model.ProjectStatusCompleted, 500)

	stats, err := report.DashboardStats(db, now)
	require.NoError(t, err)
	require.Len(t, stats.Projects, len(cases))

	byName := map[string]report.ProjectHealth{}
	for _, p := range stats.Projects {
		byName[p.Name] = p
	}
	for _, tc := range cases {
		ph, ok := byName[tc.name]
		require.True(t, ok, tc.name)
		assert.Equal(t, tc.health, ph.Health, tc.name)
		assert.Equal(t, tc.spent, ph.TotalSpent, tc.name)
	}

	assert.InDelta(t, 85.0, byName["Risky"].SpentPct, 0.001)
	assert.InDelta(t, 120.0, byName["Blown"].SpentPct, 0.001)
}

func TestDashboardEmptyDatabase(t *testing.T) {
	db := testutil.NewDB(t)

	stats, err := report.DashboardStats(db, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0.0, stats.Financials.RevenueYTD)
	assert.Equal(t, int64(0), stats.Pipeline.PendingCount)
	assert.Empty(t, stats.Projects)
}
