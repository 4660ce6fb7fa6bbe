package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"studiodesk/internal/aggregate"
	"studiodesk/internal/model"
	"studiodesk/internal/report"
	"studiodesk/internal/testutil"
)

func TestQuotationSummaryPricing(t *testing.T) {
	db := testutil.NewDB(t)
	q := testutil.CreateQuotation(t, db, "Summary")
	room := testutil.CreateRoom(t, db, q.ID, "Master Bedroom")

	_, err := aggregate.AddLineItem(db, room.ID, aggregate.AddInput{
		Name: "Wardrobe", Unit: "pcs", Rate: 5000, Quantity: 2,
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.Quotation{}).
		Where("id = ?", q.ID).
		UpdateColumns(map[string]interface{}{
			"labor_cost":       2000,
			"design_fee_type":  model.DesignFeePercentage,
			"design_fee_value": 10,
			"tax_percentage":   18,
		}).Error)

	summary, err := report.QuotationSummary(db, q.ID)
	require.NoError(t, err)

	assert.Equal(t, 10000.0, summary.Pricing.MaterialsTotal)
	assert.Equal(t, 1200.0, summary.Pricing.DesignFee)
	assert.Equal(t, 15576.0, summary.Pricing.GrandTotal)
	require.Len(t, summary.Quotation.Rooms, 1)
	require.Len(t, summary.Quotation.Rooms[0].Items, 1)
}

func TestQuotationSummaryIgnoresSavedTotal(t *testing.T) {
	db := testutil.NewDB(t)
	q := testutil.CreateQuotation(t, db, "Saved Total")
	room := testutil.CreateRoom(t, db, q.ID, "Hallway")

	_, err := aggregate.AddLineItem(db, room.ID, aggregate.AddInput{
		Name: "Paneling", Unit: "sqft", Rate: 100, Quantity: 10,
	})
	require.NoError(t, err)

	// Simulate a finalized grand total having overwritten total_amount.
	require.NoError(t, db.Model(&model.Quotation{}).
		Where("id = ?", q.ID).
		Update("total_amount", 50000).Error)

	summary, err := report.QuotationSummary(db, q.ID)
	require.NoError(t, err)

	// Materials come from the rooms, not from the overwritten field.
	assert.Equal(t, 1000.0, summary.Pricing.MaterialsTotal)
}

func TestQuotationSummaryNotFound(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := report.QuotationSummary(db, 12345)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
