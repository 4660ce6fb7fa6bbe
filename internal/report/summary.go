package report

import (
	"gorm.io/gorm"

	"studiodesk/internal/aggregate"
	"studiodesk/internal/model"
	"studiodesk/internal/pricing"
)

// Summary is the quotation preview: rooms with their line items, the
// freshly re-summed materials total and the full pricing breakdown built
// from the quotation's stored labor/fee/tax fields.
type Summary struct {
	Quotation *model.Quotation  `json:"quotation"`
	Pricing   pricing.Breakdown `json:"pricing"`
}

// QuotationSummary loads a quotation with its rooms and items and derives
// the pricing breakdown. The materials total is re-summed from the rooms
// table, not read from total_amount, which may hold a saved grand total.
func QuotationSummary(db *gorm.DB, quotationID uint) (*Summary, error) {
	var quotation model.Quotation
	err := db.Preload("Client").
		Preload("Rooms").
		Preload("Rooms.Items").
		First(&quotation, quotationID).Error
	if err != nil {
		return nil, err
	}

	materials, err := aggregate.MaterialsTotal(db, quotationID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Quotation: &quotation,
		Pricing:   pricing.Calculate(pricing.FromQuotation(&quotation, materials)),
	}, nil
}
