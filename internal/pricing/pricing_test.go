package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studiodesk/internal/model"
	"studiodesk/internal/pricing"
)

func TestCalculatePercentageFee(t *testing.T) {
	result := pricing.Calculate(pricing.Input{
		MaterialsTotal: 10000,
		LaborCost:      2000,
		DesignFeeType:  model.DesignFeePercentage,
		DesignFeeValue: 10,
		TaxPercentage:  18,
	})

	assert.Equal(t, 1200.0, result.DesignFee)
	assert.Equal(t, 13200.0, result.TaxableAmount)
	assert.Equal(t, 2376.0, result.TaxAmount)
	assert.Equal(t, 15576.0, result.GrandTotal)
}

func TestCalculateFlatFee(t *testing.T) {
	result := pricing.Calculate(pricing.Input{
		MaterialsTotal: 5000,
		LaborCost:      1000,
		DesignFeeType:  model.DesignFeeFlat,
		DesignFeeValue: 1500,
		TaxPercentage:  18,
	})

	assert.Equal(t, 1500.0, result.DesignFee)
	assert.Equal(t, 7500.0, result.TaxableAmount)
	assert.Equal(t, 1350.0, result.TaxAmount)
	assert.Equal(t, 8850.0, result.GrandTotal)
}

func TestCalculateZeroTax(t *testing.T) {
	result := pricing.Calculate(pricing.Input{
		MaterialsTotal: 1000,
		LaborCost:      0,
		DesignFeeType:  model.DesignFeeFlat,
		DesignFeeValue: 0,
		TaxPercentage:  0,
	})

	assert.Equal(t, 0.0, result.DesignFee)
	assert.Equal(t, 0.0, result.TaxAmount)
	assert.Equal(t, 1000.0, result.GrandTotal)
}

func TestCalculateEmptyQuotation(t *testing.T) {
	result := pricing.Calculate(pricing.Input{
		DesignFeeType: model.DesignFeePercentage,
		TaxPercentage: 18,
	})

	assert.Equal(t, 0.0, result.GrandTotal)
}

func TestFromQuotation(t *testing.T) {
	q := &model.Quotation{
		LaborCost:      2000,
		DesignFeeType:  model.DesignFeePercentage,
		DesignFeeValue: 10,
		TaxPercentage:  18,
		// Stale saved grand total must not leak into the calculation.
		TotalAmount: 42,
	}

	in := pricing.FromQuotation(q, 10000)
	assert.Equal(t, 10000.0, in.MaterialsTotal)

	result := pricing.Calculate(in)
	assert.Equal(t, 15576.0, result.GrandTotal)
}
