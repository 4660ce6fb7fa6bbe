// Package pricing computes the finalized quotation price from materials,
// labor, design fee and tax. Calculations are pure; persistence of the
// resulting grand total is an explicit user action handled elsewhere.
package pricing

import "studiodesk/internal/model"

// Input carries the values the grand-total calculation works from.
// MaterialsTotal is the sum of room totals, re-summed fresh from the rooms
// table rather than read from a possibly overwritten quotation field.
type Input struct {
	MaterialsTotal float64
	LaborCost      float64
	DesignFeeType  string
	DesignFeeValue float64
	TaxPercentage  float64
}

// Breakdown contains the intermediate and final values of the calculation.
type Breakdown struct {
	MaterialsTotal float64 `json:"materials_total"`
	LaborCost      float64 `json:"labor_cost"`
	DesignFee      float64 `json:"design_fee"`
	TaxableAmount  float64 `json:"taxable_amount"`
	TaxPercentage  float64 `json:"tax_percentage"`
	TaxAmount      float64 `json:"tax_amount"`
	GrandTotal     float64 `json:"grand_total"`
}

// Calculate computes the design fee, tax and grand total.
// A flat fee is taken as-is; a percentage fee applies to materials + labor.
func Calculate(in Input) Breakdown {
	designFee := in.DesignFeeValue
	if in.DesignFeeType == model.DesignFeePercentage {
		designFee = (in.MaterialsTotal + in.LaborCost) * in.DesignFeeValue / 100
	}

	taxable := in.MaterialsTotal + in.LaborCost + designFee
	tax := taxable * in.TaxPercentage / 100

	return Breakdown{
		MaterialsTotal: in.MaterialsTotal,
		LaborCost:      in.LaborCost,
		DesignFee:      designFee,
		TaxableAmount:  taxable,
		TaxPercentage:  in.TaxPercentage,
		TaxAmount:      tax,
		GrandTotal:     taxable + tax,
	}
}

// FromQuotation builds the calculation input from a quotation's stored
// pricing fields and a freshly re-summed materials total.
func FromQuotation(q *model.Quotation, materialsTotal float64) Input {
	return Input{
		MaterialsTotal: materialsTotal,
		LaborCost:      q.LaborCost,
		DesignFeeType:  q.DesignFeeType,
		DesignFeeValue: q.DesignFeeValue,
		TaxPercentage:  q.TaxPercentage,
	}
}
