package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"studiodesk/internal/report"
	"studiodesk/pkg/database"
	"studiodesk/pkg/logger"
	"studiodesk/prometheus"
)

// ExportQuotation renders the quotation cost breakdown as a spreadsheet
func ExportQuotation(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid quotation id"})
	}

	summary, err := report.QuotationSummary(database.GetDB(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Quotation not found"})
		}
		log.Error("Failed to load quotation for export", zap.Uint64("quotation_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export quotation"})
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	q := summary.Quotation

	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Quotation", q.Title}); err != nil {
		log.Error("Failed to write export header", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export quotation"})
	}
	clientName := ""
	if q.Client != nil {
		clientName = q.Client.Name
	}
	_ = f.SetSheetRow(sheet, "A2", &[]interface{}{"Client", clientName})
	_ = f.SetSheetRow(sheet, "A3", &[]interface{}{"Status", q.Status})

	row := 5
	header := []interface{}{"Room", "Item", "Specification", "Unit", "Rate", "Quantity", "Total"}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		log.Error("Failed to write export header row", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export quotation"})
	}
	row++

	for _, room := range q.Rooms {
		for _, item := range room.Items {
			excelRow := []interface{}{
				room.Name,
				item.Name,
				item.Specification,
				item.Unit,
				item.Rate,
				item.Quantity,
				item.Total,
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				log.Error("Failed to address export cell", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export quotation"})
			}
			if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
				log.Error("Failed to write export row", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export quotation"})
			}
			row++
		}
		cell, _ = excelize.CoordinatesToCellName(1, row)
		_ = f.SetSheetRow(sheet, cell, &[]interface{}{room.Name + " total", "", "", "", "", "", room.RoomTotal})
		row += 2
	}

	p := summary.Pricing
	breakdown := [][]interface{}{
		{"Materials total", p.MaterialsTotal},
		{"Labor cost", p.LaborCost},
		{"Design fee", p.DesignFee},
		{"Taxable amount", p.TaxableAmount},
		{"Tax (" + strconv.FormatFloat(p.TaxPercentage, 'f', -1, 64) + "%)", p.TaxAmount},
		{"Grand total", p.GrandTotal},
	}
	for _, line := range breakdown {
		cell, _ = excelize.CoordinatesToCellName(1, row)
		l := line
		if err := f.SetSheetRow(sheet, cell, &l); err != nil {
			log.Error("Failed to write pricing row", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export quotation"})
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		log.Error("Failed to write export file", zap.Uint64("quotation_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export quotation"})
	}

	prometheus.RecordQuotationOperation("export")
	log.Info("Quotation exported", zap.Uint64("quotation_id", id), zap.Int("bytes", buf.Len()))

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+quotationExportFilename(q)+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
