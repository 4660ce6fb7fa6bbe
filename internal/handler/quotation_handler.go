package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"studiodesk/internal/model"
	"studiodesk/internal/report"
	"studiodesk/pkg/config"
	"studiodesk/pkg/database"
	"studiodesk/pkg/logger"
	"studiodesk/prometheus"
)

var defaultTaxPercentage = 18.0

// SetPricingDefaults applies configured quotation pricing defaults
func SetPricingDefaults(cfg *config.Config) {
	defaultTaxPercentage = cfg.Quotation.DefaultTaxPercentage
}

// QuotationRequest defines the structure for quotation creation/update requests
type QuotationRequest struct {
	ClientID      uint     `json:"client_id" validate:"required"`
	Title         string   `json:"title" validate:"required"`
	TaxPercentage *float64 `json:"tax_percentage"`
}

// QuotationStatusRequest defines the structure for status transitions
type QuotationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// QuotationTotalRequest defines the structure for saving the finalized price
type QuotationTotalRequest struct {
	TotalAmount    float64 `json:"total_amount" validate:"required"`
	LaborCost      float64 `json:"labor_cost"`
	DesignFeeType  string  `json:"design_fee_type" validate:"required"`
	DesignFeeValue float64 `json:"design_fee_value"`
}

// ListQuotations handles retrieving all quotations with optional status filtering
func ListQuotations(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Preload("Client").Order("updated_at DESC")
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var quotations []model.Quotation
	if result := query.Find(&quotations); result.Error != nil {
		log.Error("Failed to list quotations", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve quotations"})
	}

	return c.JSON(http.StatusOK, quotations)
}

// GetQuotation handles retrieving a single quotation with rooms and line items
func GetQuotation(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var quotation model.Quotation
	result := database.GetDB().
		Preload("Client").
		Preload("Rooms").
		Preload("Rooms.Items").
		First(&quotation, id)
	if result.Error != nil {
		log.Warn("Quotation not found", zap.String("quotation_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Quotation not found"})
	}

	return c.JSON(http.StatusOK, quotation)
}

// CreateQuotation handles creating a new quotation in Draft status
func CreateQuotation(c echo.Context) error {
	log := logger.FromContext(c)

	var req QuotationRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	var client model.Client
	if result := database.GetDB().First(&client, req.ClientID); result.Error != nil {
		log.Warn("Client not found for quotation", zap.Uint("client_id", req.ClientID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Client not found"})
	}

	taxPercentage := defaultTaxPercentage
	if req.TaxPercentage != nil {
		taxPercentage = *req.TaxPercentage
	}

	quotation := model.Quotation{
		ClientID:      req.ClientID,
		Title:         req.Title,
		Status:        model.QuotationStatusDraft,
		DesignFeeType: model.DesignFeePercentage,
		TaxPercentage: taxPercentage,
	}
	if result := database.GetDB().Create(&quotation); result.Error != nil {
		log.Error("Failed to create quotation", zap.String("title", req.Title), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create quotation"})
	}

	prometheus.RecordQuotationOperation("create")
	log.Info("Quotation created",
		zap.Uint("quotation_id", quotation.ID),
		zap.Uint("client_id", quotation.ClientID),
		zap.String("title", quotation.Title))
	return c.JSON(http.StatusCreated, quotation)
}

// UpdateQuotation handles updating a quotation's header fields.
// total_amount is not writable here; it belongs to the aggregation engine
// and the explicit total save.
func UpdateQuotation(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req QuotationRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("quotation_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var quotation model.Quotation
	if result := database.GetDB().First(&quotation, id); result.Error != nil {
		log.Warn("Quotation not found for update", zap.String("quotation_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Quotation not found"})
	}

	if req.Title != "" {
		quotation.Title = req.Title
	}
	if req.ClientID != 0 && req.ClientID != quotation.ClientID {
		var client model.Client
		if result := database.GetDB().First(&client, req.ClientID); result.Error != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Client not found"})
		}
		quotation.ClientID = req.ClientID
	}
	if req.TaxPercentage != nil {
		quotation.TaxPercentage = *req.TaxPercentage
	}

	if result := database.GetDB().Save(&quotation); result.Error != nil {
		log.Error("Failed to update quotation", zap.String("quotation_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update quotation"})
	}

	prometheus.RecordQuotationOperation("update")
	return c.JSON(http.StatusOK, quotation)
}

// UpdateQuotationStatus handles quotation status transitions
func UpdateQuotationStatus(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req QuotationStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	switch req.Status {
	case model.QuotationStatusDraft, model.QuotationStatusPending,
		model.QuotationStatusApproved, model.QuotationStatusRejected:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	var quotation model.Quotation
	if result := database.GetDB().First(&quotation, id); result.Error != nil {
		log.Warn("Quotation not found for status update", zap.String("quotation_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Quotation not found"})
	}

	oldStatus := quotation.Status
	quotation.Status = req.Status
	if result := database.GetDB().Save(&quotation); result.Error != nil {
		log.Error("Failed to update quotation status", zap.String("quotation_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update quotation"})
	}

	prometheus.RecordQuotationOperation("status_change")
	log.Info("Quotation status updated",
		zap.String("quotation_id", id),
		zap.String("old_status", oldStatus),
		zap.String("new_status", quotation.Status))
	return c.JSON(http.StatusOK, quotation)
}

// SaveQuotationTotal persists the finalized grand total together with the
// labor and design-fee inputs it was computed from. Explicit user action;
// overwrites the live materials sum until the next line-item mutation.
func SaveQuotationTotal(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req QuotationTotalRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("quotation_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.DesignFeeType != model.DesignFeeFlat && req.DesignFeeType != model.DesignFeePercentage {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "design_fee_type must be flat or percentage"})
	}
	if req.TotalAmount < 0 || req.LaborCost < 0 || req.DesignFeeValue < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amounts must not be negative"})
	}

	var quotation model.Quotation
	if result := database.GetDB().First(&quotation, id); result.Error != nil {
		log.Warn("Quotation not found for total save", zap.String("quotation_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Quotation not found"})
	}

	result := database.GetDB().Model(&quotation).Updates(map[string]interface{}{
		"total_amount":     req.TotalAmount,
		"labor_cost":       req.LaborCost,
		"design_fee_type":  req.DesignFeeType,
		"design_fee_value": req.DesignFeeValue,
	})
	if result.Error != nil {
		log.Error("Failed to save quotation total", zap.String("quotation_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save quotation total"})
	}

	prometheus.RecordQuotationOperation("save_total")
	log.Info("Quotation total saved",
		zap.String("quotation_id", id),
		zap.Float64("total_amount", req.TotalAmount),
		zap.Float64("labor_cost", req.LaborCost),
		zap.String("design_fee_type", req.DesignFeeType))
	return c.JSON(http.StatusOK, quotation)
}

// GetQuotationSummary returns the quotation preview with a fresh pricing
// breakdown
func GetQuotationSummary(c echo.Context) error {
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
		log.Error("Failed to build quotation summary", zap.Uint64("quotation_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build quotation summary"})
	}

	return c.JSON(http.StatusOK, summary)
}

// DeleteQuotation handles deleting a quotation together with its rooms and
// line items. Rejected when a project was already created from it.
func DeleteQuotation(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var quotation model.Quotation
	if result := database.GetDB().First(&quotation, id); result.Error != nil {
		log.Warn("Quotation not found for deletion", zap.String("quotation_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Quotation not found"})
	}

	var projectCount int64
	database.GetDB().Model(&model.Project{}).Where("quotation_id = ?", quotation.ID).Count(&projectCount)
	if projectCount > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "Quotation has an associated project"})
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var roomIDs []uint
		if err := tx.Model(&model.Room{}).
			Where("quotation_id = ?", quotation.ID).
			Pluck("id", &roomIDs).Error; err != nil {
			return err
		}
		if len(roomIDs) > 0 {
			if err := tx.Where("room_id IN ?", roomIDs).Delete(&model.RoomLineItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quotation_id = ?", quotation.ID).Delete(&model.Room{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Quotation{}, quotation.ID).Error
	})
	if err != nil {
		log.Error("Failed to delete quotation", zap.String("quotation_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete quotation"})
	}

	prometheus.RecordQuotationOperation("delete")
	log.Info("Quotation deleted", zap.String("quotation_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Quotation deleted successfully"})
}

func quotationExportFilename(q *model.Quotation) string {
	return fmt.Sprintf("quotation-%d.xlsx", q.ID)
}
