package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"studiodesk/internal/aggregate"
	"studiodesk/internal/model"
	"studiodesk/pkg/database"
	"studiodesk/pkg/logger"
	"studiodesk/prometheus"
)

// RoomMaterialRequest defines the structure for adding an item to a room.
// Either material_id references a catalog item, or the custom fields
// description, unit and rate are required.
type RoomMaterialRequest struct {
	MaterialID    *uint   `json:"material_id"`
	Quantity      float64 `json:"quantity" validate:"required,gt=0"`
	Description   string  `json:"description"`
	Unit          string  `json:"unit"`
	Rate          float64 `json:"rate"`
	Specification string  `json:"specification"`
	SaveToCatalog bool    `json:"saveToCatalog"`
}

// RoomMaterialUpdateRequest defines the structure for partial line-item updates
type RoomMaterialUpdateRequest struct {
	Quantity      *float64 `json:"quantity"`
	Rate          *float64 `json:"rate"`
	Description   *string  `json:"description"`
	Specification *string  `json:"specification"`
}

// lineItemError maps aggregation engine errors onto HTTP responses
func lineItemError(c echo.Context, err error) error {
	log := logger.FromContext(c)

	switch {
	case aggregate.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, aggregate.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	case errors.Is(err, aggregate.ErrCatalogItemNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Catalog item not found"})
	case errors.Is(err, aggregate.ErrLineItemNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Line item not found"})
	case errors.Is(err, aggregate.ErrDuplicateCatalogItem):
		return c.JSON(http.StatusConflict, echo.Map{"error": "Catalog item already added to this room"})
	default:
		log.Error("Line item operation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to process line item"})
	}
}

// ListRoomMaterials handles retrieving all line items of a room
func ListRoomMaterials(c echo.Context) error {
	log := logger.FromContext(c)
	roomID := c.Param("id")

	var room model.Room
	if result := database.GetDB().First(&room, roomID); result.Error != nil {
		log.Warn("Room not found", zap.String("room_id", roomID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}

	var items []model.RoomLineItem
	result := database.GetDB().
		Where("room_id = ?", room.ID).
		Order("id").
		Find(&items)
	if result.Error != nil {
		log.Error("Failed to list room materials", zap.String("room_id", roomID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve room materials"})
	}

	return c.JSON(http.StatusOK, items)
}

// AddRoomMaterial handles placing a catalog or custom item into a room.
// The aggregation engine recomputes room and quotation totals in the same
// transaction, so an immediate re-fetch observes fresh aggregates.
func AddRoomMaterial(c echo.Context) error {
	log := logger.FromContext(c)
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	var req RoomMaterialRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackAggregation()(time.Now())
	item, err := aggregate.AddLineItem(database.GetDB(), uint(roomID), aggregate.AddInput{
		CatalogItemID: req.MaterialID,
		Name:          req.Description,
		Specification: req.Specification,
		Unit:          req.Unit,
		Rate:          req.Rate,
		Quantity:      req.Quantity,
		SaveToCatalog: req.SaveToCatalog,
	})
	if err != nil {
		return lineItemError(c, err)
	}

	prometheus.RecordLineItemOperation("create")
	log.Info("Line item added",
		zap.Uint("line_item_id", item.ID),
		zap.Uint64("room_id", roomID),
		zap.Float64("total", item.Total))
	return c.JSON(http.StatusCreated, item)
}

// UpdateRoomMaterial handles a partial line-item update followed by total
// recomputation
func UpdateRoomMaterial(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid line item id"})
	}

	var req RoomMaterialUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackAggregation()(time.Now())
	item, err := aggregate.UpdateLineItem(database.GetDB(), uint(id), aggregate.UpdatePatch{
		Quantity:      req.Quantity,
		Rate:          req.Rate,
		Name:          req.Description,
		Specification: req.Specification,
	})
	if err != nil {
		return lineItemError(c, err)
	}

	prometheus.RecordLineItemOperation("update")
	log.Info("Line item updated",
		zap.Uint64("line_item_id", id),
		zap.Float64("total", item.Total))
	return c.JSON(http.StatusOK, item)
}

// DeleteRoomMaterial handles removing a line item and recomputing its former
// room's totals
func DeleteRoomMaterial(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid line item id"})
	}

	defer prometheus.TrackAggregation()(time.Now())
	if err := aggregate.DeleteLineItem(database.GetDB(), uint(id)); err != nil {
		return lineItemError(c, err)
	}

	prometheus.RecordLineItemOperation("delete")
	log.Info("Line item deleted", zap.Uint64("line_item_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Material removed successfully"})
}
