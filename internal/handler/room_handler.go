package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"studiodesk/internal/aggregate"
	"studiodesk/internal/model"
	"studiodesk/pkg/database"
	"studiodesk/pkg/logger"
)

// RoomRequest defines the structure for room creation requests
type RoomRequest struct {
	Name   string  `json:"name" validate:"required"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Notes  string  `json:"notes"`
}

// RoomUpdateRequest defines the structure for partial room updates.
// Nil fields keep their prior value.
type RoomUpdateRequest struct {
	Name   *string  `json:"name"`
	Length *float64 `json:"length"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
	Notes  *string  `json:"notes"`
}

// ListQuotationRooms handles retrieving a quotation's rooms with their
// recomputed totals and line items
func ListQuotationRooms(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var quotation model.Quotation
	if result := database.GetDB().First(&quotation, id); result.Error != nil {
		log.Warn("Quotation not found", zap.String("quotation_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Quotation not found"})
	}

	var rooms []model.Room
	result := database.GetDB().
		Preload("Items").
		Where("quotation_id = ?", quotation.ID).
		Order("id").
		Find(&rooms)
	if result.Error != nil {
		log.Error("Failed to list rooms", zap.String("quotation_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve rooms"})
	}

	return c.JSON(http.StatusOK, rooms)
}

// CreateRoom handles adding a room to a quotation
func CreateRoom(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req RoomRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	var quotation model.Quotation
	if result := database.GetDB().First(&quotation, id); result.Error != nil {
		log.Warn("Quotation not found for room creation", zap.String("quotation_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Quotation not found"})
	}

	room := model.Room{
		QuotationID: quotation.ID,
		Name:        req.Name,
		Length:      req.Length,
		Width:       req.Width,
		Height:      req.Height,
		Notes:       req.Notes,
	}
	if result := database.GetDB().Create(&room); result.Error != nil {
		log.Error("Failed to create room", zap.String("quotation_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create room"})
	}

	log.Info("Room created",
		zap.Uint("room_id", room.ID),
		zap.Uint("quotation_id", quotation.ID),
		zap.String("name", room.Name))
	return c.JSON(http.StatusCreated, room)
}

// UpdateRoom handles updating a room's descriptive fields.
// room_total is derived and cannot be written here.
func UpdateRoom(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req RoomUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("room_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var room model.Room
	if result := database.GetDB().First(&room, id); result.Error != nil {
		log.Warn("Room not found for update", zap.String("room_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}

	if req.Name != nil {
		if *req.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must not be empty"})
		}
		room.Name = *req.Name
	}
	if req.Length != nil {
		room.Length = *req.Length
	}
	if req.Width != nil {
		room.Width = *req.Width
	}
	if req.Height != nil {
		room.Height = *req.Height
	}
	if req.Notes != nil {
		room.Notes = *req.Notes
	}

	if result := database.GetDB().Save(&room); result.Error != nil {
		log.Error("Failed to update room", zap.String("room_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update room"})
	}

	return c.JSON(http.StatusOK, room)
}

// DeleteRoom handles removing a room, its line items and the room's
// contribution to the quotation total, all in one transaction
func DeleteRoom(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var room model.Room
	if result := database.GetDB().First(&room, id); result.Error != nil {
		log.Warn("Room not found for deletion", zap.String("room_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", room.ID).Delete(&model.RoomLineItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Room{}, room.ID).Error; err != nil {
			return err
		}
		return aggregate.RecomputeQuotationTotal(tx, room.QuotationID)
	})
	if err != nil {
		log.Error("Failed to delete room", zap.String("room_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete room"})
	}

	log.Info("Room deleted",
		zap.String("room_id", id),
		zap.Uint("quotation_id", room.QuotationID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Room deleted successfully"})
}
