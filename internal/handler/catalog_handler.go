package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"studiodesk/internal/model"
	"studiodesk/pkg/database"
	"studiodesk/pkg/logger"
)

// CatalogItemRequest defines the structure for catalog creation/update requests
type CatalogItemRequest struct {
	Name               string  `json:"name" validate:"required"`
	Unit               string  `json:"unit" validate:"required"`
	DefaultRate        float64 `json:"default_rate" validate:"required,gt=0"`
	Category           string  `json:"category"`
	DefaultDescription string  `json:"default_description"`
}

// ListCatalogItems handles retrieving the materials catalog with optional filtering
func ListCatalogItems(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Order("name")
	if category := c.QueryParam("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.QueryParam("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var items []model.CatalogItem
	if result := query.Find(&items); result.Error != nil {
		log.Error("Failed to list catalog items", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve catalog items"})
	}

	return c.JSON(http.StatusOK, items)
}

// GetCatalogItem handles retrieving a single catalog item by ID
func GetCatalogItem(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var item model.CatalogItem
	if result := database.GetDB().First(&item, id); result.Error != nil {
		log.Warn("Catalog item not found", zap.String("catalog_item_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Catalog item not found"})
	}

	return c.JSON(http.StatusOK, item)
}

// CreateCatalogItem handles creating a new catalog item
func CreateCatalogItem(c echo.Context) error {
	log := logger.FromContext(c)

	var req CatalogItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == "" || req.Unit == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and unit are required"})
	}
	if req.DefaultRate <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "default_rate must be greater than zero"})
	}

	item := model.CatalogItem{
		Name:               req.Name,
		Unit:               req.Unit,
		DefaultRate:        req.DefaultRate,
		Category:           req.Category,
		DefaultDescription: req.DefaultDescription,
	}
	if result := database.GetDB().Create(&item); result.Error != nil {
		log.Error("Failed to create catalog item", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create catalog item"})
	}

	log.Info("Catalog item created",
		zap.Uint("catalog_item_id", item.ID),
		zap.String("name", item.Name),
		zap.Float64("default_rate", item.DefaultRate))
	return c.JSON(http.StatusCreated, item)
}

// UpdateCatalogItem handles updating a catalog item. Existing room line
// items keep the values they snapshotted at insertion time.
func UpdateCatalogItem(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req CatalogItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("catalog_item_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var item model.CatalogItem
	if result := database.GetDB().First(&item, id); result.Error != nil {
		log.Warn("Catalog item not found for update", zap.String("catalog_item_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Catalog item not found"})
	}

	if req.DefaultRate <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "default_rate must be greater than zero"})
	}

	item.Name = req.Name
	item.Unit = req.Unit
	item.DefaultRate = req.DefaultRate
	item.Category = req.Category
	item.DefaultDescription = req.DefaultDescription

	if result := database.GetDB().Save(&item); result.Error != nil {
		log.Error("Failed to update catalog item", zap.String("catalog_item_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update catalog item"})
	}

	return c.JSON(http.StatusOK, item)
}

// DeleteCatalogItem handles deleting a catalog item (soft delete).
// Line items referencing it are unaffected; they own their copied data.
func DeleteCatalogItem(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.CatalogItem{}, id)
	if result.Error != nil {
		log.Error("Failed to delete catalog item", zap.String("catalog_item_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete catalog item"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Catalog item not found"})
	}

	log.Info("Catalog item deleted", zap.String("catalog_item_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Catalog item deleted successfully"})
}
