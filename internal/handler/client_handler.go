package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"studiodesk/internal/model"
	"studiodesk/pkg/database"
	"studiodesk/pkg/logger"
)

// ClientRequest defines the structure for client creation/update requests
type ClientRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// ListClients handles retrieving all clients
func ListClients(c echo.Context) error {
	log := logger.FromContext(c)

	var clients []model.Client
	query := database.GetDB().Order("name")

	if search := c.QueryParam("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	if result := query.Find(&clients); result.Error != nil {
		log.Error("Failed to list clients", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve clients"})
	}

	return c.JSON(http.StatusOK, clients)
}

// GetClient handles retrieving a single client by ID
func GetClient(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var client model.Client
	if result := database.GetDB().First(&client, id); result.Error != nil {
		log.Warn("Client not found", zap.String("client_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Client not found"})
	}

	return c.JSON(http.StatusOK, client)
}

// CreateClient handles creating a new client
func CreateClient(c echo.Context) error {
	log := logger.FromContext(c)

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	client := model.Client{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}
	if result := database.GetDB().Create(&client); result.Error != nil {
		log.Error("Failed to create client", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create client"})
	}

	log.Info("Client created", zap.Uint("client_id", client.ID), zap.String("name", client.Name))
	return c.JSON(http.StatusCreated, client)
}

// UpdateClient handles updating an existing client
func UpdateClient(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("client_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var client model.Client
	if result := database.GetDB().First(&client, id); result.Error != nil {
		log.Warn("Client not found for update", zap.String("client_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Client not found"})
	}

	client.Name = req.Name
	client.Email = req.Email
	client.Phone = req.Phone
	client.Address = req.Address
	client.Notes = req.Notes

	if result := database.GetDB().Save(&client); result.Error != nil {
		log.Error("Failed to update client", zap.String("client_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update client"})
	}

	return c.JSON(http.StatusOK, client)
}

// DeleteClient handles deleting a client (soft delete)
func DeleteClient(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Client{}, id)
	if result.Error != nil {
		log.Error("Failed to delete client", zap.String("client_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete client"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Client not found"})
	}

	log.Info("Client deleted", zap.String("client_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Client deleted successfully"})
}
