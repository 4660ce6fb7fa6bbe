package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"studiodesk/internal/model"
	"studiodesk/pkg/database"
	"studiodesk/pkg/logger"
)

// ProjectRequest defines the structure for project creation/update requests.
// Projects are created from an approved quotation; the budget is snapshotted
// from the quotation's total_amount at creation time.
type ProjectRequest struct {
	QuotationID uint   `json:"quotation_id" validate:"required"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func validProjectStatus(status string) bool {
	switch status {
	case model.ProjectStatusPlanning, model.ProjectStatusInProgress,
		model.ProjectStatusOnHold, model.ProjectStatusCompleted:
		return true
	}
	return false
}

// ListProjects handles retrieving all projects with optional status filtering
func ListProjects(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Preload("Quotation").Order("updated_at DESC")
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var projects []model.Project
	if result := query.Find(&projects); result.Error != nil {
		log.Error("Failed to list projects", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve projects"})
	}

	return c.JSON(http.StatusOK, projects)
}

// GetProject handles retrieving a single project by ID
func GetProject(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var project model.Project
	result := database.GetDB().Preload("Quotation").Preload("Quotation.Client").First(&project, id)
	if result.Error != nil {
		log.Warn("Project not found", zap.String("project_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	return c.JSON(http.StatusOK, project)
}

// CreateProject converts an approved quotation into a project
func CreateProject(c echo.Context) error {
	log := logger.FromContext(c)

	var req ProjectRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var quotation model.Quotation
	if result := database.GetDB().First(&quotation, req.QuotationID); result.Error != nil {
		log.Warn("Quotation not found for project creation", zap.Uint("quotation_id", req.QuotationID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Quotation not found"})
	}
	if quotation.Status != model.QuotationStatusApproved {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Only approved quotations can be converted to projects"})
	}

	var count int64
	database.GetDB().Model(&model.Project{}).Where("quotation_id = ?", quotation.ID).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "Quotation already has a project"})
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be YYYY-MM-DD"})
	}

	name := req.Name
	if name == "" {
		name = quotation.Title
	}

	project := model.Project{
		QuotationID: quotation.ID,
		Name:        name,
		Status:      model.ProjectStatusPlanning,
		// Snapshot; later quotation recomputation does not re-sync it.
		Budget:    quotation.TotalAmount,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if result := database.GetDB().Create(&project); result.Error != nil {
		log.Error("Failed to create project", zap.Uint("quotation_id", quotation.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create project"})
	}

	log.Info("Project created from quotation",
		zap.Uint("project_id", project.ID),
		zap.Uint("quotation_id", quotation.ID),
		zap.Float64("budget", project.Budget))
	return c.JSON(http.StatusCreated, project)
}

// UpdateProject handles updating a project's fields. The budget snapshot is
// not writable.
func UpdateProject(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req ProjectRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("project_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var project model.Project
	if result := database.GetDB().First(&project, id); result.Error != nil {
		log.Warn("Project not found for update", zap.String("project_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Status != "" {
		if !validProjectStatus(req.Status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		project.Status = req.Status
	}
	if req.StartDate != "" {
		startDate, err := parseDate(req.StartDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be YYYY-MM-DD"})
		}
		project.StartDate = startDate
	}
	if req.EndDate != "" {
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be YYYY-MM-DD"})
		}
		project.EndDate = endDate
	}

	if result := database.GetDB().Save(&project); result.Error != nil {
		log.Error("Failed to update project", zap.String("project_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update project"})
	}

	return c.JSON(http.StatusOK, project)
}

// DeleteProject handles deleting a project together with its tasks, expenses
// and notes
func DeleteProject(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var project model.Project
	if result := database.GetDB().First(&project, id); result.Error != nil {
		log.Warn("Project not found for deletion", zap.String("project_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&model.Expense{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&model.ProjectNote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, project.ID).Error
	})
	if err != nil {
		log.Error("Failed to delete project", zap.String("project_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete project"})
	}

	log.Info("Project deleted", zap.String("project_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Project deleted successfully"})
}
