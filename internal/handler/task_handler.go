package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"studiodesk/internal/model"
	"studiodesk/pkg/database"
	"studiodesk/pkg/logger"
)

// TaskRequest defines the structure for task creation/update requests
type TaskRequest struct {
	Title   string `json:"title" validate:"required"`
	Status  string `json:"status"`
	DueDate string `json:"due_date"`
}

func validTaskStatus(status string) bool {
	switch status {
	case model.TaskStatusPending, model.TaskStatusInProgress, model.TaskStatusDone:
		return true
	}
	return false
}

// ListProjectTasks handles retrieving a project's tasks
func ListProjectTasks(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var project model.Project
	if result := database.GetDB().First(&project, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	var tasks []model.Task
	if result := database.GetDB().Where("project_id = ?", project.ID).Order("id").Find(&tasks); result.Error != nil {
		log.Error("Failed to list tasks", zap.String("project_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve tasks"})
	}

	return c.JSON(http.StatusOK, tasks)
}

// CreateTask handles adding a task to a project
func CreateTask(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	var project model.Project
	if result := database.GetDB().First(&project, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	status := req.Status
	if status == "" {
		status = model.TaskStatusPending
	} else if !validTaskStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "due_date must be YYYY-MM-DD"})
	}

	task := model.Task{
		ProjectID: project.ID,
		Title:     req.Title,
		Status:    status,
		DueDate:   dueDate,
	}
	if result := database.GetDB().Create(&task); result.Error != nil {
		log.Error("Failed to create task", zap.String("project_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create task"})
	}

	log.Info("Task created", zap.Uint("task_id", task.ID), zap.Uint("project_id", project.ID))
	return c.JSON(http.StatusCreated, task)
}

// UpdateTask handles updating a task
func UpdateTask(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var task model.Task
	if result := database.GetDB().First(&task, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Task not found"})
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Status != "" {
		if !validTaskStatus(req.Status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		task.Status = req.Status
	}
	if req.DueDate != "" {
		dueDate, err := parseDate(req.DueDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "due_date must be YYYY-MM-DD"})
		}
		task.DueDate = dueDate
	}

	if result := database.GetDB().Save(&task); result.Error != nil {
		log.Error("Failed to update task", zap.String("task_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update task"})
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles deleting a task
func DeleteTask(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Task{}, id)
	if result.Error != nil {
		log.Error("Failed to delete task", zap.String("task_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete task"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Task not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Task deleted successfully"})
}
