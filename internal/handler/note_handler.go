package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"studiodesk/internal/model"
	"studiodesk/pkg/database"
	"studiodesk/pkg/logger"
)

// NoteRequest defines the structure for note creation/update requests
type NoteRequest struct {
	Content string `json:"content" validate:"required"`
}

// ListProjectNotes handles retrieving a project's notes
func ListProjectNotes(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var project model.Project
	if result := database.GetDB().First(&project, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	var notes []model.ProjectNote
	result := database.GetDB().
		Where("project_id = ?", project.ID).
		Order("created_at DESC").
		Find(&notes)
	if result.Error != nil {
		log.Error("Failed to list notes", zap.String("project_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve notes"})
	}

	return c.JSON(http.StatusOK, notes)
}

// CreateNote handles adding a note to a project
func CreateNote(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content is required"})
	}

	var project model.Project
	if result := database.GetDB().First(&project, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	note := model.ProjectNote{
		ProjectID: project.ID,
		Content:   req.Content,
	}
	if result := database.GetDB().Create(&note); result.Error != nil {
		log.Error("Failed to create note", zap.String("project_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create note"})
	}

	return c.JSON(http.StatusCreated, note)
}

// UpdateNote handles updating a note's content
func UpdateNote(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content is required"})
	}

	var note model.ProjectNote
	if result := database.GetDB().First(&note, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Note not found"})
	}

	note.Content = req.Content
	if result := database.GetDB().Save(&note); result.Error != nil {
		log.Error("Failed to update note", zap.String("note_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update note"})
	}

	return c.JSON(http.StatusOK, note)
}

// DeleteNote handles deleting a note
func DeleteNote(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.ProjectNote{}, id)
	if result.Error != nil {
		log.Error("Failed to delete note", zap.String("note_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete note"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Note not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Note deleted successfully"})
}
