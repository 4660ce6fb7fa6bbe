package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"studiodesk/internal/model"
	"studiodesk/pkg/database"
	"studiodesk/pkg/logger"
)

// ExpenseRequest defines the structure for expense creation/update requests
type ExpenseRequest struct {
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Category    string  `json:"category"`
	ExpenseDate string  `json:"expense_date"`
}

// ListProjectExpenses handles retrieving a project's expenses
func ListProjectExpenses(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var project model.Project
	if result := database.GetDB().First(&project, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	var expenses []model.Expense
	result := database.GetDB().
		Where("project_id = ?", project.ID).
		Order("expense_date DESC").
		Find(&expenses)
	if result.Error != nil {
		log.Error("Failed to list expenses", zap.String("project_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve expenses"})
	}

	return c.JSON(http.StatusOK, expenses)
}

// CreateExpense handles recording an expense against a project's budget
func CreateExpense(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "description is required"})
	}
	if req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be greater than zero"})
	}

	var project model.Project
	if result := database.GetDB().First(&project, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Project not found"})
	}

	expenseDate := time.Now()
	if req.ExpenseDate != "" {
		parsed, err := parseDate(req.ExpenseDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "expense_date must be YYYY-MM-DD"})
		}
		expenseDate = *parsed
	}

	expense := model.Expense{
		ProjectID:   project.ID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		ExpenseDate: expenseDate,
	}
	if result := database.GetDB().Create(&expense); result.Error != nil {
		log.Error("Failed to create expense", zap.String("project_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create expense"})
	}

	log.Info("Expense recorded",
		zap.Uint("expense_id", expense.ID),
		zap.Uint("project_id", project.ID),
		zap.Float64("amount", expense.Amount))
	return c.JSON(http.StatusCreated, expense)
}

// UpdateExpense handles updating an expense
func UpdateExpense(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var expense model.Expense
	if result := database.GetDB().First(&expense, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Expense not found"})
	}

	if req.Description != "" {
		expense.Description = req.Description
	}
	if req.Amount != 0 {
		if req.Amount < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be greater than zero"})
		}
		expense.Amount = req.Amount
	}
	if req.Category != "" {
		expense.Category = req.Category
	}
	if req.ExpenseDate != "" {
		parsed, err := parseDate(req.ExpenseDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "expense_date must be YYYY-MM-DD"})
		}
		expense.ExpenseDate = *parsed
	}

	if result := database.GetDB().Save(&expense); result.Error != nil {
		log.Error("Failed to update expense", zap.String("expense_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update expense"})
	}

	return c.JSON(http.StatusOK, expense)
}

// DeleteExpense handles deleting an expense
func DeleteExpense(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Expense{}, id)
	if result.Error != nil {
		log.Error("Failed to delete expense", zap.String("expense_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete expense"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Expense not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Expense deleted successfully"})
}
