package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"studiodesk/internal/handler"
	"studiodesk/internal/model"
	"studiodesk/internal/testutil"
)

func approvedQuotation(t *testing.T, db *gorm.DB, title string, total float64) *model.Quotation {
	t.Helper()
	q := testutil.CreateQuotation(t, db, title)
	require.NoError(t, db.Model(&model.Quotation{}).
		Where("id = ?", q.ID).
		UpdateColumns(map[string]interface{}{
			"status":       model.QuotationStatusApproved,
			"total_amount": total,
		}).Error)
	q.Status = model.QuotationStatusApproved
	q.TotalAmount = total
	return q
}

func TestCreateProjectFromApprovedQuotation(t *testing.T) {
	db := testutil.SetupHandlerTest(t)
	q := approvedQuotation(t, db, "Villa Renovation", 250000)

	body := fmt.Sprintf(`{"quotation_id": %d, "start_date": "2026-09-01"}`, q.ID)
	c, rec := newJSONContext(t, http.MethodPost, "/api/projects", body)

	require.NoError(t, handler.CreateProject(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var project model.Project
	decodeBody(t, rec, &project)
	assert.Equal(t, "Villa Renovation", project.Name)
	assert.Equal(t, model.ProjectStatusPlanning, project.Status)
	assert.Equal(t, 250000.0, project.Budget)
	require.NotNil(t, project.StartDate)
	assert.Equal(t, "2026-09-01", project.StartDate.Format("2006-01-02"))
}

func TestCreateProjectRequiresApproval(t *testing.T) {
	db := testutil.SetupHandlerTest(t)
	q := testutil.CreateQuotation(t, db, "Still Draft")

	c, rec := newJSONContext(t, http.MethodPost, "/api/projects",
		fmt.Sprintf(`{"quotation_id": %d}`, q.ID))
	require.NoError(t, handler.CreateProject(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProjectDuplicateQuotation(t *testing.T) {
	db := testutil.SetupHandlerTest(t)
	q := approvedQuotation(t, db, "One Shot", 50000)

	body := fmt.Sprintf(`{"quotation_id": %d}`, q.ID)
	c, rec := newJSONContext(t, http.MethodPost, "/api/projects", body)
	require.NoError(t, handler.CreateProject(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newJSONContext(t, http.MethodPost, "/api/projects", body)
	require.NoError(t, handler.CreateProject(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRecreateProjectAfterDelete(t *testing.T) {
	db := testutil.SetupHandlerTest(t)
	q := approvedQuotation(t, db, "Second Chance", 80000)

	body := fmt.Sprintf(`{"quotation_id": %d}`, q.ID)
	c, rec := newJSONContext(t, http.MethodPost, "/api/projects", body)
	require.NoError(t, handler.CreateProject(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var project model.Project
	decodeBody(t, rec, &project)

	c, rec = newJSONContext(t, http.MethodDelete, "/api/projects/1", "")
	setParam(c, "id", project.ID)
	require.NoError(t, handler.DeleteProject(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// The deleted row must not linger and block the unique quotation index.
	c, rec = newJSONContext(t, http.MethodPost, "/api/projects", body)
	require.NoError(t, handler.CreateProject(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateProjectUnknownQuotation(t *testing.T) {
	testutil.SetupHandlerTest(t)

	c, rec := newJSONContext(t, http.MethodPost, "/api/projects",
		`{"quotation_id": 9999}`)
	require.NoError(t, handler.CreateProject(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProjectBadDate(t *testing.T) {
	db := testutil.SetupHandlerTest(t)
	q := approvedQuotation(t, db, "Bad Date", 1000)

	c, rec := newJSONContext(t, http.MethodPost, "/api/projects",
		fmt.Sprintf(`{"quotation_id": %d, "start_date": "01/09/2026"}`, q.ID))
	require.NoError(t, handler.CreateProject(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProjectStatus(t *testing.T) {
	db := testutil.SetupHandlerTest(t)
	q := approvedQuotation(t, db, "Progressing", 10000)
	project := &model.Project{QuotationID: q.ID, Name: "Progressing", Status: model.ProjectStatusPlanning, Budget: 10000}
	require.NoError(t, db.Create(project).Error)

	c, rec := newJSONContext(t, http.MethodPut, "/api/projects/1",
		`{"status": "in_progress"}`)
	setParam(c, "id", project.ID)
	require.NoError(t, handler.UpdateProject(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Project
	require.NoError(t, db.First(&updated, project.ID).Error)
	assert.Equal(t, model.ProjectStatusInProgress, updated.Status)
	assert.Equal(t, 10000.0, updated.Budget)

	c, rec = newJSONContext(t, http.MethodPut, "/api/projects/1",
		`{"status": "abandoned"}`)
	setParam(c, "id", project.ID)
	require.NoError(t, handler.UpdateProject(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteProjectCascades(t *testing.T) {
	db := testutil.SetupHandlerTest(t)
	q := approvedQuotation(t, db, "Teardown", 10000)
	project := &model.Project{QuotationID: q.ID, Name: "Teardown", Status: model.ProjectStatusInProgress, Budget: 10000}
	require.NoError(t, db.Create(project).Error)

	require.NoError(t, db.Create(&model.Task{ProjectID: project.ID, Title: "Demolition", Status: model.TaskStatusPending}).Error)
	require.NoError(t, db.Create(&model.Expense{ProjectID: project.ID, Description: "Skip hire", Amount: 400}).Error)
	require.NoError(t, db.Create(&model.ProjectNote{ProjectID: project.ID, Content: "Check permits"}).Error)

	c, rec := newJSONContext(t, http.MethodDelete, "/api/projects/1", "")
	setParam(c, "id", project.ID)
	require.NoError(t, handler.DeleteProject(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var tasks, expenses, notes int64
	db.Model(&model.Task{}).Where("project_id = ?", project.ID).Count(&tasks)
	db.Model(&model.Expense{}).Where("project_id = ?", project.ID).Count(&expenses)
	db.Model(&model.ProjectNote{}).Where("project_id = ?", project.ID).Count(&notes)
	assert.Equal(t, int64(0), tasks)
	assert.Equal(t, int64(0), expenses)
	assert.Equal(t, int64(0), notes)
}
