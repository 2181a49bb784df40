package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inexss/crm-backend/internal/metrics"
	"github.com/inexss/crm-backend/internal/middleware"
	"github.com/inexss/crm-backend/internal/services"
	"github.com/inexss/crm-backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
	}
}

// List returns paginated projects
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	var req services.ProjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actor := middleware.GetActor(c)
	resp, err := h.projectService.List(actor, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}

// GetByID returns a project by ID
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	actor := middleware.GetActor(c)
	project, err := h.projectService.GetByID(actor, uint(id))
	if err != nil {
		recordDenial(err, "project")
		response.Error(c, err)
		return
	}

	response.Success(c, project)
}

// Create creates a new project
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actor := middleware.GetActor(c)
	project, err := h.projectService.Create(actor, &req)
	if err != nil {
		recordDenial(err, "project")
		response.Error(c, err)
		return
	}

	metrics.RecordEntityOperation("project", "create")
	response.Created(c, project)
}

// Update updates a project
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actor := middleware.GetActor(c)
	project, err := h.projectService.Update(actor, uint(id), &req)
	if err != nil {
		recordDenial(err, "project")
		response.Error(c, err)
		return
	}

	metrics.RecordEntityOperation("project", "update")
	response.Success(c, project)
}

// Delete deletes a project
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	actor := middleware.GetActor(c)
	if err := h.projectService.Delete(actor, uint(id)); err != nil {
		recordDenial(err, "project")
		response.Error(c, err)
		return
	}

	metrics.RecordEntityOperation("project", "delete")
	response.Success(c, gin.H{"message": "project deleted successfully"})
}
