package handlers

import (
	"strconv"

	"github.com/docgen/backend/internal/middleware"
	"github.com/docgen/backend/internal/services"
	"github.com/docgen/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	rawService     *services.ProjectRawService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
		rawService:     services.NewProjectRawService(db),
	}
}

// List returns the projects of a member, newest first
// GET /projects?memberId=
func (h *ProjectHandler) List(c *gin.Context) {
	memberID, err := memberIDFromQueryOrToken(c)
	if err != nil {
		response.BadRequest(c, "invalid member id")
		return
	}

	projects, err := h.projectService.ListByMember(memberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, projects, "projects found", int64(len(projects)))
}

// GetByID returns a project with its hashtags
// GET /projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	project, err := h.projectService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project, "project found")
}

// Create creates a project with its initial hashtag set
// POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, project, "project created")
}

// Update applies a partial update; a non-nil hashtag list replaces the set
// PUT /projects/:id
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

	project, err := h.projectService.Update(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project, "project updated")
}

// Delete soft-deletes a project with its timelines and hashtag links
// DELETE /projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	if err := h.projectService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil, "project deleted")
}

// RawList returns a member's projects via the raw SQL path
// GET /projects/raw/:memberId
func (h *ProjectHandler) RawList(c *gin.Context) {
	memberID, err := strconv.ParseUint(c.Param("memberId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid member id")
		return
	}

	projects, err := h.rawService.ListByMember(uint(memberID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, projects, "projects found", int64(len(projects)))
}

// RawGetByID returns a project via the raw SQL path
// GET /projects/raw/project/:id
func (h *ProjectHandler) RawGetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	project, err := h.rawService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project, "project found")
}

// RawCreate creates a project via the raw SQL path
// POST /projects/raw
func (h *ProjectHandler) RawCreate(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.rawService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, project, "project created")
}

// RawUpdate updates a project via the raw SQL path
// PUT /projects/raw/:id
func (h *ProjectHandler) RawUpdate(c *gin.Context) {
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

	project, err := h.rawService.Update(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project, "project updated")
}

// RawDelete soft-deletes a project via the raw SQL path
// DELETE /projects/raw/:id
func (h *ProjectHandler) RawDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	if err := h.rawService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil, "project deleted")
}

// memberIDFromQueryOrToken prefers the memberId query parameter and falls
// back to the authenticated member.
func memberIDFromQueryOrToken(c *gin.Context) (uint, error) {
	raw := c.Query("memberId")
	if raw == "" {
		return middleware.GetMemberID(c), nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
