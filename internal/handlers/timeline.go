package handlers

import (
	"strconv"

	"github.com/docgen/backend/internal/services"
	"github.com/docgen/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TimelineHandler struct {
	timelineService *services.TimelineService
}

func NewTimelineHandler(db *gorm.DB) *TimelineHandler {
	return &TimelineHandler{
		timelineService: services.NewTimelineService(db),
	}
}

// ListByProject returns a project's timeline entries, most recent event first
// GET /timelines/projects?id=
func (h *TimelineHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	timelines, err := h.timelineService.ListByProject(uint(projectID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, timelines, "timelines found", int64(len(timelines)))
}

// Create adds a timeline entry to a project
// POST /timelines
func (h *TimelineHandler) Create(c *gin.Context) {
	var req services.CreateTimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	timeline, err := h.timelineService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, timeline, "timeline created")
}

// Update applies a partial update to a timeline entry
// PUT /timelines/:id
func (h *TimelineHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid timeline id")
		return
	}

	var req services.UpdateTimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	timeline, err := h.timelineService.Update(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, timeline, "timeline updated")
}

// Delete soft-deletes a timeline entry
// DELETE /timelines/:id
func (h *TimelineHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid timeline id")
		return
	}

	if err := h.timelineService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil, "timeline deleted")
}
