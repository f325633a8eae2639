package handlers

import (
	"strconv"

	"github.com/docgen/backend/internal/services"
	"github.com/docgen/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NoticeHandler struct {
	noticeService *services.NoticeService
}

func NewNoticeHandler(db *gorm.DB) *NoticeHandler {
	return &NoticeHandler{
		noticeService: services.NewNoticeService(db),
	}
}

// List returns one page of notices, newest post first
// GET /notices?page=&size=
func (h *NoticeHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	notices, total, err := h.noticeService.List(page, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, notices, "notices found", total)
}

// GetByID returns a notice by id
// GET /notices/:noticeId
func (h *NoticeHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("noticeId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid notice id")
		return
	}

	notice, err := h.noticeService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, notice, "notice found")
}

// Create creates a notice
// POST /notices
func (h *NoticeHandler) Create(c *gin.Context) {
	var req services.CreateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	notice, err := h.noticeService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, notice, "notice created")
}

// Update applies a partial update to a notice
// PUT /notices/:noticeId
func (h *NoticeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("noticeId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid notice id")
		return
	}

	var req services.UpdateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	notice, err := h.noticeService.Update(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, notice, "notice updated")
}

// Delete soft-deletes a notice
// DELETE /notices/:noticeId
func (h *NoticeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("noticeId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid notice id")
		return
	}

	if err := h.noticeService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil, "notice deleted")
}
