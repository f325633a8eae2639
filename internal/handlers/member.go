package handlers

import (
	"strconv"

	"github.com/docgen/backend/internal/middleware"
	"github.com/docgen/backend/internal/services"
	"github.com/docgen/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MemberHandler struct {
	memberService *services.MemberService
}

func NewMemberHandler(db *gorm.DB) *MemberHandler {
	return &MemberHandler{
		memberService: services.NewMemberService(db),
	}
}

// List returns all members
// GET /member
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.memberService.FindAll()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, members, "members found", int64(len(members)))
}

// GetByID returns a member by id
// GET /member/:id
func (h *MemberHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid member id")
		return
	}

	member, err := h.memberService.FindByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, member, "member found")
}

// Update applies a partial update to a member
// PATCH /member/:id
func (h *MemberHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid member id")
		return
	}

	var req services.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.Update(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, member, "member updated")
}

// Delete soft-deletes the authenticated member after verifying the password
// DELETE /member
func (h *MemberHandler) Delete(c *gin.Context) {
	var req services.DeleteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.memberService.Remove(middleware.GetMemberID(c), &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil, "member deleted")
}

// GrantAccess looks up a member by email for project sharing
// POST /member/access
func (h *MemberHandler) GrantAccess(c *gin.Context) {
	var req services.ProjectAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.GrantProjectAccess(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, member, "member found")
}

// UpdatePassword changes the authenticated member's password
// PATCH /member/password/update
func (h *MemberHandler) UpdatePassword(c *gin.Context) {
	var req services.PasswordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.memberService.UpdatePassword(middleware.GetMemberID(c), &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil, "password updated")
}
