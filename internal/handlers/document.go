package handlers

import (
	"net/http"

	"github.com/docgen/backend/internal/config"
	"github.com/docgen/backend/internal/services"
	"github.com/docgen/backend/pkg/logger"
	"github.com/docgen/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DocumentHandler struct {
	documentService *services.DocumentService
}

func NewDocumentHandler(cfg *config.FastAPIConfig) *DocumentHandler {
	return &DocumentHandler{
		documentService: services.NewDocumentService(cfg),
	}
}

// CreateRequirement submits requirement text for document generation
// POST /document/requirement
func (h *DocumentHandler) CreateRequirement(c *gin.Context) {
	var req services.CreateRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.documentService.CreateRequirement(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result, "document generation requested")
}

// CreateFunctional forwards a functional document creation payload
// POST /document/functional
func (h *DocumentHandler) CreateFunctional(c *gin.Context) {
	h.createGeneric(c, services.KindFunctional)
}

// CreatePolicy forwards a policy document creation payload
// POST /document/policy
func (h *DocumentHandler) CreatePolicy(c *gin.Context) {
	h.createGeneric(c, services.KindPolicy)
}

func (h *DocumentHandler) createGeneric(c *gin.Context, kind string) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.documentService.CreateDocument(c.Request.Context(), kind, payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result, "document generation requested")
}

// GenerateQuestions asks the upstream for follow-up requirement questions
// POST /document/requirement/questions
func (h *DocumentHandler) GenerateQuestions(c *gin.Context) {
	var req services.RequirementQuestions
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.documentService.GenerateQuestions(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result, "questions generated")
}

// GetByID returns a document of the given kind
// GET /document/:kind/:id
func (h *DocumentHandler) GetByID(c *gin.Context) {
	kind := c.Param("kind")
	id := c.Param("id")
	ctx := c.Request.Context()

	var (
		doc interface{}
		err error
	)
	switch kind {
	case services.KindRequirement:
		doc, err = h.documentService.GetRequirement(ctx, id)
	case services.KindFunctional:
		doc, err = h.documentService.GetFunctional(ctx, id)
	case services.KindPolicy:
		doc, err = h.documentService.GetPolicy(ctx, id)
	default:
		response.BadRequest(c, "unknown document kind")
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, doc, "document found")
}

// Delete removes a document of the given kind
// DELETE /document/:kind/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documentService.Delete(c.Request.Context(), c.Param("kind"), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil, "document deleted")
}

// ListByUser returns all documents of a kind owned by a user
// GET /document/:kind/user/:userId
func (h *DocumentHandler) ListByUser(c *gin.Context) {
	docs, err := h.documentService.ListByUser(c.Request.Context(), c.Param("kind"), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, docs, "documents found", int64(len(docs)))
}

// ListByProject returns all documents of a kind attached to a project
// GET /document/:kind/project/:projectId
func (h *DocumentHandler) ListByProject(c *gin.Context) {
	docs, err := h.documentService.ListByProject(c.Request.Context(), c.Param("kind"), c.Param("projectId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, docs, "documents found", int64(len(docs)))
}

// DownloadExcel streams the document rendered as an Excel workbook
// GET /document/:kind/file/:id
func (h *DocumentHandler) DownloadExcel(c *gin.Context) {
	f, err := h.documentService.BuildExcel(c.Request.Context(), c.Param("kind"), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename=report.xlsx`)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		// headers are already out, nothing left to do but log
		logger.Error().Err(err).Msg("failed to stream workbook")
	}
}
