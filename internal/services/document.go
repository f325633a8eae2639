package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/docgen/backend/internal/config"
	"github.com/docgen/backend/internal/utils"
	"github.com/docgen/backend/pkg/response"
	"github.com/go-resty/resty/v2"
	"github.com/xuri/excelize/v2"
)

// Document kinds served by the external generation service.
const (
	KindRequirement = "requirement"
	KindFunctional  = "functional"
	KindPolicy      = "policy"
)

// ValidKind reports whether kind names a supported document kind.
func ValidKind(kind string) bool {
	switch kind {
	case KindRequirement, KindFunctional, KindPolicy:
		return true
	}
	return false
}

// DocumentService proxies document operations to the external generation
// service. Calls are single request/await with no retry; any upstream
// failure surfaces as a bad gateway.
type DocumentService struct {
	client *resty.Client
}

func NewDocumentService(cfg *config.FastAPIConfig) *DocumentService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &DocumentService{client: client}
}

type DocumentIDResponse struct {
	DocumentID string `json:"document_id"`
}

type CreateRequirementRequest struct {
	OwnerID     string `json:"owner_id" binding:"required"`
	ProjectID   string `json:"project_id" binding:"required"`
	Requirement string `json:"requirement" binding:"required"`
}

type RequirementQuestions struct {
	Questions []string `json:"questions" binding:"required"`
}

type RequirementDetail struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Requirement struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Details     []RequirementDetail `json:"details"`
}

type RequirementMetadata struct {
	RequirementSummary string `json:"requirement_summary"`
}

type RequirementDocument struct {
	Name     string              `json:"name"`
	Metadata RequirementMetadata `json:"metadata"`
	Data     []Requirement       `json:"data"`
}

type RequirementDocumentResponse struct {
	ID         string              `json:"id"`
	OwnerID    string              `json:"owner_id"`
	ProjectID  string              `json:"project_id"`
	Status     string              `json:"status"`
	CreateDate time.Time           `json:"create_date"`
	Document   RequirementDocument `json:"document"`
}

type FunctionalDocument struct {
	Name string        `json:"name"`
	Data []Requirement `json:"data"`
}

type FunctionalDocumentResponse struct {
	ID         string             `json:"id"`
	OwnerID    string             `json:"owner_id"`
	ProjectID  string             `json:"project_id"`
	Status     string             `json:"status"`
	CreateDate time.Time          `json:"create_date"`
	Document   FunctionalDocument `json:"document"`
}

type PolicyRole struct {
	Role        string `json:"role"`
	Create      bool   `json:"create"`
	Read        bool   `json:"read"`
	Update      bool   `json:"update"`
	Delete      bool   `json:"delete"`
	Description string `json:"description"`
}

type Policy struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Roles       []PolicyRole `json:"roles"`
}

type PolicyDocument struct {
	Name string   `json:"name"`
	Data []Policy `json:"data"`
}

type PolicyDocumentResponse struct {
	ID         string         `json:"id"`
	OwnerID    string         `json:"owner_id"`
	ProjectID  string         `json:"project_id"`
	Status     string         `json:"status"`
	CreateDate time.Time      `json:"create_date"`
	Document   PolicyDocument `json:"document"`
}

// CreateRequirement submits the requirement text for generation and returns
// the upstream document id.
func (s *DocumentService) CreateRequirement(ctx context.Context, req *CreateRequirementRequest) (*DocumentIDResponse, error) {
	var out DocumentIDResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/api/document/requirement")
	if err := upstreamErr(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateDocument forwards an untyped creation payload for the functional and
// policy kinds; the upstream owns the schema.
func (s *DocumentService) CreateDocument(ctx context.Context, kind string, payload map[string]interface{}) (json.RawMessage, error) {
	if !ValidKind(kind) {
		return nil, response.NewBadRequest(fmt.Sprintf("unknown document kind %q", kind))
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/api/document/" + kind)
	if err := upstreamErr(resp, err); err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Body()), nil
}

// GenerateQuestions asks the upstream for follow-up requirement questions.
func (s *DocumentService) GenerateQuestions(ctx context.Context, req *RequirementQuestions) (*RequirementQuestions, error) {
	var out RequirementQuestions
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/api/document/requirement/question")
	if err := upstreamErr(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRequirement fetches a requirement document by id.
func (s *DocumentService) GetRequirement(ctx context.Context, documentID string) (*RequirementDocumentResponse, error) {
	var out RequirementDocumentResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/document/requirement/" + documentID)
	if err := upstreamErr(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFunctional fetches a functional document by id.
func (s *DocumentService) GetFunctional(ctx context.Context, documentID string) (*FunctionalDocumentResponse, error) {
	var out FunctionalDocumentResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/document/functional/" + documentID)
	if err := upstreamErr(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPolicy fetches a policy document by id.
func (s *DocumentService) GetPolicy(ctx context.Context, documentID string) (*PolicyDocumentResponse, error) {
	var out PolicyDocumentResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/document/policy/" + documentID)
	if err := upstreamErr(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a document of the given kind.
func (s *DocumentService) Delete(ctx context.Context, kind, documentID string) error {
	if !ValidKind(kind) {
		return response.NewBadRequest(fmt.Sprintf("unknown document kind %q", kind))
	}
	resp, err := s.client.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/document/%s/%s", kind, documentID))
	return upstreamErr(resp, err)
}

// ListByUser returns all documents of the kind owned by the user, passed
// through unmodified.
func (s *DocumentService) ListByUser(ctx context.Context, kind, userID string) ([]json.RawMessage, error) {
	if !ValidKind(kind) {
		return nil, response.NewBadRequest(fmt.Sprintf("unknown document kind %q", kind))
	}
	return s.listDocuments(ctx, fmt.Sprintf("/api/document/%s/user/%s", kind, userID))
}

// ListByProject returns all documents of the kind attached to the project,
// passed through unmodified.
func (s *DocumentService) ListByProject(ctx context.Context, kind, projectID string) ([]json.RawMessage, error) {
	if !ValidKind(kind) {
		return nil, response.NewBadRequest(fmt.Sprintf("unknown document kind %q", kind))
	}
	return s.listDocuments(ctx, fmt.Sprintf("/api/document/%s/project/%s", kind, projectID))
}

func (s *DocumentService) listDocuments(ctx context.Context, path string) ([]json.RawMessage, error) {
	var out []json.RawMessage
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get(path)
	if err := upstreamErr(resp, err); err != nil {
		return nil, err
	}
	if out == nil {
		out = []json.RawMessage{}
	}
	return out, nil
}

// BuildExcel fetches the document and renders it as a one-sheet workbook.
// Adjacent identical cells are merged per column so repeated group names
// read as a single block.
func (s *DocumentService) BuildExcel(ctx context.Context, kind, documentID string) (*excelize.File, error) {
	switch kind {
	case KindRequirement:
		doc, err := s.GetRequirement(ctx, documentID)
		if err != nil {
			return nil, err
		}
		columns := []utils.ExcelColumn{
			{Header: "ID", Width: 10},
			{Header: "System", Width: 20},
			{Header: "Function", Width: 20},
			{Header: "Requirement", Width: 30},
			{Header: "Description", Width: 50},
		}
		var rows [][]interface{}
		for _, group := range doc.Document.Data {
			for _, detail := range group.Details {
				rows = append(rows, []interface{}{"-", "-", group.Name, detail.Name, detail.Description})
			}
		}
		return renderWorkbook(columns, rows, 3, 4)

	case KindFunctional:
		doc, err := s.GetFunctional(ctx, documentID)
		if err != nil {
			return nil, err
		}
		columns := []utils.ExcelColumn{
			{Header: "ID", Width: 10},
			{Header: "System", Width: 20},
			{Header: "Function", Width: 20},
			{Header: "Detail", Width: 30},
			{Header: "Description", Width: 50},
		}
		var rows [][]interface{}
		for _, group := range doc.Document.Data {
			for _, detail := range group.Details {
				rows = append(rows, []interface{}{"-", "-", group.Name, detail.Name, detail.Description})
			}
		}
		return renderWorkbook(columns, rows, 3, 4)

	case KindPolicy:
		doc, err := s.GetPolicy(ctx, documentID)
		if err != nil {
			return nil, err
		}
		columns := []utils.ExcelColumn{
			{Header: "ID", Width: 10},
			{Header: "System", Width: 20},
			{Header: "Policy", Width: 20},
			{Header: "Role", Width: 20},
			{Header: "Create", Width: 10},
			{Header: "Read", Width: 10},
			{Header: "Update", Width: 10},
			{Header: "Delete", Width: 10},
			{Header: "Description", Width: 50},
		}
		var rows [][]interface{}
		for _, policy := range doc.Document.Data {
			for _, role := range policy.Roles {
				rows = append(rows, []interface{}{
					"-", "-", policy.Name, role.Role,
					role.Create, role.Read, role.Update, role.Delete,
					role.Description,
				})
			}
		}
		return renderWorkbook(columns, rows, 3)

	default:
		return nil, response.NewBadRequest(fmt.Sprintf("unknown document kind %q", kind))
	}
}

// renderWorkbook builds the single-sheet workbook and merges the requested
// columns.
func renderWorkbook(columns []utils.ExcelColumn, rows [][]interface{}, mergeCols ...int) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	rowCount, err := utils.BuildSheet(f, sheet, columns, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheet: %w", err)
	}
	for _, col := range mergeCols {
		if err := utils.MergeColumn(f, sheet, col, rowCount); err != nil {
			return nil, fmt.Errorf("failed to merge column %d: %w", col, err)
		}
	}
	return f, nil
}

// upstreamErr maps transport failures and non-2xx upstream replies onto the
// service's error kinds. An upstream 404 stays a 404; everything else is a
// bad gateway.
func upstreamErr(resp *resty.Response, err error) error {
	if err != nil {
		return response.NewBadGateway(fmt.Sprintf("document service unreachable: %v", err))
	}
	if resp.IsError() {
		if resp.StatusCode() == http.StatusNotFound {
			return response.NewNotFound("document not found")
		}
		return response.NewBadGateway(fmt.Sprintf("document service returned %s", resp.Status()))
	}
	return nil
}
