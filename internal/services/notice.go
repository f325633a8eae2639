package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/docgen/backend/pkg/response"
	"gorm.io/gorm"
)

// NoticeService manages notice rows with hand-written SQL, mirroring the
// project raw layer. Listing is offset-paginated and always returns the
// total live row count alongside the page.
type NoticeService struct {
	db *gorm.DB
}

func NewNoticeService(db *gorm.DB) *NoticeService {
	return &NoticeService{db: db}
}

type CreateNoticeRequest struct {
	MemberID   uint   `json:"member_id" binding:"required"`
	Title      string `json:"title" binding:"required,max=25"`
	Content    string `json:"content" binding:"required"`
	NoticeType string `json:"noticetype" binding:"required,oneof=NORMAL EVENT"`
	PostDate   string `json:"post_date" binding:"required,datetime=2006-01-02"`
}

type UpdateNoticeRequest struct {
	Title      *string `json:"title" binding:"omitempty,min=1,max=25"`
	Content    *string `json:"content" binding:"omitempty,min=1"`
	NoticeType *string `json:"noticetype" binding:"omitempty,oneof=NORMAL EVENT"`
	PostDate   *string `json:"post_date" binding:"omitempty,datetime=2006-01-02"`
}

// NoticeResponse renders post_date as a plain YYYY-MM-DD string so the
// output does not depend on the driver's date formatting.
type NoticeResponse struct {
	ID              uint      `json:"id"`
	MemberID        uint      `json:"member_id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	NoticeType      string    `json:"noticetype"`
	PostDate        string    `json:"post_date"`
	CreatedDateTime time.Time `json:"created_date_time"`
	UpdatedDateTime time.Time `json:"updated_date_time"`
}

type noticeRow struct {
	ID              uint
	MemberID        uint
	Title           string
	Content         string
	NoticeType      string
	PostDate        time.Time
	CreatedDateTime time.Time
	UpdatedDateTime time.Time
}

// List returns one page of live notices, newest post first, plus the total
// live count for the pagination header. Page numbers start at 1; an
// out-of-range page yields an empty list, not an error.
func (s *NoticeService) List(page, size int) ([]NoticeResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	var total int64
	if err := s.db.Raw(`SELECT COUNT(*) FROM notice WHERE deleted_date_time IS NULL`).
		Scan(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notices: %w", err)
	}

	var rows []noticeRow
	err := s.db.Raw(`
SELECT id, member_id, title, content, noticetype AS notice_type, post_date,
       created_date_time, updated_date_time
FROM notice
WHERE deleted_date_time IS NULL
ORDER BY post_date DESC, id ASC
LIMIT ? OFFSET ?`, size, (page-1)*size).Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notices: %w", err)
	}

	notices := make([]NoticeResponse, 0, len(rows))
	for _, r := range rows {
		notices = append(notices, toNoticeResponse(&r))
	}
	return notices, total, nil
}

// GetByID returns a single live notice.
func (s *NoticeService) GetByID(id uint) (*NoticeResponse, error) {
	var rows []noticeRow
	err := s.db.Raw(`
SELECT id, member_id, title, content, noticetype AS notice_type, post_date,
       created_date_time, updated_date_time
FROM notice
WHERE id = ? AND deleted_date_time IS NULL`, id).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get notice: %w", err)
	}
	if len(rows) == 0 {
		return nil, response.NewNotFound(fmt.Sprintf("notice %d not found", id))
	}
	resp := toNoticeResponse(&rows[0])
	return &resp, nil
}

// Create inserts the notice and returns it with generated fields populated.
func (s *NoticeService) Create(req *CreateNoticeRequest) (*NoticeResponse, error) {
	postDate, err := time.Parse(dateLayout, req.PostDate)
	if err != nil {
		return nil, response.NewBadRequest("post_date must be formatted as YYYY-MM-DD")
	}

	var noticeID uint
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Raw(`INSERT INTO notice (member_id, title, content, noticetype, post_date, created_date_time, updated_date_time)
VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
RETURNING id`, req.MemberID, req.Title, req.Content, req.NoticeType, postDate).Scan(&noticeID).Error
	})
	if err != nil {
		return nil, wrapTxErr("failed to create notice", err)
	}
	return s.GetByID(noticeID)
}

// Update applies only the supplied fields via a dynamically built SET list.
func (s *NoticeService) Update(id uint, req *UpdateNoticeRequest) (*NoticeResponse, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Raw(`SELECT COUNT(*) FROM notice WHERE id = ? AND deleted_date_time IS NULL`, id).
			Scan(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return response.NewNotFound(fmt.Sprintf("notice %d not found", id))
		}

		var fields []string
		var args []interface{}
		if req.Title != nil {
			fields = append(fields, "title = ?")
			args = append(args, *req.Title)
		}
		if req.Content != nil {
			fields = append(fields, "content = ?")
			args = append(args, *req.Content)
		}
		if req.NoticeType != nil {
			fields = append(fields, "noticetype = ?")
			args = append(args, *req.NoticeType)
		}
		if req.PostDate != nil {
			postDate, err := time.Parse(dateLayout, *req.PostDate)
			if err != nil {
				return response.NewBadRequest("post_date must be formatted as YYYY-MM-DD")
			}
			fields = append(fields, "post_date = ?")
			args = append(args, postDate)
		}
		if len(fields) == 0 {
			return nil
		}

		fields = append(fields, "updated_date_time = CURRENT_TIMESTAMP")
		args = append(args, id)
		query := fmt.Sprintf("UPDATE notice SET %s WHERE id = ?", strings.Join(fields, ", "))
		return tx.Exec(query, args...).Error
	})
	if err != nil {
		return nil, wrapTxErr("failed to update notice", err)
	}
	return s.GetByID(id)
}

// Delete soft-deletes a notice.
func (s *NoticeService) Delete(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`UPDATE notice SET deleted_date_time = CURRENT_TIMESTAMP
WHERE id = ? AND deleted_date_time IS NULL`, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return response.NewNotFound(fmt.Sprintf("notice %d not found", id))
		}
		return nil
	})
	return wrapTxErr("failed to delete notice", err)
}

func toNoticeResponse(r *noticeRow) NoticeResponse {
	return NoticeResponse{
		ID:              r.ID,
		MemberID:        r.MemberID,
		Title:           r.Title,
		Content:         r.Content,
		NoticeType:      r.NoticeType,
		PostDate:        r.PostDate.Format(dateLayout),
		CreatedDateTime: r.CreatedDateTime,
		UpdatedDateTime: r.UpdatedDateTime,
	}
}
