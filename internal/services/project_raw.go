package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/docgen/backend/pkg/response"
	"gorm.io/gorm"
)

// ProjectRawService manages project rows and their hashtag links with
// hand-written SQL. Every mutating path runs inside a single transaction;
// hashtag updates use replace-all semantics, never a partial diff.
type ProjectRawService struct {
	db *gorm.DB
}

func NewProjectRawService(db *gorm.DB) *ProjectRawService {
	return &ProjectRawService{db: db}
}

type CreateProjectRequest struct {
	MemberID      uint     `json:"member_id" binding:"required"`
	Title         string   `json:"title" binding:"required,max=25"`
	Introduction  string   `json:"introduction" binding:"required"`
	ProjectStatus string   `json:"project_status" binding:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
	Hashtags      []string `json:"hashtags" binding:"omitempty,dive,min=1,max=10"`
}

// UpdateProjectRequest applies only the supplied fields. Hashtags is a
// pointer on purpose: nil leaves the tag set untouched, an empty slice
// clears it.
type UpdateProjectRequest struct {
	Title         *string   `json:"title" binding:"omitempty,min=1,max=25"`
	Introduction  *string   `json:"introduction" binding:"omitempty,min=1"`
	ProjectStatus *string   `json:"project_status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	Hashtags      *[]string `json:"hashtags" binding:"omitempty,dive,min=1,max=10"`
}

// ProjectWithHashtags is a project annotated with its live hashtag names.
type ProjectWithHashtags struct {
	ID              uint      `json:"id"`
	MemberID        uint      `json:"member_id"`
	Title           string    `json:"title"`
	Introduction    string    `json:"introduction"`
	ProjectStatus   string    `json:"project_status"`
	CreatedDateTime time.Time `json:"created_date_time"`
	UpdatedDateTime time.Time `json:"updated_date_time"`
	Hashtags        []string  `json:"hashtags"`
}

// projectHashtagRow is one row of the project/hashtag left join.
type projectHashtagRow struct {
	ID              uint
	MemberID        uint
	Title           string
	Introduction    string
	ProjectStatus   string
	CreatedDateTime time.Time
	UpdatedDateTime time.Time
	HashtagID       *uint
	HashtagName     *string
}

const projectHashtagSelect = `
SELECT p.id, p.member_id, p.title, p.introduction, p.project_status,
       p.created_date_time, p.updated_date_time,
       h.id AS hashtag_id, h.hashtag_name
FROM project p
LEFT JOIN project_hashtag ph
       ON ph.project_id = p.id AND ph.deleted_date_time IS NULL
LEFT JOIN hashtag h ON h.id = ph.hashtag_id`

// ListByMember returns all live projects owned by memberID, newest first,
// each with its deduplicated hashtag set. No projects is an empty list, not
// an error.
func (s *ProjectRawService) ListByMember(memberID uint) ([]ProjectWithHashtags, error) {
	var rows []projectHashtagRow
	err := s.db.Raw(projectHashtagSelect+`
WHERE p.member_id = ? AND p.deleted_date_time IS NULL
ORDER BY p.created_date_time DESC, p.id DESC`, memberID).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return groupProjectRows(rows), nil
}

// GetByID returns a single live project with its hashtag set.
func (s *ProjectRawService) GetByID(projectID uint) (*ProjectWithHashtags, error) {
	var rows []projectHashtagRow
	err := s.db.Raw(projectHashtagSelect+`
WHERE p.id = ? AND p.deleted_date_time IS NULL`, projectID).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	projects := groupProjectRows(rows)
	if len(projects) == 0 {
		return nil, response.NewNotFound(fmt.Sprintf("project %d not found", projectID))
	}
	return &projects[0], nil
}

// Create inserts the project and links its hashtags in one transaction,
// then re-fetches the project with the tag set attached.
func (s *ProjectRawService) Create(req *CreateProjectRequest) (*ProjectWithHashtags, error) {
	var projectID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// RETURNING needs postgres or a modern sqlite
		if err := tx.Raw(`INSERT INTO project (member_id, title, introduction, project_status, created_date_time, updated_date_time)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
RETURNING id`, req.MemberID, req.Title, req.Introduction, req.ProjectStatus).Scan(&projectID).Error; err != nil {
			return err
		}
		return linkHashtags(tx, projectID, req.Hashtags)
	})
	if err != nil {
		return nil, wrapTxErr("failed to create project", err)
	}
	return s.GetByID(projectID)
}

// Update applies the supplied fields and, when Hashtags is non-nil,
// replaces the whole tag set. Update and tag replacement commit or roll
// back together.
func (s *ProjectRawService) Update(projectID uint, req *UpdateProjectRequest) (*ProjectWithHashtags, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Raw(`SELECT COUNT(*) FROM project WHERE id = ? AND deleted_date_time IS NULL`, projectID).
			Scan(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return response.NewNotFound(fmt.Sprintf("project %d not found", projectID))
		}

		var fields []string
		var args []interface{}
		if req.Title != nil {
			fields = append(fields, "title = ?")
			args = append(args, *req.Title)
		}
		if req.Introduction != nil {
			fields = append(fields, "introduction = ?")
			args = append(args, *req.Introduction)
		}
		if req.ProjectStatus != nil {
			fields = append(fields, "project_status = ?")
			args = append(args, *req.ProjectStatus)
		}
		if len(fields) > 0 {
			fields = append(fields, "updated_date_time = CURRENT_TIMESTAMP")
			args = append(args, projectID)
			query := fmt.Sprintf("UPDATE project SET %s WHERE id = ?", strings.Join(fields, ", "))
			if err := tx.Exec(query, args...).Error; err != nil {
				return err
			}
		}

		if req.Hashtags != nil {
			if err := tx.Exec(`UPDATE project_hashtag SET deleted_date_time = CURRENT_TIMESTAMP
WHERE project_id = ? AND deleted_date_time IS NULL`, projectID).Error; err != nil {
				return err
			}
			return linkHashtags(tx, projectID, *req.Hashtags)
		}
		return nil
	})
	if err != nil {
		return nil, wrapTxErr("failed to update project", err)
	}
	return s.GetByID(projectID)
}

// Delete soft-deletes the project together with its timelines and live
// hashtag links.
func (s *ProjectRawService) Delete(projectID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`UPDATE project SET deleted_date_time = CURRENT_TIMESTAMP
WHERE id = ? AND deleted_date_time IS NULL`, projectID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return response.NewNotFound(fmt.Sprintf("project %d not found", projectID))
		}
		if err := tx.Exec(`UPDATE timeline SET deleted_date_time = CURRENT_TIMESTAMP
WHERE project_id = ? AND deleted_date_time IS NULL`, projectID).Error; err != nil {
			return err
		}
		return tx.Exec(`UPDATE project_hashtag SET deleted_date_time = CURRENT_TIMESTAMP
WHERE project_id = ? AND deleted_date_time IS NULL`, projectID).Error
	})
	return wrapTxErr("failed to delete project", err)
}

// linkHashtags creates or reuses a hashtag row per name (exact,
// case-sensitive match, duplicates collapsed in input order) and links it to
// the project. An existing live link is kept as-is; a soft-deleted link is
// revived since the composite key blocks a second insert.
func linkHashtags(tx *gorm.DB, projectID uint, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		var hashtagID uint
		res := tx.Raw(`SELECT id FROM hashtag WHERE hashtag_name = ? ORDER BY id LIMIT 1`, name).Scan(&hashtagID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Raw(`INSERT INTO hashtag (hashtag_name) VALUES (?) RETURNING id`, name).
				Scan(&hashtagID).Error; err != nil {
				return err
			}
		}

		var link struct {
			Total int64
			Live  int64
		}
		if err := tx.Raw(`SELECT COUNT(*) AS total,
       COALESCE(SUM(CASE WHEN deleted_date_time IS NULL THEN 1 ELSE 0 END), 0) AS live
FROM project_hashtag WHERE project_id = ? AND hashtag_id = ?`, projectID, hashtagID).
			Scan(&link).Error; err != nil {
			return err
		}

		switch {
		case link.Live > 0:
			// already linked
		case link.Total > 0:
			if err := tx.Exec(`UPDATE project_hashtag SET deleted_date_time = NULL, updated_date_time = CURRENT_TIMESTAMP
WHERE project_id = ? AND hashtag_id = ?`, projectID, hashtagID).Error; err != nil {
				return err
			}
		default:
			if err := tx.Exec(`INSERT INTO project_hashtag (project_id, hashtag_id, created_date_time, updated_date_time)
VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`, projectID, hashtagID).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// groupProjectRows folds join rows into projects, preserving row order and
// deduplicating hashtags by id. The hashtag set is always non-nil.
func groupProjectRows(rows []projectHashtagRow) []ProjectWithHashtags {
	projects := make([]ProjectWithHashtags, 0)
	index := make(map[uint]int)
	tagSeen := make(map[uint]map[uint]struct{})

	for _, row := range rows {
		i, ok := index[row.ID]
		if !ok {
			projects = append(projects, ProjectWithHashtags{
				ID:              row.ID,
				MemberID:        row.MemberID,
				Title:           row.Title,
				Introduction:    row.Introduction,
				ProjectStatus:   row.ProjectStatus,
				CreatedDateTime: row.CreatedDateTime,
				UpdatedDateTime: row.UpdatedDateTime,
				Hashtags:        []string{},
			})
			i = len(projects) - 1
			index[row.ID] = i
			tagSeen[row.ID] = make(map[uint]struct{})
		}
		if row.HashtagID == nil || row.HashtagName == nil {
			continue
		}
		if _, dup := tagSeen[row.ID][*row.HashtagID]; dup {
			continue
		}
		tagSeen[row.ID][*row.HashtagID] = struct{}{}
		projects[i].Hashtags = append(projects[i].Hashtags, *row.HashtagName)
	}
	return projects
}

// wrapTxErr passes AppErrors through untouched and wraps everything else so
// the handler maps it to a 500.
func wrapTxErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*response.AppError); ok {
		return appErr
	}
	return fmt.Errorf("%s: %w", msg, err)
}
