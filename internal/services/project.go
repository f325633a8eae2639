package services

import (
	"errors"
	"fmt"

	"github.com/docgen/backend/internal/models"
	"github.com/docgen/backend/pkg/response"
	"gorm.io/gorm"
)

// ProjectService serves the ORM read paths for projects. Mutations delegate
// to the raw layer so the transactional hashtag reconciliation lives in one
// place.
type ProjectService struct {
	db  *gorm.DB
	raw *ProjectRawService
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db, raw: NewProjectRawService(db)}
}

// ListByMember returns a member's live projects, newest first, with their
// hashtag sets attached.
func (s *ProjectService) ListByMember(memberID uint) ([]ProjectWithHashtags, error) {
	var projects []models.Project
	if err := s.db.Where("member_id = ?", memberID).
		Order("created_date_time DESC, id DESC").
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	result := make([]ProjectWithHashtags, 0, len(projects))
	for _, p := range projects {
		tags, err := s.hashtagNames(p.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, toProjectWithHashtags(&p, tags))
	}
	return result, nil
}

// GetByID returns a single live project with its hashtag set.
func (s *ProjectService) GetByID(projectID uint) (*ProjectWithHashtags, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(fmt.Sprintf("project %d not found", projectID))
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	tags, err := s.hashtagNames(project.ID)
	if err != nil {
		return nil, err
	}
	p := toProjectWithHashtags(&project, tags)
	return &p, nil
}

// Create creates a project with its initial hashtag set.
func (s *ProjectService) Create(req *CreateProjectRequest) (*ProjectWithHashtags, error) {
	return s.raw.Create(req)
}

// Update applies the supplied fields; a non-nil hashtag list replaces the
// whole tag set.
func (s *ProjectService) Update(projectID uint, req *UpdateProjectRequest) (*ProjectWithHashtags, error) {
	return s.raw.Update(projectID, req)
}

// Delete soft-deletes the project, its timelines and its hashtag links.
func (s *ProjectService) Delete(projectID uint) error {
	return s.raw.Delete(projectID)
}

// hashtagNames returns the live, deduplicated hashtag names of a project.
func (s *ProjectService) hashtagNames(projectID uint) ([]string, error) {
	names := make([]string, 0)
	err := s.db.Model(&models.ProjectHashtag{}).
		Distinct("hashtag.hashtag_name").
		Joins("JOIN hashtag ON hashtag.id = project_hashtag.hashtag_id").
		Where("project_hashtag.project_id = ? AND project_hashtag.deleted_date_time IS NULL", projectID).
		Pluck("hashtag.hashtag_name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load hashtags: %w", err)
	}
	return names, nil
}

func toProjectWithHashtags(p *models.Project, tags []string) ProjectWithHashtags {
	return ProjectWithHashtags{
		ID:              p.ID,
		MemberID:        p.MemberID,
		Title:           p.Title,
		Introduction:    p.Introduction,
		ProjectStatus:   p.ProjectStatus,
		CreatedDateTime: p.CreatedAt,
		UpdatedDateTime: p.UpdatedAt,
		Hashtags:        tags,
	}
}
