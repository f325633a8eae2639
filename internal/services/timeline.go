package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/docgen/backend/internal/models"
	"github.com/docgen/backend/pkg/response"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type TimelineService struct {
	db *gorm.DB
}

func NewTimelineService(db *gorm.DB) *TimelineService {
	return &TimelineService{db: db}
}

type CreateTimelineRequest struct {
	ProjectID   uint   `json:"project_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=50"`
	Description string `json:"description" binding:"required,max=100"`
	EventDate   string `json:"event_date" binding:"required,datetime=2006-01-02"`
}

type UpdateTimelineRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=50"`
	Description *string `json:"description" binding:"omitempty,min=1,max=100"`
	EventDate   *string `json:"event_date" binding:"omitempty,datetime=2006-01-02"`
}

// TimelineResponse renders the event date as a plain YYYY-MM-DD string,
// independent of the database driver's date handling.
type TimelineResponse struct {
	ID              uint      `json:"id"`
	ProjectID       uint      `json:"project_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EventDate       string    `json:"event_date"`
	CreatedDateTime time.Time `json:"created_date_time"`
	UpdatedDateTime time.Time `json:"updated_date_time"`
}

// ListByProject returns a project's live timeline entries, most recent event
// first, with id as the tiebreaker.
func (s *TimelineService) ListByProject(projectID uint) ([]TimelineResponse, error) {
	var timelines []models.Timeline
	if err := s.db.Where("project_id = ?", projectID).
		Order("event_date DESC, id ASC").
		Find(&timelines).Error; err != nil {
		return nil, fmt.Errorf("failed to list timelines: %w", err)
	}

	result := make([]TimelineResponse, 0, len(timelines))
	for _, t := range timelines {
		result = append(result, toTimelineResponse(&t))
	}
	return result, nil
}

// Create adds a timeline entry to a live project.
func (s *TimelineService) Create(req *CreateTimelineRequest) (*TimelineResponse, error) {
	var count int64
	if err := s.db.Model(&models.Project{}).Where("id = ?", req.ProjectID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check project: %w", err)
	}
	if count == 0 {
		return nil, response.NewNotFound(fmt.Sprintf("project %d not found", req.ProjectID))
	}

	eventDate, err := time.Parse(dateLayout, req.EventDate)
	if err != nil {
		return nil, response.NewBadRequest("event_date must be formatted as YYYY-MM-DD")
	}

	timeline := models.Timeline{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		EventDate:   eventDate,
	}
	if err := s.db.Create(&timeline).Error; err != nil {
		return nil, fmt.Errorf("failed to create timeline: %w", err)
	}

	resp := toTimelineResponse(&timeline)
	return &resp, nil
}

// Update applies only the supplied fields.
func (s *TimelineService) Update(id uint, req *UpdateTimelineRequest) (*TimelineResponse, error) {
	var timeline models.Timeline
	if err := s.db.First(&timeline, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(fmt.Sprintf("timeline %d not found", id))
		}
		return nil, fmt.Errorf("failed to get timeline: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.EventDate != nil {
		eventDate, err := time.Parse(dateLayout, *req.EventDate)
		if err != nil {
			return nil, response.NewBadRequest("event_date must be formatted as YYYY-MM-DD")
		}
		updates["event_date"] = eventDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(&timeline).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update timeline: %w", err)
		}
	}

	resp := toTimelineResponse(&timeline)
	return &resp, nil
}

// Delete soft-deletes a timeline entry.
func (s *TimelineService) Delete(id uint) error {
	res := s.db.Delete(&models.Timeline{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete timeline: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return response.NewNotFound(fmt.Sprintf("timeline %d not found", id))
	}
	return nil
}

func toTimelineResponse(t *models.Timeline) TimelineResponse {
	return TimelineResponse{
		ID:              t.ID,
		ProjectID:       t.ProjectID,
		Title:           t.Title,
		Description:     t.Description,
		EventDate:       t.EventDate.Format(dateLayout),
		CreatedDateTime: t.CreatedAt,
		UpdatedDateTime: t.UpdatedAt,
	}
}
