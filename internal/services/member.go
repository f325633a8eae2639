package services

import (
	"errors"
	"fmt"

	"github.com/docgen/backend/internal/models"
	"github.com/docgen/backend/internal/utils"
	"github.com/docgen/backend/pkg/response"
	"gorm.io/gorm"
)

type MemberService struct {
	db *gorm.DB
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{db: db}
}

type UpdateMemberRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=10"`
	Email *string `json:"email" binding:"omitempty,email,max=50"`
	Role  *string `json:"role" binding:"omitempty,oneof=USER ADMIN"`
}

type ProjectAccessRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type PasswordUpdateRequest struct {
	CurrentPassword    string `json:"currentPassword" binding:"required,min=8,max=32"`
	NewPassword        string `json:"newPassword" binding:"required,min=8,max=32"`
	NewPasswordConfirm string `json:"newPasswordConfirm" binding:"required,min=8,max=32"`
}

type DeleteMemberRequest struct {
	Password        string `json:"password" binding:"required,min=8,max=32"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,min=8,max=32"`
}

// FindAll returns all live members ordered by id.
func (s *MemberService) FindAll() ([]models.Member, error) {
	var members []models.Member
	if err := s.db.Order("id ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// FindByID returns a single live member.
func (s *MemberService) FindByID(id uint) (*models.Member, error) {
	var member models.Member
	if err := s.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(fmt.Sprintf("member %d not found", id))
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return &member, nil
}

// Update applies only the supplied fields.
func (s *MemberService) Update(id uint, req *UpdateMemberRequest) (*models.Member, error) {
	member, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if len(updates) == 0 {
		return member, nil
	}

	if err := s.db.Model(member).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	return member, nil
}

// Remove soft-deletes the member after verifying the supplied password.
func (s *MemberService) Remove(id uint, req *DeleteMemberRequest) error {
	if req.Password != req.PasswordConfirm {
		return response.NewBadRequest("passwords do not match")
	}

	member, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(req.Password, member.Password) {
		return response.NewUnauthorized("password is incorrect")
	}

	if err := s.db.Delete(member).Error; err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

// GrantProjectAccess looks up a member by email for project sharing.
func (s *MemberService) GrantProjectAccess(req *ProjectAccessRequest) (*models.Member, error) {
	var member models.Member
	if err := s.db.Where("email = ?", req.Email).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(fmt.Sprintf("no member with email %s", req.Email))
		}
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}
	return &member, nil
}

// ValidatePassword compares a plaintext password against the member's hash.
func (s *MemberService) ValidatePassword(id uint, password string) (bool, error) {
	member, err := s.FindByID(id)
	if err != nil {
		return false, err
	}
	return utils.CheckPassword(password, member.Password), nil
}

// UpdatePassword verifies the current password and persists a new hash.
func (s *MemberService) UpdatePassword(id uint, req *PasswordUpdateRequest) error {
	if req.NewPassword != req.NewPasswordConfirm {
		return response.NewBadRequest("new passwords do not match")
	}
	if !isValidPassword(req.NewPassword) {
		return response.NewBadRequest("password must contain a letter, a digit and a special character")
	}

	member, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(req.CurrentPassword, member.Password) {
		return response.NewUnauthorized("current password is incorrect")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.db.Model(member).Update("password", hashed).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
