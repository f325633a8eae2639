package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/docgen/backend/internal/config"
	"github.com/docgen/backend/internal/models"
	"github.com/docgen/backend/internal/utils"
	"github.com/docgen/backend/pkg/response"
	"gorm.io/gorm"
)

// signInFailedMessage is deliberately identical for unknown email and wrong
// password so the response never reveals whether an account exists.
const signInFailedMessage = "email or password does not match"

type AuthService struct {
	db     *gorm.DB
	jwtCfg *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtCfg: jwtCfg}
}

type SignUpRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=5"`
	Email           string `json:"email" binding:"required,email,max=50"`
	Password        string `json:"password" binding:"required,min=8,max=32"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,min=8,max=32"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	// KeepLoggedIn stretches the refresh token lifetime to the extended window.
	KeepLoggedIn bool `json:"keepLoggedIn"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResult carries a freshly issued token pair. ExpiresIn is the access
// token lifetime in seconds.
type TokenResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

// SignUp registers a new member with the USER role and returns its id.
func (s *AuthService) SignUp(req *SignUpRequest) (uint, error) {
	if req.Password != req.PasswordConfirm {
		return 0, response.NewBadRequest("passwords do not match")
	}
	if !isValidPassword(req.Password) {
		return 0, response.NewBadRequest("password must contain a letter, a digit and a special character")
	}

	var count int64
	if err := s.db.Model(&models.Member{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return 0, response.NewConflict("email is already registered")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	member := models.Member{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return 0, fmt.Errorf("failed to create member: %w", err)
	}

	return member.ID, nil
}

// SignIn authenticates a member and issues an access/refresh token pair.
// The new refresh token replaces any prior one persisted for the member.
func (s *AuthService) SignIn(req *SignInRequest) (*TokenResult, error) {
	var member models.Member
	if err := s.db.Where("email = ?", req.Email).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized(signInFailedMessage)
		}
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}

	if !utils.CheckPassword(req.Password, member.Password) {
		return nil, response.NewUnauthorized(signInFailedMessage)
	}

	return s.issueTokens(&member, req.KeepLoggedIn)
}

// SignOut deletes every persisted refresh token of the member.
func (s *AuthService) SignOut(memberID uint) error {
	if err := s.db.Where("member_id = ?", memberID).Delete(&models.RefreshToken{}).Error; err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return nil
}

// Refresh verifies the refresh token's signature, expiry and persistence,
// then rotates it: the old row is deleted and a new pair issued.
func (s *AuthService) Refresh(token string) (*TokenResult, error) {
	claims, err := utils.ParseToken(token)
	if err != nil {
		return nil, response.NewUnauthorized("invalid or expired refresh token")
	}

	var stored models.RefreshToken
	if err := s.db.Where("token = ? AND expiry_date_time > ?", token, time.Now()).
		First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid or expired refresh token")
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	var member models.Member
	if err := s.db.First(&member, claims.MemberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("member no longer exists")
		}
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}

	return s.issueTokens(&member, false)
}

// issueTokens generates an access/refresh pair and persists the refresh
// token, replacing any prior tokens for the member in one transaction.
func (s *AuthService) issueTokens(member *models.Member, extended bool) (*TokenResult, error) {
	accessTTL := time.Duration(s.jwtCfg.AccessExpireMinutes) * time.Minute
	refreshDays := s.jwtCfg.RefreshExpireDays
	if extended && s.jwtCfg.RefreshExpireDaysExt > 0 {
		refreshDays = s.jwtCfg.RefreshExpireDaysExt
	}
	refreshTTL := time.Duration(refreshDays) * 24 * time.Hour

	accessToken, err := utils.GenerateToken(member.ID, member.Email, member.Role, accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := utils.GenerateToken(member.ID, member.Email, member.Role, refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	record := models.RefreshToken{
		MemberID:  member.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(refreshTTL),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", member.ID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &TokenResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(accessTTL.Seconds()),
	}, nil
}

// isValidPassword requires at least one letter, one digit and one special
// character.
func isValidPassword(password string) bool {
	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune("@$!%*#?&", r):
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}
