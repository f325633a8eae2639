package services

import (
	"errors"
	"testing"
	"time"

	"github.com/docgen/backend/internal/models"
	"github.com/docgen/backend/pkg/response"
)

func TestSignUp(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testJWTConfig())

	id, err := svc.SignUp(&SignUpRequest{
		Name:            "kim",
		Email:           "kim@example.com",
		Password:        "passw0rd!",
		PasswordConfirm: "passw0rd!",
	})
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if id == 0 {
		t.Error("SignUp() should return the new member id")
	}
}

func TestSignUp_PasswordMismatch(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testJWTConfig())

	_, err := svc.SignUp(&SignUpRequest{
		Name:            "kim",
		Email:           "kim@example.com",
		Password:        "passw0rd!",
		PasswordConfirm: "different1!",
	})

	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 400 {
		t.Errorf("SignUp() error = %v, expected 400", err)
	}
}

func TestSignUp_WeakPassword(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testJWTConfig())

	_, err := svc.SignUp(&SignUpRequest{
		Name:            "kim",
		Email:           "kim@example.com",
		Password:        "onlyletters",
		PasswordConfirm: "onlyletters",
	})

	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 400 {
		t.Errorf("SignUp() error = %v, expected 400", err)
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTConfig())
	createMember(t, db, "dup@example.com", "passw0rd!")

	_, err := svc.SignUp(&SignUpRequest{
		Name:            "kim",
		Email:           "dup@example.com",
		Password:        "passw0rd!",
		PasswordConfirm: "passw0rd!",
	})

	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 409 {
		t.Errorf("SignUp() error = %v, expected 409 conflict", err)
	}
}

func TestSignIn(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTConfig())
	member := createMember(t, db, "kim@example.com", "passw0rd!")

	tokens, err := svc.SignIn(&SignInRequest{Email: "kim@example.com", Password: "passw0rd!"})
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("SignIn() should return both tokens")
	}
	if tokens.ExpiresIn != 10*60 {
		t.Errorf("ExpiresIn = %d, expected 600", tokens.ExpiresIn)
	}

	var count int64
	db.Model(&models.RefreshToken{}).Where("member_id = ?", member.ID).Count(&count)
	if count != 1 {
		t.Errorf("persisted refresh tokens = %d, expected 1", count)
	}
}

func TestSignIn_UniformFailureMessage(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTConfig())
	createMember(t, db, "kim@example.com", "passw0rd!")

	_, wrongPassErr := svc.SignIn(&SignInRequest{Email: "kim@example.com", Password: "wrongpass1!"})
	_, noMemberErr := svc.SignIn(&SignInRequest{Email: "nobody@example.com", Password: "passw0rd!"})

	var appErr1, appErr2 *response.AppError
	if !errors.As(wrongPassErr, &appErr1) || appErr1.HTTPStatus != 401 {
		t.Fatalf("wrong password error = %v, expected 401", wrongPassErr)
	}
	if !errors.As(noMemberErr, &appErr2) || appErr2.HTTPStatus != 401 {
		t.Fatalf("unknown email error = %v, expected 401", noMemberErr)
	}

	// the response must not reveal whether the account exists
	if appErr1.Message != appErr2.Message {
		t.Errorf("failure messages differ: %q vs %q", appErr1.Message, appErr2.Message)
	}
}

func TestSignIn_ReplacesPriorRefreshToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTConfig())
	member := createMember(t, db, "kim@example.com", "passw0rd!")

	if _, err := svc.SignIn(&SignInRequest{Email: "kim@example.com", Password: "passw0rd!"}); err != nil {
		t.Fatalf("first SignIn() error = %v", err)
	}
	if _, err := svc.SignIn(&SignInRequest{Email: "kim@example.com", Password: "passw0rd!"}); err != nil {
		t.Fatalf("second SignIn() error = %v", err)
	}

	var count int64
	db.Model(&models.RefreshToken{}).Where("member_id = ?", member.ID).Count(&count)
	if count != 1 {
		t.Errorf("persisted refresh tokens = %d, expected exactly 1", count)
	}
}

func TestSignIn_KeepLoggedInExtendsRefreshWindow(t *testing.T) {
	db := newTestDB(t)
	cfg := testJWTConfig()
	cfg.RefreshExpireDaysExt = 30
	svc := NewAuthService(db, cfg)
	member := createMember(t, db, "kim@example.com", "passw0rd!")

	_, err := svc.SignIn(&SignInRequest{
		Email:        "kim@example.com",
		Password:     "passw0rd!",
		KeepLoggedIn: true,
	})
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	var stored models.RefreshToken
	if err := db.Where("member_id = ?", member.ID).First(&stored).Error; err != nil {
		t.Fatalf("failed to load refresh token: %v", err)
	}
	// well past the standard 7 day window
	if time.Until(stored.ExpiresAt) < 20*24*time.Hour {
		t.Errorf("expiry %v is not extended", stored.ExpiresAt)
	}
}

func TestSignOut(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTConfig())
	member := createMember(t, db, "kim@example.com", "passw0rd!")

	if _, err := svc.SignIn(&SignInRequest{Email: "kim@example.com", Password: "passw0rd!"}); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if err := svc.SignOut(member.ID); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}

	var count int64
	db.Model(&models.RefreshToken{}).Where("member_id = ?", member.ID).Count(&count)
	if count != 0 {
		t.Errorf("persisted refresh tokens = %d, expected 0 after signout", count)
	}
}

func TestRefresh(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTConfig())
	createMember(t, db, "kim@example.com", "passw0rd!")

	tokens, err := svc.SignIn(&SignInRequest{Email: "kim@example.com", Password: "passw0rd!"})
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	rotated, err := svc.Refresh(tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if rotated.AccessToken == "" || rotated.RefreshToken == "" {
		t.Error("Refresh() should return a fresh token pair")
	}

	// exactly one persisted row remains, holding the rotated token
	var stored []models.RefreshToken
	db.Find(&stored)
	if len(stored) != 1 {
		t.Fatalf("persisted refresh tokens = %d, expected 1", len(stored))
	}
	if stored[0].Token != rotated.RefreshToken {
		t.Error("persisted token should be the rotated one")
	}
}

func TestRefresh_UnknownToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTConfig())
	member := createMember(t, db, "kim@example.com", "passw0rd!")

	// a validly signed token that was never persisted
	tokens, err := svc.SignIn(&SignInRequest{Email: "kim@example.com", Password: "passw0rd!"})
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if err := svc.SignOut(member.ID); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}

	_, err = svc.Refresh(tokens.RefreshToken)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 401 {
		t.Errorf("Refresh() error = %v, expected 401", err)
	}
}

func TestRefresh_Garbage(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testJWTConfig())

	_, err := svc.Refresh("not-a-token")
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 401 {
		t.Errorf("Refresh() error = %v, expected 401", err)
	}
}
