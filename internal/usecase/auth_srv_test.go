package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/request"
	"movie-reservation/pkg/utils"

	"go.uber.org/zap"
)

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.sessions[session.Token.String()] = session
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	session, found := r.sessions[token]
	if !found || session.RevokedAt != nil {
		return nil, nil
	}
	return session, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	session, found := r.sessions[token]
	if !found || session.RevokedAt != nil {
		return fmt.Errorf("session not found or already revoked")
	}
	now := session.ExpiresAt
	session.RevokedAt = &now
	return nil
}

func newAuthService(t *testing.T) (AuthService, *fakeStore, *fakeSessionRepo) {
	t.Helper()

	store := newFakeStore()
	sessions := newFakeSessionRepo()

	repo := &repository.Repository{
		User:    &fakeUserRepo{store: store},
		Session: sessions,
	}

	config := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}}

	return NewAuthService(repo, config, zap.NewNop()), store, sessions
}

func signupRequest(email string) *request.SignupRequest {
	return &request.SignupRequest{
		FirstName:       "Alice",
		LastName:        "Nguyen",
		Email:           email,
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func TestSignupAndLogin(t *testing.T) {
	service, _, _ := newAuthService(t)
	ctx := context.Background()

	signup, err := service.Signup(ctx, signupRequest("alice@example.com"))
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if signup.Token == "" {
		t.Error("signup did not auto-login")
	}

	login, err := service.Login(ctx, &request.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Token == "" {
		t.Error("login returned no session token")
	}
	if login.Token == signup.Token {
		t.Error("login reused the signup session token")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	service, _, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := service.Signup(ctx, signupRequest("alice@example.com")); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	_, err := service.Signup(ctx, signupRequest("ALICE@example.com"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate signup error = %v, want ErrEmailTaken", err)
	}
}

func TestLoginUniformRejection(t *testing.T) {
	service, _, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := service.Signup(ctx, signupRequest("alice@example.com")); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	_, unknownErr := service.Login(ctx, &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	_, wrongPassErr := service.Login(ctx, &request.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongPassErr, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPassErr)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	service, _, sessions := newAuthService(t)
	ctx := context.Background()

	signup, err := service.Signup(ctx, signupRequest("alice@example.com"))
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	if err := service.Logout(ctx, signup.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	session, _ := sessions.FindValidSession(ctx, signup.Token)
	if session != nil {
		t.Error("session still valid after logout")
	}

	if err := service.Logout(ctx, signup.Token); err == nil {
		t.Error("second logout with the same token should fail")
	}
}
