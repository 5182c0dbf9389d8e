package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/studiolume/pos-backoffice/internal/core/domain"
)

// stubAuthRepo is an in-memory AuthRepository keyed by username.
type stubAuthRepo struct {
	users map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	clone.ID = "user_" + user.Username
	r.users[user.Username] = &clone
	return &clone, nil
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

const testSecret = "test-secret"

func TestAuthService_Register_HashesPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	user, err := svc.Register(context.Background(), "alice", "s3cret", "alice@example.com", domain.RoleCollaborator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Fatal("password must be stored as a bcrypt hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestAuthService_Register_RejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "bob", "pw", "", "superuser"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	ctx := context.Background()
	if _, err := svc.Register(ctx, "alice", "pw", "", domain.RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Register(ctx, "alice", "pw", "", domain.RoleAdmin); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	ctx := context.Background()
	registered, err := svc.Register(ctx, "alice", "s3cret", "", domain.RoleCollaborator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, user, err := svc.Login(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims["sub"] != registered.ID {
		t.Errorf("expected sub %q, got %v", registered.ID, claims["sub"])
	}
	if claims["role"] != domain.RoleCollaborator {
		t.Errorf("expected role %q, got %v", domain.RoleCollaborator, claims["role"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	ctx := context.Background()
	if _, err := svc.Register(ctx, "alice", "s3cret", "", domain.RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := svc.Login(ctx, "alice", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost", "pw"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
