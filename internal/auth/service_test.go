package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	pkgauth "github.com/omaralfarsi/fleetledger-backend/pkg/auth"
	"github.com/omaralfarsi/fleetledger-backend/pkg/config"
	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
	pkgerrors "github.com/omaralfarsi/fleetledger-backend/pkg/errors"
	"github.com/omaralfarsi/fleetledger-backend/pkg/security"
)

type fakeUserRepo struct {
	byUsername map[string]*models.User
	byID       map[uint]*models.User
	createErr  error
	created    []*models.User

	lastLoginID uint
	lastLoginAt time.Time
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = uint(len(f.created) + 1)
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := f.byUsername[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	f.lastLoginID = id
	f.lastLoginAt = at
	return nil
}

type fakeSessions struct {
	created []string
	revoked []string
}

func (f *fakeSessions) Create(ctx context.Context, accessID string, userID uint) error {
	f.created = append(f.created, accessID)
	return nil
}

func (f *fakeSessions) Revoke(ctx context.Context, accessID string) error {
	f.revoked = append(f.revoked, accessID)
	return nil
}

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "fleetledger-test",
	ExpirationMinutes: 60,
}

func newTestService(t *testing.T, repo *fakeUserRepo, sessions *fakeSessions) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig,
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func TestLogin_MintsRevocableToken(t *testing.T) {
	restore := timeNowUTC
	frozen := time.Date(2025, 8, 31, 9, 0, 0, 0, time.UTC)
	timeNowUTC = func() time.Time { return frozen }
	t.Cleanup(func() { timeNowUTC = restore })

	user := &models.User{
		ID:           7,
		Username:     "dispatcher",
		Email:        "dispatcher@example.com",
		PasswordHash: hashFor(t, "open-sesame"),
		Role:         enums.UserRoleManager,
		IsActive:     true,
	}
	repo := &fakeUserRepo{byUsername: map[string]*models.User{"dispatcher": user}}
	sessions := &fakeSessions{}
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "dispatcher", Password: "open-sesame"})
	if err != nil {
		t.Fatalf("login error: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "dispatcher" || claims.Role != enums.UserRoleManager {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if len(sessions.created) != 1 || sessions.created[0] != claims.ID {
		t.Fatalf("session must be keyed by the token jti, got %v", sessions.created)
	}
	if repo.lastLoginID != 7 || !repo.lastLoginAt.Equal(frozen) {
		t.Fatalf("last login not stamped: id=%d at=%s", repo.lastLoginID, repo.lastLoginAt)
	}
	if resp.User == nil || resp.User.LastLogin == nil || !resp.User.LastLogin.Equal(frozen) {
		t.Fatal("response user must carry the fresh last login")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	user := &models.User{
		ID:           1,
		Username:     "dispatcher",
		PasswordHash: hashFor(t, "open-sesame"),
		Role:         enums.UserRoleUser,
		IsActive:     true,
	}
	repo := &fakeUserRepo{byUsername: map[string]*models.User{"dispatcher": user}}
	svc := newTestService(t, repo, &fakeSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "dispatcher", Password: "wrong"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newTestService(t, &fakeUserRepo{}, &fakeSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "whatever"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogin_DisabledAccount(t *testing.T) {
	user := &models.User{
		ID:           1,
		Username:     "dispatcher",
		PasswordHash: hashFor(t, "open-sesame"),
		Role:         enums.UserRoleUser,
	}
	repo := &fakeUserRepo{byUsername: map[string]*models.User{"dispatcher": user}}
	svc := newTestService(t, repo, &fakeSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "dispatcher", Password: "open-sesame"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for disabled account, got %v", err)
	}
}

func TestRegister_AdminOnly(t *testing.T) {
	svc := newTestService(t, &fakeUserRepo{}, &fakeSessions{})

	_, err := svc.Register(context.Background(), enums.UserRoleUser, RegisterRequest{
		Username: "newbie",
		Email:    "newbie@example.com",
		Password: "s3cret-pass",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for non-admin, got %v", err)
	}
}

func TestRegister_DefaultsToUserRole(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestService(t, repo, &fakeSessions{})

	dto, err := svc.Register(context.Background(), enums.UserRoleAdmin, RegisterRequest{
		Username: "Newbie ",
		Email:    "Newbie@Example.com",
		Password: "s3cret-pass",
		FullName: "New Operator",
	})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if dto.Role != enums.UserRoleUser {
		t.Fatalf("expected default user role, got %q", dto.Role)
	}
	if dto.Username != "Newbie" || dto.Email != "newbie@example.com" {
		t.Fatalf("expected trimmed username and lowercased email, got %q %q", dto.Username, dto.Email)
	}

	created := repo.created[0]
	if created.PasswordHash == "" || created.PasswordHash == "s3cret-pass" {
		t.Fatal("password must be stored hashed")
	}
	ok, err := security.VerifyPassword("s3cret-pass", created.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("stored hash must verify: ok=%v err=%v", ok, err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := &fakeUserRepo{
		createErr: errors.New(`duplicate key value violates unique constraint "idx_users_username"`),
	}
	svc := newTestService(t, repo, &fakeSessions{})

	_, err := svc.Register(context.Background(), enums.UserRoleAdmin, RegisterRequest{
		Username: "taken",
		Email:    "taken@example.com",
		Password: "s3cret-pass",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLogout_RevokesSession(t *testing.T) {
	sessions := &fakeSessions{}
	svc := newTestService(t, &fakeUserRepo{}, sessions)

	if err := svc.Logout(context.Background(), "access-123"); err != nil {
		t.Fatalf("logout error: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-123" {
		t.Fatalf("expected revocation of access-123, got %v", sessions.revoked)
	}

	err := svc.Logout(context.Background(), "  ")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for blank access id, got %v", err)
	}
}

func TestCurrentUser_NotFound(t *testing.T) {
	svc := newTestService(t, &fakeUserRepo{}, &fakeSessions{})

	_, err := svc.CurrentUser(context.Background(), 404)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
