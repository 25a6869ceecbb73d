package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	userserrors "cabroster/internal/users/errors"
	"cabroster/internal/users/validator"
	"cabroster/pkg/auth"
	"cabroster/pkg/config"
	apperrors "cabroster/pkg/errors"
	"cabroster/pkg/kafka"
	"cabroster/pkg/logger"
	"cabroster/pkg/model"
)

type mockUserRepo struct {
	createFn      func(ctx context.Context, user *model.User) error
	findByIDFn    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFn func(ctx context.Context, email string) (*model.User, error)
	findPendingFn func(ctx context.Context) ([]*model.User, error)
	setApprovalFn func(ctx context.Context, id string, approved, rejected bool) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepo) FindPending(ctx context.Context) ([]*model.User, error) {
	if m.findPendingFn != nil {
		return m.findPendingFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) SetApproval(ctx context.Context, id string, approved, rejected bool) error {
	if m.setApprovalFn != nil {
		return m.setApprovalFn(ctx, id, approved, rejected)
	}
	return nil
}

type mockPublisher struct {
	published []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log:           logger.New(logger.Config{Level: logger.ERROR}),
		DefaultRegion: "IN",
		ReadTimeout:   time.Second,
	}
}

func newTestService(t *testing.T, repo *mockUserRepo, pub *mockPublisher) UserService {
	t.Helper()
	cfg := testConfig(t)
	return NewUserService(
		repo,
		validator.NewUserValidator(cfg.DefaultRegion, cfg.Log),
		auth.NewTokenIssuer("test-secret", time.Hour),
		pub,
		cfg,
	)
}

func validRegistration() *model.RegistrationRequest {
	return &model.RegistrationRequest{
		Name:            "Asha Rao",
		Email:           "Asha@Example.com",
		MobileNumber:    "+919876543210",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegisterCreatesUnapprovedUser(t *testing.T) {
	var created *model.User
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			created = user
			return nil
		},
	}
	pub := &mockPublisher{}

	svc := newTestService(t, repo, pub)
	user, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatal("expected user to be persisted")
	}
	if user.Email != "asha@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.Approved || user.Rejected {
		t.Error("new users must await approval")
	}
	if user.Role != model.RoleUser {
		t.Errorf("expected role %q, got %q", model.RoleUser, user.Role)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret1" {
		t.Error("password must be stored hashed")
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.published))
	}
	if pub.published[0].Headers[kafka.HeaderEventType] != model.EventUserRegistered {
		t.Errorf("unexpected event type %q", pub.published[0].Headers[kafka.HeaderEventType])
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			return userserrors.ErrDuplicateEmail
		},
	}

	svc := newTestService(t, repo, &mockPublisher{})
	_, err := svc.Register(context.Background(), validRegistration())
	if err == nil {
		t.Fatal("expected error for duplicate email")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", appErr.StatusCode())
	}
	if appErr.Message != "an account with this email already exists" {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
}

func TestRegisterInvalidPayload(t *testing.T) {
	svc := newTestService(t, &mockUserRepo{}, &mockPublisher{})

	req := validRegistration()
	req.ConfirmPassword = "different1"
	_, err := svc.Register(context.Background(), req)
	if err == nil {
		t.Fatal("expected error for password mismatch")
	}
	if apperrors.AsAppError(err).Message != "passwords do not match" {
		t.Errorf("unexpected message: %q", apperrors.AsAppError(err).Message)
	}
}

func approvedUser(t *testing.T, password string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return &model.User{
		ID:           "user-1",
		Name:         "Asha Rao",
		Email:        "asha@example.com",
		PasswordHash: hash,
		Role:         model.RoleUser,
		Approved:     true,
	}
}

func TestLoginSucceedsForApprovedUser(t *testing.T) {
	user := approvedUser(t, "secret1")
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			if email != "asha@example.com" {
				t.Errorf("expected normalized email lookup, got %q", email)
			}
			return user, nil
		},
	}

	svc := newTestService(t, repo, &mockPublisher{})
	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "Asha@Example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}
	if resp.IsAdmin {
		t.Error("regular user must not be admin")
	}

	claims, err := auth.NewTokenIssuer("test-secret", time.Hour).Verify(resp.Token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != model.RoleUser {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsUnapprovedUser(t *testing.T) {
	user := approvedUser(t, "secret1")
	user.Approved = false
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return user, nil
		},
	}

	svc := newTestService(t, repo, &mockPublisher{})
	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret1",
	})
	if err == nil {
		t.Fatal("expected error for unapproved user")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", appErr.StatusCode())
	}
	if appErr.Message != "user is awaiting approval" {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
}

func TestLoginWrongPasswordAndUnknownEmailMatch(t *testing.T) {
	user := approvedUser(t, "secret1")
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			if email == "asha@example.com" {
				return user, nil
			}
			return nil, userserrors.ErrNotFound
		},
	}

	svc := newTestService(t, repo, &mockPublisher{})

	_, errWrong := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong-password",
	})
	_, errUnknown := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret1",
	})

	if errWrong == nil || errUnknown == nil {
		t.Fatal("expected both logins to fail")
	}
	if apperrors.AsAppError(errWrong).Message != apperrors.AsAppError(errUnknown).Message {
		t.Error("wrong password and unknown email must return the same message")
	}
	if apperrors.AsAppError(errWrong).StatusCode() != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", apperrors.AsAppError(errWrong).StatusCode())
	}
}

func TestApprovePublishesEvent(t *testing.T) {
	user := approvedUser(t, "secret1")
	user.Approved = false

	var gotApproved, gotRejected bool
	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return user, nil
		},
		setApprovalFn: func(ctx context.Context, id string, approved, rejected bool) error {
			gotApproved, gotRejected = approved, rejected
			return nil
		},
	}
	pub := &mockPublisher{}

	svc := newTestService(t, repo, pub)
	if err := svc.Approve(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !gotApproved || gotRejected {
		t.Errorf("expected approved=true rejected=false, got %v/%v", gotApproved, gotRejected)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.published))
	}
	if pub.published[0].Headers[kafka.HeaderEventType] != model.EventUserApproved {
		t.Errorf("unexpected event type %q", pub.published[0].Headers[kafka.HeaderEventType])
	}
}

func TestApproveUnknownUser(t *testing.T) {
	svc := newTestService(t, &mockUserRepo{}, &mockPublisher{})
	err := svc.Approve(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for unknown user")
	}
	if apperrors.AsAppError(err).StatusCode() != http.StatusNotFound {
		t.Errorf("expected 404, got %d", apperrors.AsAppError(err).StatusCode())
	}
}

func TestGetStatusProjectsUser(t *testing.T) {
	user := approvedUser(t, "secret1")
	user.MobileNumber = "+919876543210"
	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return user, nil
		},
	}

	svc := newTestService(t, repo, &mockPublisher{})
	status, err := svc.GetStatus(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Name != "Asha Rao" || status.MobileNumber != "+919876543210" || !status.Approved {
		t.Errorf("unexpected status: %+v", status)
	}
}
