package service

import (
	"context"
	"errors"
	"time"

	userserrors "cabroster/internal/users/errors"
	"cabroster/internal/users/repository"
	"cabroster/internal/users/validator"
	"cabroster/pkg/auth"
	"cabroster/pkg/config"
	apperrors "cabroster/pkg/errors"
	"cabroster/pkg/kafka"
	"cabroster/pkg/model"
	"cabroster/pkg/sanitizer"

	"github.com/google/uuid"
)

// EventPublisher emits domain events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type UserService interface {
	Register(ctx context.Context, req *model.RegistrationRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetStatus(ctx context.Context, id string) (*model.UserStatus, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListPending(ctx context.Context) ([]*model.User, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	issuer    *auth.TokenIssuer
	publisher EventPublisher
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	userValidator *validator.UserValidator,
	issuer *auth.TokenIssuer,
	publisher EventPublisher,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		validator: userValidator,
		issuer:    issuer,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Register creates an unapproved account. The user cannot log in until an
// administrator approves them.
func (s *userService) Register(ctx context.Context, req *model.RegistrationRequest) (*model.User, error) {
	if req != nil {
		req.Name = sanitizer.TrimSpaces(req.Name)
		req.Email = sanitizer.NormalizeEmail(req.Email)
		req.MobileNumber = sanitizer.NormalizeMobile(req.MobileNumber, s.cfg.DefaultRegion)
	}

	if err := s.validator.ValidateRegistration(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, apperrors.InvalidInput(verrs.Message())
		}
		return nil, apperrors.InvalidInput("invalid registration request")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.cfg.Log.Error("Failed to hash password", "email", req.Email, "error", err)
		return nil, apperrors.Internal("Failed to register user", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateEmail) {
			return nil, apperrors.InvalidInput("an account with this email already exists")
		}
		s.cfg.Log.Error("Failed to create user", "email", req.Email, "error", err)
		return nil, apperrors.Internal("Failed to register user", err)
	}

	s.cfg.Log.Info("User registered",
		"id", user.ID,
		"email", user.Email,
	)

	s.publishUserEvent(ctx, model.EventUserRegistered, user)

	return user, nil
}

// Login authenticates an approved account and issues a session token.
// Unknown email and wrong password return the same message so the
// response does not reveal which accounts exist.
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if req != nil {
		req.Email = sanitizer.NormalizeEmail(req.Email)
	}

	if err := s.validator.ValidateLogin(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, apperrors.InvalidInput(verrs.Message())
		}
		return nil, apperrors.InvalidInput("invalid login request")
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		s.cfg.Log.Error("Failed to look up user", "email", req.Email, "error", err)
		return nil, apperrors.Internal("Failed to log in", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	if !user.Approved {
		return nil, apperrors.Unauthorized("user is awaiting approval")
	}

	token, err := s.issuer.Issue(user.ID, user.Name, user.Role)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "user_id", user.ID, "error", err)
		return nil, apperrors.Internal("Failed to log in", err)
	}

	s.cfg.Log.Info("User logged in", "user_id", user.ID)

	return &model.LoginResponse{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.Role == model.RoleAdmin,
		Token:   token,
	}, nil
}

func (s *userService) GetStatus(ctx context.Context, id string) (*model.UserStatus, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.UserStatus{
		Name:         user.Name,
		Email:        user.Email,
		MobileNumber: user.MobileNumber,
		Approved:     user.Approved,
		Rejected:     user.Rejected,
	}, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.NotFound("user")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFound("user")
		}
		s.cfg.Log.Error("Failed to get user", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	return user, nil
}

func (s *userService) ListPending(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindPending(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list pending users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve pending users", err)
	}
	return users, nil
}

func (s *userService) Approve(ctx context.Context, id string) error {
	return s.setApproval(ctx, id, true, false, model.EventUserApproved)
}

func (s *userService) Reject(ctx context.Context, id string) error {
	return s.setApproval(ctx, id, false, true, model.EventUserRejected)
}

func (s *userService) setApproval(ctx context.Context, id string, approved, rejected bool, eventType string) error {
	if id == "" {
		return apperrors.NotFound("user")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFound("user")
		}
		s.cfg.Log.Error("Failed to look up user for approval", "id", id, "error", err)
		return apperrors.Internal("Failed to update user", err)
	}

	if err := s.repo.SetApproval(ctx, id, approved, rejected); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFound("user")
		}
		s.cfg.Log.Error("Failed to update user approval", "id", id, "error", err)
		return apperrors.Internal("Failed to update user", err)
	}

	s.cfg.Log.Info("User approval updated",
		"id", id,
		"approved", approved,
		"rejected", rejected,
	)

	user.Approved = approved
	user.Rejected = rejected
	s.publishUserEvent(ctx, eventType, user)

	return nil
}

func (s *userService) publishUserEvent(ctx context.Context, eventType string, user *model.User) {
	if s.publisher == nil {
		return
	}

	event := model.UserEvent{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		OccurredAt: time.Now().UTC(),
	}

	msg := kafka.NewMessage().
		WithKey(user.ID).
		WithValue(event).
		WithEventType(eventType).
		WithSource("users").
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish user event",
			"event_type", eventType,
			"user_id", user.ID,
			"error", err,
		)
	}
}
