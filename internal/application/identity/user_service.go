package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/boilerparts/backend/internal/domain/identity"
	"github.com/boilerparts/backend/internal/domain/shared"
	"github.com/boilerparts/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Registration warnings. They are returned in a successful response body
// rather than as errors.
const (
	WarningEmailRequired = "Email is required"
	WarningUsernameTaken = "User with this name already exists"
	WarningEmailTaken    = "User with this email already exists"
)

// UserService handles user registration
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// Register creates a user unless the email is missing or the username or
// email is already taken, in which case only a warning is returned
func (s *UserService) Register(ctx context.Context, input RegisterRequest) (*RegisterResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "users", "register", telemetry.SpanAttrUsername, input.Username)
	defer span.End()

	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if email == "" {
		return &RegisterResult{WarningMessage: WarningEmailRequired}, nil
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		s.logger.Error("Failed to check username existence", zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, err
	}
	if exists {
		return &RegisterResult{WarningMessage: WarningUsernameTaken}, nil
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, err
	}
	if exists {
		return &RegisterResult{WarningMessage: WarningEmailTaken}, nil
	}

	user, err := identity.NewUser(username, email, input.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent sign-up
		if errors.Is(err, shared.ErrAlreadyExists) {
			return &RegisterResult{WarningMessage: WarningUsernameTaken}, nil
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	return &RegisterResult{User: ToUserResponse(user)}, nil
}
