package services

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"onegoal/internal/models"
	"onegoal/internal/validation"
	"onegoal/pkg/apperrors"
)

// UserStore is the slice of the user repository the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateSettings(ctx context.Context, id primitive.ObjectID, settings models.UserSettings) error
	UpdateRoutineSettings(ctx context.Context, id primitive.ObjectID, settings models.RoutineSettings) error
	UpdateLastActive(ctx context.Context, id primitive.ObjectID) error
	GetAllUsers(ctx context.Context) ([]*models.User, error)
}

// UserService encapsulates the business logic for user operations.
type UserService struct {
	repo UserStore
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore) *UserService {
	return &UserService{
		repo: repo,
	}
}

// RegisterRequest is the payload accepted by RegisterUser.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// RegisterUser registers a new user after hashing their password.
func (s *UserService) RegisterUser(ctx context.Context, req RegisterRequest) (*models.User, error) {
	logrus.Info("Registering new user")

	if err := validation.Struct(req); err != nil {
		logrus.WithError(err).Warn("Invalid registration payload")
		return nil, err
	}

	// Check if the email is already registered
	existingUser, _ := s.repo.GetUserByEmail(ctx, req.Email)
	if existingUser != nil {
		logrus.WithField("email", req.Email).Warn("Email already in use")
		return nil, apperrors.New(apperrors.CodeValidationFailed, "email already in use")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to hash password")
	}

	user := &models.User{
		Username:        req.Username,
		Email:           req.Email,
		HashedPassword:  string(hashedPwd),
		Settings:        models.UserSettings{Timezone: "UTC"},
		RoutineSettings: models.DefaultRoutineSettings(),
	}

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to register user")
	}

	logrus.WithField("userID", createdUser.ID.Hex()).Info("User registered successfully")
	return createdUser, nil
}

// AuthenticateUser verifies the email and password and returns the user if
// credentials are valid. The caller never learns which half was wrong.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	logrus.WithField("email", email).Info("Authenticating user")

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logrus.WithField("email", email).Warn("User not found")
		return nil, apperrors.New(apperrors.CodeAuthRequired, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", email).Warn("Invalid credentials")
		return nil, apperrors.New(apperrors.CodeAuthRequired, "invalid credentials")
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logrus.WithError(err).Warn("Invalid user ID")
		return nil, apperrors.New(apperrors.CodeValidationFailed, "invalid user ID")
	}

	user, err := s.repo.GetUserByID(ctx, objID)
	if err != nil {
		logrus.WithError(err).Warn("Failed to retrieve user")
		return nil, apperrors.Wrap(apperrors.CodeNotFound, err, "user not found")
	}

	return user, nil
}

// UpdateSettings replaces the user's profile settings.
func (s *UserService) UpdateSettings(ctx context.Context, id string, settings models.UserSettings) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "invalid user ID")
	}

	if settings.Timezone != "" {
		if _, err := time.LoadLocation(settings.Timezone); err != nil {
			return nil, apperrors.New(apperrors.CodeValidationFailed, "unknown timezone %q", settings.Timezone)
		}
	}

	if err := s.repo.UpdateSettings(ctx, objID, settings); err != nil {
		logrus.WithError(err).Error("Failed to update user settings")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to update settings")
	}

	return s.GetUser(ctx, id)
}

// GetRoutineSettings returns the user's per-routine plans, filling defaults
// for kinds the stored document does not mention yet.
func (s *UserService) GetRoutineSettings(ctx context.Context, id string) (models.RoutineSettings, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	settings := models.DefaultRoutineSettings()
	for kind, plan := range user.RoutineSettings {
		if models.AllowedRoutineKinds[kind] {
			settings[kind] = plan
		}
	}
	return settings, nil
}

// UpdateRoutineSettings replaces the user's per-routine plans.
func (s *UserService) UpdateRoutineSettings(ctx context.Context, id string, settings models.RoutineSettings) (models.RoutineSettings, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeValidationFailed, "invalid user ID")
	}

	for kind, plan := range settings {
		if !models.AllowedRoutineKinds[kind] {
			return nil, apperrors.New(apperrors.CodeValidationFailed, "unknown routine kind %q", kind)
		}
		if err := validation.Struct(plan); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateRoutineSettings(ctx, objID, settings); err != nil {
		logrus.WithError(err).Error("Failed to update routine settings")
		return nil, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to update routine settings")
	}

	return s.GetRoutineSettings(ctx, id)
}

// UpdateLastActive stamps the user's last-active time. Failures are logged
// and swallowed so a stamping hiccup never breaks the request it rides on.
func (s *UserService) UpdateLastActive(ctx context.Context, id string) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return
	}
	if err := s.repo.UpdateLastActive(ctx, objID); err != nil {
		logrus.WithError(err).Warn("Failed to update last active timestamp")
	}
}

// GetAllUsers returns every registered user. Used by the reminder scans.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetAllUsers(ctx)
}
