package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"onegoal/internal/models"
	"onegoal/pkg/apperrors"
)

// NotificationStore is the slice of the notification repository the service
// needs.
type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) error
	DeleteNotification(ctx context.Context, id, userID primitive.ObjectID) error
	GetLatestNotificationByType(ctx context.Context, userID primitive.ObjectID, notifType string) (*models.Notification, error)
	DeleteExpiredNotifications(ctx context.Context) error
}

// NotificationPublisher pushes a freshly created notification to live
// listeners. The websocket hub implements it.
type NotificationPublisher interface {
	Publish(userID string, notif models.Notification)
}

type NotificationService struct {
	repo      NotificationStore
	publisher NotificationPublisher
}

// NewNotificationService creates a new instance of NotificationService.
// publisher may be nil when no live stream is wired.
func NewNotificationService(repo NotificationStore, publisher NotificationPublisher) *NotificationService {
	return &NotificationService{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateNotification stores a new notification for a user and pushes it to
// any live listeners.
func (s *NotificationService) CreateNotification(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, targetID *primitive.ObjectID) error {
	notif := &models.Notification{
		UserID:   userID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		Read:     false,
		TargetID: targetID,
	}
	if err := s.repo.CreateNotification(ctx, notif); err != nil {
		return err
	}

	if s.publisher != nil {
		s.publisher.Publish(userID.Hex(), *notif)
	}
	return nil
}

// GetUserNotifications returns the user's unexpired notifications, newest
// first.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.repo.GetUserNotifications(ctx, userID)
}

// MarkNotificationAsRead sets the "read" status of a notification to true.
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, userID primitive.ObjectID, notifID string) error {
	objID, err := primitive.ObjectIDFromHex(notifID)
	if err != nil {
		return apperrors.New(apperrors.CodeValidationFailed, "invalid notification ID")
	}
	return s.repo.MarkAsRead(ctx, objID, userID)
}

// DeleteNotification deletes a specific notification.
func (s *NotificationService) DeleteNotification(ctx context.Context, userID primitive.ObjectID, notifID string) error {
	objID, err := primitive.ObjectIDFromHex(notifID)
	if err != nil {
		return apperrors.New(apperrors.CodeValidationFailed, "invalid notification ID")
	}
	return s.repo.DeleteNotification(ctx, objID, userID)
}

// GetLatestByType returns the most recent notification of one type, or nil.
func (s *NotificationService) GetLatestByType(ctx context.Context, userID primitive.ObjectID, notifType string) (*models.Notification, error) {
	return s.repo.GetLatestNotificationByType(ctx, userID, notifType)
}

// DeleteExpiredNotifications removes notifications past their expiry.
func (s *NotificationService) DeleteExpiredNotifications(ctx context.Context) error {
	return s.repo.DeleteExpiredNotifications(ctx)
}
