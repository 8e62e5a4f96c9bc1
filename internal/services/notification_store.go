package services

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dormhub_app_echo/internal/models"
)

const notificationsCollection = "notifications"

// NotificationStore manages per-user in-app notifications
type NotificationStore struct {
	fs *firestore.Client
}

func NewNotificationStore(fs *firestore.Client) *NotificationStore {
	return &NotificationStore{fs: fs}
}

// Create writes a new unread notification for the user
func (s *NotificationStore) Create(ctx context.Context, userID, title, message string, ntype models.NotificationType) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("notification userId is required: %w", ErrValidation)
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	now := time.Now()
	ref, _, err := s.fs.Collection(notificationsCollection).Add(ctx, models.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      ntype,
		Read:      false,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return "", fmt.Errorf("create notification for %s: %w: %w", userID, ErrStoreUnavailable, err)
	}
	return ref.ID, nil
}

// ForUser lists a user's notifications, newest first
func (s *NotificationStore) ForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	iter := s.fs.Collection(notificationsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	out := []models.Notification{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list notifications for %s: %w: %w", userID, ErrStoreUnavailable, err)
		}
		var n models.Notification
		if err := doc.DataTo(&n); err != nil {
			return nil, fmt.Errorf("decode notification %s: %w: %w", doc.Ref.ID, ErrStoreUnavailable, err)
		}
		n.ID = doc.Ref.ID
		out = append(out, n)
	}
	return out, nil
}

// MarkRead flags a single notification as read
func (s *NotificationStore) MarkRead(ctx context.Context, notificationID string) error {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	_, err := s.fs.Collection(notificationsCollection).Doc(notificationID).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("notification %s: %w", notificationID, ErrNotFound)
		}
		return fmt.Errorf("mark notification %s read: %w: %w", notificationID, ErrStoreUnavailable, err)
	}
	return nil
}

// MarkAllRead flags every notification belonging to the user as read in
// a single batched write
func (s *NotificationStore) MarkAllRead(ctx context.Context, userID string) error {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	iter := s.fs.Collection(notificationsCollection).
		Where("userId", "==", userID).
		Documents(ctx)
	defer iter.Stop()

	bw := s.fs.BulkWriter(ctx)
	now := time.Now()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("list notifications for %s: %w: %w", userID, ErrStoreUnavailable, err)
		}
		if _, err := bw.Update(doc.Ref, []firestore.Update{
			{Path: "read", Value: true},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return fmt.Errorf("queue mark-read for %s: %w: %w", doc.Ref.ID, ErrStoreUnavailable, err)
		}
	}
	bw.End()
	return nil
}
