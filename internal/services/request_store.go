package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dormhub_app_echo/internal/models"
)

const (
	complaintsCollection   = "complaints"
	maintenanceCollection  = "maintenance_requests"
	sleepoversCollection   = "sleepover_requests"
	guestsCollection       = "guest_registrations"
	announcementCollection = "announcements"
)

// RequestStore handles the four student request ticket types:
// complaints, maintenance requests, sleepover requests and guest
// registrations. Status decisions raise an in-app notification for the
// ticket owner.
type RequestStore struct {
	fs     *firestore.Client
	notifs *NotificationStore
}

func NewRequestStore(fs *firestore.Client, notifs *NotificationStore) *RequestStore {
	return &RequestStore{fs: fs, notifs: notifs}
}

func (s *RequestStore) add(ctx context.Context, collection string, data interface{}) (string, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	ref, _, err := s.fs.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("create %s: %w: %w", collection, ErrStoreUnavailable, err)
	}
	return ref.ID, nil
}

// list streams a collection, optionally filtered by owner, newest first
func (s *RequestStore) list(ctx context.Context, collection, userID string, decode func(*firestore.DocumentSnapshot) error) error {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	q := s.fs.Collection(collection).Query
	if userID != "" {
		q = q.Where("userId", "==", userID)
	}
	iter := q.OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("list %s: %w: %w", collection, ErrStoreUnavailable, err)
		}
		if err := decode(doc); err != nil {
			return err
		}
	}
}

// decide applies a status decision to a ticket. adminResponse may be
// nil, in which case any earlier response is left untouched.
func (s *RequestStore) decide(ctx context.Context, collection, requestID string, newStatus models.RequestStatus, adminResponse *string) (map[string]interface{}, error) {
	sctx, cancel := storeCtx(ctx)
	defer cancel()

	ref := s.fs.Collection(collection).Doc(requestID)
	doc, err := ref.Get(sctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%s %s: %w", collection, requestID, ErrNotFound)
		}
		return nil, fmt.Errorf("get %s %s: %w: %w", collection, requestID, ErrStoreUnavailable, err)
	}

	updates := []firestore.Update{
		{Path: "status", Value: newStatus},
		{Path: "updatedAt", Value: time.Now()},
	}
	if adminResponse != nil {
		updates = append(updates, firestore.Update{Path: "adminResponse", Value: *adminResponse})
	}

	if _, err := ref.Update(sctx, updates); err != nil {
		return nil, fmt.Errorf("update %s %s: %w: %w", collection, requestID, ErrStoreUnavailable, err)
	}
	return doc.Data(), nil
}

// notifyOwner raises the decision notification; a notification failure
// is logged but never rolls back the already-applied decision
func (s *RequestStore) notifyOwner(ctx context.Context, data map[string]interface{}, ntype models.NotificationType, title, message string) {
	userID, _ := data["userId"].(string)
	if userID == "" {
		return
	}
	if _, err := s.notifs.Create(ctx, userID, title, message, ntype); err != nil {
		log.Printf("Failed to notify %s about %s: %v", userID, ntype, err)
	}
}

// Complaints

func (s *RequestStore) CreateComplaint(ctx context.Context, c models.Complaint) (string, error) {
	if c.UserID == "" || c.Title == "" {
		return "", fmt.Errorf("complaint userId and title are required: %w", ErrValidation)
	}
	if c.Category == "" {
		c.Category = models.ComplaintCategoryOther
	}
	now := time.Now()
	c.Status = models.RequestStatusPending
	c.AdminResponse = ""
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.add(ctx, complaintsCollection, c)
}

func (s *RequestStore) Complaints(ctx context.Context, userID string) ([]models.Complaint, error) {
	out := []models.Complaint{}
	err := s.list(ctx, complaintsCollection, userID, func(doc *firestore.DocumentSnapshot) error {
		var c models.Complaint
		if err := doc.DataTo(&c); err != nil {
			return fmt.Errorf("decode complaint %s: %w: %w", doc.Ref.ID, ErrStoreUnavailable, err)
		}
		c.ID = doc.Ref.ID
		out = append(out, c)
		return nil
	})
	return out, err
}

func (s *RequestStore) DecideComplaint(ctx context.Context, complaintID string, newStatus models.RequestStatus, adminResponse *string) error {
	data, err := s.decide(ctx, complaintsCollection, complaintID, newStatus, adminResponse)
	if err != nil {
		return err
	}
	title, _ := data["title"].(string)
	s.notifyOwner(ctx, data, models.NotificationTypeComplaint,
		"Complaint Update",
		fmt.Sprintf("Your complaint %q has been %s", title, newStatus))
	return nil
}

// Maintenance requests

func (s *RequestStore) CreateMaintenanceRequest(ctx context.Context, m models.MaintenanceRequest) (string, error) {
	if m.UserID == "" || m.Title == "" {
		return "", fmt.Errorf("maintenance request userId and title are required: %w", ErrValidation)
	}
	now := time.Now()
	m.Status = models.RequestStatusPending
	m.AdminResponse = ""
	m.CreatedAt = now
	m.UpdatedAt = now
	return s.add(ctx, maintenanceCollection, m)
}

func (s *RequestStore) MaintenanceRequests(ctx context.Context, userID string) ([]models.MaintenanceRequest, error) {
	out := []models.MaintenanceRequest{}
	err := s.list(ctx, maintenanceCollection, userID, func(doc *firestore.DocumentSnapshot) error {
		var m models.MaintenanceRequest
		if err := doc.DataTo(&m); err != nil {
			return fmt.Errorf("decode maintenance request %s: %w: %w", doc.Ref.ID, ErrStoreUnavailable, err)
		}
		m.ID = doc.Ref.ID
		out = append(out, m)
		return nil
	})
	return out, err
}

func (s *RequestStore) DecideMaintenanceRequest(ctx context.Context, requestID string, newStatus models.RequestStatus, adminResponse *string) error {
	data, err := s.decide(ctx, maintenanceCollection, requestID, newStatus, adminResponse)
	if err != nil {
		return err
	}
	title, _ := data["title"].(string)
	s.notifyOwner(ctx, data, models.NotificationTypeMaintenance,
		"Maintenance Request Update",
		fmt.Sprintf("Your maintenance request %q has been %s", title, newStatus))
	return nil
}

// Sleepover requests

func (s *RequestStore) CreateSleepoverRequest(ctx context.Context, r models.SleepoverRequest) (string, error) {
	if r.UserID == "" || r.GuestName == "" {
		return "", fmt.Errorf("sleepover request userId and guestName are required: %w", ErrValidation)
	}
	if r.StartDate.IsZero() || r.EndDate.Before(r.StartDate) {
		return "", fmt.Errorf("sleepover dates are invalid: %w", ErrValidation)
	}
	now := time.Now()
	r.Status = models.RequestStatusPending
	r.AdminResponse = ""
	r.CreatedAt = now
	r.UpdatedAt = now
	return s.add(ctx, sleepoversCollection, r)
}

func (s *RequestStore) SleepoverRequests(ctx context.Context, userID string) ([]models.SleepoverRequest, error) {
	out := []models.SleepoverRequest{}
	err := s.list(ctx, sleepoversCollection, userID, func(doc *firestore.DocumentSnapshot) error {
		var r models.SleepoverRequest
		if err := doc.DataTo(&r); err != nil {
			return fmt.Errorf("decode sleepover request %s: %w: %w", doc.Ref.ID, ErrStoreUnavailable, err)
		}
		r.ID = doc.Ref.ID
		out = append(out, r)
		return nil
	})
	return out, err
}

func (s *RequestStore) DecideSleepoverRequest(ctx context.Context, requestID string, newStatus models.RequestStatus, adminResponse *string) error {
	data, err := s.decide(ctx, sleepoversCollection, requestID, newStatus, adminResponse)
	if err != nil {
		return err
	}
	guestName, _ := data["guestName"].(string)
	s.notifyOwner(ctx, data, models.NotificationTypeSleepover,
		"Sleepover Request Update",
		fmt.Sprintf("Your sleepover request for %s has been %s", guestName, newStatus))
	return nil
}

// Guest registrations

func (s *RequestStore) CreateGuestRegistration(ctx context.Context, g models.GuestRegistration) (string, error) {
	if g.UserID == "" || g.GuestName == "" {
		return "", fmt.Errorf("guest registration userId and guestName are required: %w", ErrValidation)
	}
	now := time.Now()
	g.Status = models.RequestStatusPending
	g.AdminResponse = ""
	g.CreatedAt = now
	g.UpdatedAt = now
	return s.add(ctx, guestsCollection, g)
}

func (s *RequestStore) GuestRegistrations(ctx context.Context, userID string) ([]models.GuestRegistration, error) {
	out := []models.GuestRegistration{}
	err := s.list(ctx, guestsCollection, userID, func(doc *firestore.DocumentSnapshot) error {
		var g models.GuestRegistration
		if err := doc.DataTo(&g); err != nil {
			return fmt.Errorf("decode guest registration %s: %w: %w", doc.Ref.ID, ErrStoreUnavailable, err)
		}
		g.ID = doc.Ref.ID
		out = append(out, g)
		return nil
	})
	return out, err
}

func (s *RequestStore) DecideGuestRegistration(ctx context.Context, registrationID string, newStatus models.RequestStatus, adminResponse *string) error {
	data, err := s.decide(ctx, guestsCollection, registrationID, newStatus, adminResponse)
	if err != nil {
		return err
	}
	guestName, _ := data["guestName"].(string)
	s.notifyOwner(ctx, data, models.NotificationTypeGuest,
		"Guest Registration Update",
		fmt.Sprintf("Guest registration for %s has been %s", guestName, newStatus))
	return nil
}

// Announcements

func (s *RequestStore) CreateAnnouncement(ctx context.Context, title, content string) (string, error) {
	if title == "" || content == "" {
		return "", fmt.Errorf("announcement title and content are required: %w", ErrValidation)
	}
	return s.add(ctx, announcementCollection, models.Announcement{
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
	})
}

func (s *RequestStore) Announcements(ctx context.Context) ([]models.Announcement, error) {
	out := []models.Announcement{}
	err := s.list(ctx, announcementCollection, "", func(doc *firestore.DocumentSnapshot) error {
		var a models.Announcement
		if err := doc.DataTo(&a); err != nil {
			return fmt.Errorf("decode announcement %s: %w: %w", doc.Ref.ID, ErrStoreUnavailable, err)
		}
		a.ID = doc.Ref.ID
		out = append(out, a)
		return nil
	})
	return out, err
}
