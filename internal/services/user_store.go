package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dormhub_app_echo/internal/models"
)

const (
	usersCollection  = "users"
	adminsCollection = "admins"
)

// UserStore reads identity records from the users collection
type UserStore struct {
	fs *firestore.Client
}

func NewUserStore(fs *firestore.Client) *UserStore {
	return &UserStore{fs: fs}
}

func docToUser(doc *firestore.DocumentSnapshot) (models.User, error) {
	var u models.User
	if err := doc.DataTo(&u); err != nil {
		return models.User{}, fmt.Errorf("decode user %s: %w: %w", doc.Ref.ID, ErrStoreUnavailable, err)
	}
	u.ID = doc.Ref.ID
	return u, nil
}

// ByID fetches a user by internal identifier
func (s *UserStore) ByID(ctx context.Context, userID string) (models.User, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	doc, err := s.fs.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.User{}, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return models.User{}, fmt.Errorf("get user %s: %w: %w", userID, ErrStoreUnavailable, err)
	}
	return docToUser(doc)
}

// ByTenantCode resolves a human-facing tenant code to a user record.
// Tenant codes are expected to be unique; if more than one record
// matches, the first one encountered wins.
func (s *UserStore) ByTenantCode(ctx context.Context, tenantCode string) (models.User, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	iter := s.fs.Collection(usersCollection).
		Where("tenant_code", "==", tenantCode).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return models.User{}, fmt.Errorf("tenant code %s: %w", tenantCode, ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("lookup tenant code %s: %w: %w", tenantCode, ErrStoreUnavailable, err)
	}
	return docToUser(doc)
}

// All lists every user record
func (s *UserStore) All(ctx context.Context) ([]models.User, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	iter := s.fs.Collection(usersCollection).Documents(ctx)
	defer iter.Stop()

	users := []models.User{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list users: %w: %w", ErrStoreUnavailable, err)
		}
		u, err := docToUser(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// Students lists user records holding a resident role
func (s *UserStore) Students(ctx context.Context) ([]models.User, error) {
	users, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	students := users[:0]
	for _, u := range users {
		if u.Role == models.UserRoleStudent {
			students = append(students, u)
		}
	}
	return students, nil
}

// IsAdmin reports whether a staff record exists for the given user
func (s *UserStore) IsAdmin(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	iter := s.fs.Collection(adminsCollection).
		Where("userId", "==", userID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup admin %s: %w: %w", userID, ErrStoreUnavailable, err)
	}
	return true, nil
}
