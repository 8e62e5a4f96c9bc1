package models

import (
	"time"
)

// UserRole represents the role of a housing resident account
type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleNewbie  UserRole = "newbie"
	UserRoleAdmin   UserRole = "admin"
)

// User is an identity record. The tenant code is the human-facing
// identifier handed out by the residence office; the document ID is the
// store-assigned internal identifier.
type User struct {
	ID         string    `firestore:"-" json:"id"`
	Name       string    `firestore:"name" json:"name"`
	Surname    string    `firestore:"surname" json:"surname"`
	FullName   string    `firestore:"full_name" json:"full_name"`
	Email      string    `firestore:"email" json:"email"`
	Phone      string    `firestore:"phone" json:"phone"`
	Role       UserRole  `firestore:"role" json:"role"`
	TenantCode string    `firestore:"tenant_code" json:"tenant_code"`
	RoomNumber string    `firestore:"room_number" json:"room_number"`
	CreatedAt  time.Time `firestore:"createdAt" json:"created_at"`
	UpdatedAt  time.Time `firestore:"updatedAt" json:"updated_at"`
}

// DisplayName joins the split name fields, preferring the precomposed one
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	name := u.Name
	if u.Surname != "" {
		if name != "" {
			name += " "
		}
		name += u.Surname
	}
	return name
}

// Admin is a staff record in the admins collection, linked to a user
// account by UserID
type Admin struct {
	ID        string    `firestore:"-" json:"id"`
	UserID    string    `firestore:"userId" json:"userId"`
	Email     string    `firestore:"email" json:"email"`
	Name      string    `firestore:"name" json:"name"`
	Type      string    `firestore:"type" json:"type"` // e.g. "admin-finance", "admin-maintenance"
	Role      string    `firestore:"role" json:"role"`
	CreatedAt time.Time `firestore:"createdAt" json:"created_at"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updated_at"`
}
