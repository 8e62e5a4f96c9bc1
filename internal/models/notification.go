package models

import (
	"time"
)

// NotificationType ties a notification back to the feature that raised it
type NotificationType string

const (
	NotificationTypeMaintenance NotificationType = "maintenance"
	NotificationTypeComplaint   NotificationType = "complaint"
	NotificationTypeSleepover   NotificationType = "sleepover"
	NotificationTypeGuest       NotificationType = "guest"
	NotificationTypeMessage     NotificationType = "message"
)

// Notification is an in-app message for a single user
type Notification struct {
	ID        string           `firestore:"-" json:"id"`
	UserID    string           `firestore:"userId" json:"userId"`
	Title     string           `firestore:"title" json:"title"`
	Message   string           `firestore:"message" json:"message"`
	Type      NotificationType `firestore:"type" json:"type"`
	Read      bool             `firestore:"read" json:"read"`
	CreatedAt time.Time        `firestore:"createdAt" json:"created_at"`
	UpdatedAt time.Time        `firestore:"updatedAt" json:"updated_at"`
}

// Announcement is a broadcast message shown to all students
type Announcement struct {
	ID        string    `firestore:"-" json:"id"`
	Title     string    `firestore:"title" json:"title"`
	Content   string    `firestore:"content" json:"content"`
	CreatedAt time.Time `firestore:"createdAt" json:"created_at"`
}
