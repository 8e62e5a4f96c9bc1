package models

import (
	"time"
)

// RequestStatus is the shared ticket status for student requests.
// Complaints and maintenance requests move pending -> in_progress ->
// resolved/completed or rejected; sleepovers and guest registrations go
// straight to approved or rejected.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusResolved   RequestStatus = "resolved"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusApproved   RequestStatus = "approved"
	RequestStatusRejected   RequestStatus = "rejected"
)

// ComplaintCategory classifies a complaint
type ComplaintCategory string

const (
	ComplaintCategoryMaintenance ComplaintCategory = "maintenance"
	ComplaintCategorySecurity    ComplaintCategory = "security"
	ComplaintCategoryNoise       ComplaintCategory = "noise"
	ComplaintCategoryCleanliness ComplaintCategory = "cleanliness"
	ComplaintCategoryOther       ComplaintCategory = "other"
)

// Complaint is a student-submitted complaint ticket
type Complaint struct {
	ID            string            `firestore:"-" json:"id"`
	UserID        string            `firestore:"userId" json:"userId"`
	Title         string            `firestore:"title" json:"title"`
	Description   string            `firestore:"description" json:"description"`
	Category      ComplaintCategory `firestore:"category" json:"category"`
	Location      string            `firestore:"location,omitempty" json:"location,omitempty"`
	Status        RequestStatus     `firestore:"status" json:"status"`
	AdminResponse string            `firestore:"adminResponse" json:"adminResponse,omitempty"`
	CreatedAt     time.Time         `firestore:"createdAt" json:"created_at"`
	UpdatedAt     time.Time         `firestore:"updatedAt" json:"updated_at"`
}

// MaintenanceRequest is a repair ticket for a student's room or a common area
type MaintenanceRequest struct {
	ID            string        `firestore:"-" json:"id"`
	UserID        string        `firestore:"userId" json:"userId"`
	Title         string        `firestore:"title" json:"title"`
	Description   string        `firestore:"description" json:"description"`
	RoomNumber    string        `firestore:"roomNumber" json:"roomNumber"`
	Priority      string        `firestore:"priority" json:"priority"`
	Status        RequestStatus `firestore:"status" json:"status"`
	AdminResponse string        `firestore:"adminResponse" json:"adminResponse,omitempty"`
	CreatedAt     time.Time     `firestore:"createdAt" json:"created_at"`
	UpdatedAt     time.Time     `firestore:"updatedAt" json:"updated_at"`
}

// SleepoverRequest asks permission for an overnight guest
type SleepoverRequest struct {
	ID            string        `firestore:"-" json:"id"`
	UserID        string        `firestore:"userId" json:"userId"`
	GuestName     string        `firestore:"guestName" json:"guestName"`
	GuestPhone    string        `firestore:"guestPhone" json:"guestPhone"`
	RoomNumber    string        `firestore:"roomNumber" json:"roomNumber"`
	StartDate     time.Time     `firestore:"startDate" json:"startDate"`
	EndDate       time.Time     `firestore:"endDate" json:"endDate"`
	Status        RequestStatus `firestore:"status" json:"status"`
	AdminResponse string        `firestore:"adminResponse" json:"adminResponse,omitempty"`
	CreatedAt     time.Time     `firestore:"createdAt" json:"created_at"`
	UpdatedAt     time.Time     `firestore:"updatedAt" json:"updated_at"`
}

// GuestRegistration registers a daytime visitor
type GuestRegistration struct {
	ID            string        `firestore:"-" json:"id"`
	UserID        string        `firestore:"userId" json:"userId"`
	GuestName     string        `firestore:"guestName" json:"guestName"`
	GuestEmail    string        `firestore:"guestEmail" json:"guestEmail"`
	VisitDate     string        `firestore:"visitDate" json:"visitDate"`
	VisitTime     string        `firestore:"visitTime" json:"visitTime"`
	Purpose       string        `firestore:"purpose" json:"purpose"`
	Status        RequestStatus `firestore:"status" json:"status"`
	AdminResponse string        `firestore:"adminResponse" json:"adminResponse,omitempty"`
	CreatedAt     time.Time     `firestore:"createdAt" json:"created_at"`
	UpdatedAt     time.Time     `firestore:"updatedAt" json:"updated_at"`
}
