package domain

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "PENDING"
	ApplicationStatusAssigned  ApplicationStatus = "ASSIGNED"
	ApplicationStatusDelivered ApplicationStatus = "DELIVERED"
)

// MaxPrayerRequestLen bounds the free-text prayer request.
const MaxPrayerRequestLen = 1000

// Application is a member's bible card request and its fulfillment state.
// One application per user; status only ever moves forward
// (PENDING -> ASSIGNED -> DELIVERED).
type Application struct {
	ID               uuid.UUID         `json:"id"`
	UserID           int32             `json:"user_id"`
	GroupID          *int32            `json:"group_id,omitempty"`
	Status           ApplicationStatus `json:"status"`
	PrayerRequest    string            `json:"prayer_request"`
	AssignedPastorID *int32            `json:"assigned_pastor_id,omitempty"`
	AssignedAt       *time.Time        `json:"assigned_at,omitempty"`
	DriveLink1       *string           `json:"drive_link_1,omitempty"`
	DriveLink2       *string           `json:"drive_link_2,omitempty"`
	LinksAddedAt     *time.Time        `json:"links_added_at,omitempty"`
	VisitCount       int32             `json:"visit_count"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// PastorWorkload is the admin-facing aggregate of how many applications a
// pastor currently carries (ASSIGNED plus DELIVERED).
type PastorWorkload struct {
	PastorID      int32  `json:"pastor_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	AssignedCount int32  `json:"assigned_count"`
}
