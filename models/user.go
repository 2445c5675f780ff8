package models

import "time"

// Account roles
const (
	RoleAdmin = "admin"
	RoleGuide = "guide"
	RoleUser  = "user"
)

// Account statuses. A guide account starts pending and may only serve
// bookings once active.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusRejected  = "rejected"
	StatusSuspended = "suspended"
)

type User struct {
	UserID       string `json:"userid" bson:"userid"`
	Name         string `json:"name" bson:"name"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"passwordHash"`
	Role         string `json:"role" bson:"role"`
	Status       string `json:"status" bson:"status"`

	Phone     string   `json:"phone,omitempty" bson:"phone,omitempty"`
	Languages []string `json:"languages,omitempty" bson:"languages,omitempty"`
	Bio       string   `json:"bio,omitempty" bson:"bio,omitempty"`

	// Denormalized review aggregate (guides only)
	Rating       float64 `json:"rating,omitempty" bson:"rating,omitempty"`
	TotalReviews int     `json:"totalReviews,omitempty" bson:"totalReviews,omitempty"`

	ApprovedAt      *time.Time `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	ApprovedBy      string     `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty" bson:"rejectedAt,omitempty"`
	RejectedBy      string     `json:"rejectedBy,omitempty" bson:"rejectedBy,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`

	RefreshToken  string     `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry *time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     *time.Time `json:"-" bson:"last_login,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
