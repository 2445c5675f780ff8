package models

import "time"

// Booking statuses
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Payment statuses stamped on a booking. Bookings created before the field
// existed carry no paymentStatus at all; readers must treat the absent
// field as paid (legacy records).
const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentFailed  = "failed"
)

type Booking struct {
	BookingID string `json:"bookingid" bson:"bookingid"`
	UserID    string `json:"userid" bson:"userid"`

	// GuideID references a GuideProfile. It is empty when the guide was
	// resolvable only as an account (no profile yet); GuideUserID always
	// carries the guide's account id.
	GuideID     string `json:"guideid,omitempty" bson:"guideid,omitempty"`
	GuideUserID string `json:"guideUserid,omitempty" bson:"guideUserid,omitempty"`
	LocationID  string `json:"locationid" bson:"locationid"`

	Date     time.Time `json:"date" bson:"date"`
	TimeSlot string    `json:"timeSlot" bson:"timeSlot"`
	Guests   int       `json:"guests" bson:"guests"`
	Price    float64   `json:"price" bson:"price"`
	Status   string    `json:"status" bson:"status"`

	PaymentStatus string `json:"paymentStatus,omitempty" bson:"paymentStatus,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`

	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
	Notes string `json:"notes,omitempty" bson:"notes,omitempty"`

	ApprovedBy   string     `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	CancelReason string     `json:"cancelReason,omitempty" bson:"cancelReason,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
