package bookings

import (
	"time"

	"tourane/models"
)

// ValidStatus reports whether s is part of the booking status vocabulary.
func ValidStatus(s string) bool {
	switch s {
	case models.BookingPending, models.BookingConfirmed, models.BookingCancelled, models.BookingCompleted:
		return true
	}
	return false
}

// CanTransition is the single policy seam for status transitions.
// Transitions are currently unrestricted between valid statuses: admins
// use free transitions as an override (e.g. reopening a completed
// booking), so no state-machine guard is applied here.
func CanTransition(oldStatus, newStatus string) bool {
	return ValidStatus(newStatus)
}

// ActorAllowed decides whether an actor may request a transition: admins
// always, the assigned guide's account always, the customer only to
// cancel.
func ActorAllowed(actorID, actorRole string, b models.Booking, newStatus string) bool {
	if actorRole == models.RoleAdmin {
		return true
	}
	if b.GuideUserID != "" && actorID == b.GuideUserID {
		return true
	}
	if actorID == b.UserID && newStatus == models.BookingCancelled {
		return true
	}
	return false
}

// ComputePrice is the booking price at creation time: the location's
// price times the guest count, never recomputed later.
func ComputePrice(locationPrice float64, guests int) float64 {
	if guests < 1 {
		guests = 1
	}
	return locationPrice * float64(guests)
}

// DefaultCancelReason is stamped when a cancellation carries no reason.
const DefaultCancelReason = "no reason given"

// ApplyTransition mutates b for the requested transition, stamping the
// approval or cancellation audit fields.
func ApplyTransition(b *models.Booking, newStatus, actorID, reason string, now time.Time) {
	b.Status = newStatus

	switch newStatus {
	case models.BookingConfirmed:
		b.ApprovedBy = actorID
		b.ApprovedAt = &now
	case models.BookingCancelled:
		b.CancelledAt = &now
		if reason == "" {
			reason = DefaultCancelReason
		}
		b.CancelReason = reason
	}
}
