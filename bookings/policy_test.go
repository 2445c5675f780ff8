package bookings

import (
	"testing"
	"time"

	"tourane/models"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{models.BookingPending, models.BookingConfirmed, models.BookingCancelled, models.BookingCompleted} {
		if !ValidStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "done", "CONFIRMED"} {
		if ValidStatus(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestCanTransitionIsUnrestricted(t *testing.T) {
	// Completed bookings can be reopened; there is no state machine.
	if !CanTransition(models.BookingCompleted, models.BookingPending) {
		t.Fatal("expected completed -> pending to be allowed")
	}
	if !CanTransition(models.BookingCancelled, models.BookingConfirmed) {
		t.Fatal("expected cancelled -> confirmed to be allowed")
	}
	if CanTransition(models.BookingPending, "done") {
		t.Fatal("expected unknown target status to be rejected")
	}
}

func TestActorAllowed(t *testing.T) {
	b := models.Booking{UserID: "u1", GuideUserID: "g1"}

	if !ActorAllowed("anyone", models.RoleAdmin, b, models.BookingCompleted) {
		t.Fatal("admin should be allowed any transition")
	}
	if !ActorAllowed("g1", models.RoleGuide, b, models.BookingConfirmed) {
		t.Fatal("assigned guide should be allowed")
	}
	if !ActorAllowed("u1", models.RoleUser, b, models.BookingCancelled) {
		t.Fatal("customer should be allowed to cancel")
	}
	if ActorAllowed("u1", models.RoleUser, b, models.BookingConfirmed) {
		t.Fatal("customer must not confirm their own booking")
	}
	if ActorAllowed("g2", models.RoleGuide, b, models.BookingConfirmed) {
		t.Fatal("unrelated guide must not touch the booking")
	}
}

func TestComputePrice(t *testing.T) {
	if got := ComputePrice(100, 3); got != 300 {
		t.Fatalf("expected 300, got %v", got)
	}
	// Guest counts below one price as a single guest.
	if got := ComputePrice(100, 0); got != 100 {
		t.Fatalf("expected 100 for zero guests, got %v", got)
	}
	if got := ComputePrice(100, -2); got != 100 {
		t.Fatalf("expected 100 for negative guests, got %v", got)
	}
}

func TestApplyTransitionStampsApproval(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	b := models.Booking{Status: models.BookingPending}

	ApplyTransition(&b, models.BookingConfirmed, "admin1", "", now)

	if b.Status != models.BookingConfirmed {
		t.Fatalf("expected confirmed, got %q", b.Status)
	}
	if b.ApprovedBy != "admin1" || b.ApprovedAt == nil || !b.ApprovedAt.Equal(now) {
		t.Fatalf("approval audit not stamped: by=%q at=%v", b.ApprovedBy, b.ApprovedAt)
	}
	if b.CancelledAt != nil {
		t.Fatal("cancellation fields must stay empty on approval")
	}
}

func TestApplyTransitionStampsCancellation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	b := models.Booking{Status: models.BookingConfirmed}
	ApplyTransition(&b, models.BookingCancelled, "u1", "change of plans", now)
	if b.CancelledAt == nil || !b.CancelledAt.Equal(now) {
		t.Fatalf("cancelledAt not stamped: %v", b.CancelledAt)
	}
	if b.CancelReason != "change of plans" {
		t.Fatalf("unexpected reason %q", b.CancelReason)
	}

	b = models.Booking{Status: models.BookingConfirmed}
	ApplyTransition(&b, models.BookingCancelled, "u1", "", now)
	if b.CancelReason != DefaultCancelReason {
		t.Fatalf("expected default reason, got %q", b.CancelReason)
	}
}
