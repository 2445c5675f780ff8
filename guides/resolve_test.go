package guides

import (
	"testing"

	"tourane/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestSummaryFallsBackToAccount(t *testing.T) {
	account := &models.User{UserID: "u1", Name: "Lan", Email: "lan@example.com", Phone: "555"}

	s := Resolution{Account: account}.Summary()
	if s.ProfileID != "" {
		t.Fatalf("expected empty profile id, got %q", s.ProfileID)
	}
	if s.UserID != "u1" || s.Name != "Lan" {
		t.Fatalf("account fields not carried: %+v", s)
	}

	profile := &models.GuideProfile{ProfileID: "p1", UserID: "u1"}
	s = Resolution{Profile: profile, Account: account}.Summary()
	if s.ProfileID != "p1" {
		t.Fatalf("expected profile id p1, got %q", s.ProfileID)
	}
}

func TestPaidOrLegacyFilter(t *testing.T) {
	filter := PaidOrLegacyFilter()

	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("expected two-branch $or, got %v", filter)
	}
	if or[0]["paymentStatus"] != models.PaymentPaid {
		t.Fatalf("first branch must match paid, got %v", or[0])
	}
	exists, ok := or[1]["paymentStatus"].(bson.M)
	if !ok || exists["$exists"] != false {
		t.Fatalf("second branch must match absent field, got %v", or[1])
	}
}
