package guides

import (
	"context"
	"errors"

	"tourane/db"
	"tourane/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrGuideNotFound reports a guide reference that resolves to neither a
// GuideProfile nor a guide account.
var ErrGuideNotFound = errors.New("guide not found")

// Resolution is the outcome of resolving a guide reference. Profile is nil
// when the guide has no GuideProfile yet; Account is always set.
type Resolution struct {
	Profile *models.GuideProfile
	Account *models.User
}

// AccountID returns the guide's account id.
func (res Resolution) AccountID() string {
	return res.Account.UserID
}

// ProfileID returns the canonical GuideProfile id, or "" when the guide
// has no profile.
func (res Resolution) ProfileID() string {
	if res.Profile == nil {
		return ""
	}
	return res.Profile.ProfileID
}

// ResolveRef resolves a guide reference. The canonical reference is a
// GuideProfile id; account ids are still accepted as a compatibility shim
// for older call sites, via a reverse lookup. A guide account without a
// profile resolves to account-only data rather than failing.
func ResolveRef(ctx context.Context, ref string) (Resolution, error) {
	var profile models.GuideProfile
	err := db.GuideProfilesCollection.FindOne(ctx, bson.M{"profileid": ref}).Decode(&profile)
	if err == nil {
		var account models.User
		if err := db.UserCollection.FindOne(ctx, bson.M{"userid": profile.UserID}).Decode(&account); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return Resolution{}, ErrGuideNotFound
			}
			return Resolution{}, err
		}
		return Resolution{Profile: &profile, Account: &account}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return Resolution{}, err
	}

	// Compatibility shim: treat the reference as an account id.
	var account models.User
	err = db.UserCollection.FindOne(ctx, bson.M{"userid": ref, "role": models.RoleGuide}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Resolution{}, ErrGuideNotFound
		}
		return Resolution{}, err
	}

	err = db.GuideProfilesCollection.FindOne(ctx, bson.M{"userid": account.UserID}).Decode(&profile)
	if err == nil {
		return Resolution{Profile: &profile, Account: &account}, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Resolution{Account: &account}, nil
	}
	return Resolution{}, err
}

// ResolveByAccount locates a guide's profile from their account id.
// A missing profile is not an error; Profile is nil in that case.
func ResolveByAccount(ctx context.Context, accountID string) (*models.GuideProfile, error) {
	var profile models.GuideProfile
	err := db.GuideProfilesCollection.FindOne(ctx, bson.M{"userid": accountID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Summary builds the display shape for a resolution, falling back to
// account fields when no profile exists.
func (res Resolution) Summary() models.GuideSummary {
	return models.GuideSummary{
		ProfileID: res.ProfileID(),
		UserID:    res.Account.UserID,
		Name:      res.Account.Name,
		Email:     res.Account.Email,
		Phone:     res.Account.Phone,
	}
}

// PaidOrLegacyFilter selects bookings whose payment status is paid or
// whose record predates the paymentStatus field entirely. Bookings marked
// pending or failed are excluded. Kept as a named helper so the legacy
// read-compatibility rule lives in one place.
func PaidOrLegacyFilter() bson.M {
	return bson.M{"$or": []bson.M{
		{"paymentStatus": models.PaymentPaid},
		{"paymentStatus": bson.M{"$exists": false}},
	}}
}
