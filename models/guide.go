package models

import "time"

// GuideProfile holds guide-specific attributes, one-to-one with a
// guide-role account. A guide may exist without a profile; callers fall
// back to account-derived defaults in that case.
type GuideProfile struct {
	ProfileID      string   `json:"profileid" bson:"profileid"`
	UserID         string   `json:"userid" bson:"userid"`
	Languages      []string `json:"languages,omitempty" bson:"languages,omitempty"`
	Certifications []string `json:"certifications,omitempty" bson:"certifications,omitempty"`
	Bio            string   `json:"bio,omitempty" bson:"bio,omitempty"`
	PricePerDay    float64  `json:"pricePerDay,omitempty" bson:"pricePerDay,omitempty"`
	Approved       bool     `json:"approved" bson:"approved"`
	Rating         float64  `json:"rating,omitempty" bson:"rating,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// GuideSummary is the display shape embedded in booking listings.
type GuideSummary struct {
	ProfileID string `json:"profileid,omitempty"`
	UserID    string `json:"userid,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}
