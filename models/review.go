package models

import "time"

// Review is written once per completed visit and only after the booking's
// date has passed.
type Review struct {
	ReviewID   string    `json:"reviewid" bson:"reviewid"`
	BookingID  string    `json:"bookingid" bson:"bookingid"`
	ReviewerID string    `json:"reviewerid" bson:"reviewerid"`
	Rating     int       `json:"rating" bson:"rating"`
	Comment    string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
