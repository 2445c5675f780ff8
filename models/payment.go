package models

import "time"

// Payment records a captured payment for a booking, one-to-one with the
// booking in the payment-first creation path.
type Payment struct {
	PaymentID string    `json:"paymentid" bson:"paymentid"`
	UserID    string    `json:"userid" bson:"userid"`
	BookingID string    `json:"bookingid" bson:"bookingid"`
	Method    string    `json:"method" bson:"method"`
	Amount    float64   `json:"amount" bson:"amount"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
