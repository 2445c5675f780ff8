package models

import "time"

// Notification event names published on a guide's private topic.
const (
	EventNewBooking           = "newBooking"
	EventBookingStatusChanged = "bookingStatusChanged"
)

// CustomerInfo identifies the booking customer inside notification payloads.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// LocationInfo is the location summary inside notification payloads.
type LocationInfo struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// NewBookingEvent is published when a booking is created.
type NewBookingEvent struct {
	BookingID string       `json:"bookingId"`
	Customer  CustomerInfo `json:"customer"`
	Location  LocationInfo `json:"location"`
	Date      time.Time    `json:"date"`
	TimeSlot  string       `json:"timeSlot"`
	Guests    int          `json:"guests"`
	Total     float64      `json:"total"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

// BookingStatusEvent is published on every status transition.
type BookingStatusEvent struct {
	BookingID string       `json:"bookingId"`
	OldStatus string       `json:"oldStatus"`
	NewStatus string       `json:"newStatus"`
	Customer  CustomerInfo `json:"customer"`
	Location  LocationInfo `json:"location"`
}
