package models

import "time"

// Location is a bookable destination. Guides holds account ids of guides
// eligible to service it; the list is mutated only by additive assignment
// and explicit removal.
type Location struct {
	LocationID  string   `json:"locationid" bson:"locationid"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Category    string   `json:"category,omitempty" bson:"category,omitempty"`
	Price       float64  `json:"price" bson:"price"`
	Images      []string `json:"images" bson:"images"`
	Guides      []string `json:"guides" bson:"guides"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// LocationSummary is the display shape embedded in booking listings.
type LocationSummary struct {
	LocationID string   `json:"locationid"`
	Name       string   `json:"name"`
	Category   string   `json:"category,omitempty"`
	Price      float64  `json:"price"`
	Images     []string `json:"images,omitempty"`
}
