package models

import "time"

// ChatMessage is append-only; messages are never edited or deleted. Room
// ids are conventionally derived from the two participants
// (e.g. "user_<customerId>_<guideId>").
type ChatMessage struct {
	MessageID  string    `json:"messageid" bson:"messageid"`
	RoomID     string    `json:"roomId" bson:"roomId"`
	SenderID   string    `json:"senderId" bson:"senderId"`
	SenderName string    `json:"senderName" bson:"senderName"`
	Message    string    `json:"message" bson:"message"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}
