package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tourane/db"
	"tourane/models"
	"tourane/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetHistory returns up to the 100 most recent messages of a room,
// oldest first.
func GetHistory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID := ps.ByName("room")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: 1}}).
		SetLimit(100)

	cur, err := db.MessagesCollection.Find(ctx, bson.M{"roomId": roomID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load chat history")
		return
	}
	defer cur.Close(ctx)

	var messages []models.ChatMessage
	if err := cur.All(ctx, &messages); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode messages")
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":  true,
		"roomId":   roomID,
		"messages": messages,
	})
}

// SendMessage persists a message over REST; used by clients without an
// open socket. The message is also fanned out to the room.
func SendMessage(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID := utils.GetUserIDFromRequest(r)
		if userID == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		roomID := ps.ByName("room")
		var body struct {
			SenderName string `json:"senderName"`
			Message    string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
			return
		}
		if roomID == "" || body.Message == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Missing room or message")
			return
		}
		if len(body.Message) > maxMessageLen {
			utils.RespondWithError(w, http.StatusBadRequest, "Message too long")
			return
		}
		if body.SenderName == "" {
			body.SenderName = "Unknown"
		}

		msg := models.ChatMessage{
			MessageID:  utils.GenerateRandomString(16),
			RoomID:     roomID,
			SenderID:   userID,
			SenderName: body.SenderName,
			Message:    body.Message,
			Timestamp:  time.Now().UTC(),
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if _, err := db.MessagesCollection.InsertOne(ctx, msg); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save message")
			return
		}

		if data, err := json.Marshal(msg); err == nil {
			hub.BroadcastTo(roomID, data)
		}

		utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "data": msg})
	}
}

// GetRooms lists the rooms the caller has participated in, with the last
// message of each.
func GetRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rooms, err := db.MessagesCollection.Distinct(ctx, "roomId", bson.M{
		"$or": []bson.M{
			{"senderId": userID},
			{"roomId": bson.M{"$regex": "user_" + userID + "_"}},
		},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list rooms")
		return
	}

	type roomEntry struct {
		RoomID      string              `json:"roomId"`
		LastMessage *models.ChatMessage `json:"lastMessage"`
	}

	out := make([]roomEntry, 0, len(rooms))
	for _, rid := range rooms {
		roomID, ok := rid.(string)
		if !ok {
			continue
		}
		entry := roomEntry{RoomID: roomID}

		var last models.ChatMessage
		err := db.MessagesCollection.FindOne(ctx, bson.M{"roomId": roomID},
			options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})).Decode(&last)
		if err == nil {
			entry.LastMessage = &last
		}
		out = append(out, entry)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "rooms": out})
}
