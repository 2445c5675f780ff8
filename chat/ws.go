package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tourane/db"
	"tourane/middleware"
	"tourane/models"
	"tourane/notify"
	"tourane/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxMessageLen = 2000

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// inboundPayload represents what clients send us.
type inboundPayload struct {
	Message string `json:"message"`
}

// authFromRequest accepts the token either as a header or, for browser
// websocket clients that cannot set headers, as a query parameter.
func authFromRequest(r *http.Request) (*middleware.Claims, error) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		if t := r.URL.Query().Get("token"); t != "" {
			tokenString = "Bearer " + t
		}
	}
	return middleware.ValidateJWT(tokenString)
}

// RoomSocket upgrades the connection and joins the chat room from the URL.
func RoomSocket(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := authFromRequest(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		serveRoom(hub, w, r, ps.ByName("room"), claims, true)
	}
}

// NotifySocket joins the caller's private notification topic. The server
// only ever publishes on it; inbound frames are discarded.
func NotifySocket(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		claims, err := authFromRequest(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		serveRoom(hub, w, r, notify.GuideTopic(claims.UserID), claims, false)
	}
}

func serveRoom(hub *Hub, w http.ResponseWriter, r *http.Request, room string, claims *middleware.Claims, chatRoom bool) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	client := &Client{
		Conn:   conn,
		Send:   make(chan []byte, 256),
		Room:   room,
		UserID: claims.UserID,
		Name:   claims.Name,
	}

	if chatRoom {
		go sendHistory(client, room)
	}

	hub.register <- client
	go writePump(client)
	go readPump(client, hub, chatRoom)
}

// sendHistory replays the most recent messages, oldest first.
func sendHistory(client *Client, room string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(30)

	cur, err := db.MessagesCollection.Find(ctx, bson.M{"roomId": room}, opts)
	if err != nil {
		log.Println("history find:", err)
		return
	}
	defer cur.Close(ctx)

	var history []models.ChatMessage
	if err := cur.All(ctx, &history); err != nil {
		log.Println("history decode:", err)
		return
	}
	for i := len(history) - 1; i >= 0; i-- {
		if data, err := json.Marshal(history[i]); err == nil {
			client.Send <- data
		}
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, hub *Hub, persist bool) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}
		if !persist {
			continue
		}

		var in inboundPayload
		if err := json.Unmarshal(data, &in); err != nil {
			log.Printf("invalid payload: %v", err)
			continue
		}
		if in.Message == "" || len(in.Message) > maxMessageLen {
			continue
		}

		msg := models.ChatMessage{
			MessageID:  utils.GenerateRandomString(16),
			RoomID:     c.Room,
			SenderID:   c.UserID,
			SenderName: c.Name,
			Message:    in.Message,
			Timestamp:  time.Now().UTC(),
		}
		if _, err := db.MessagesCollection.InsertOne(context.Background(), msg); err != nil {
			log.Printf("insert error: %v", err)
			continue
		}

		if out, err := json.Marshal(msg); err == nil {
			hub.BroadcastTo(c.Room, out)
		}
	}
}
