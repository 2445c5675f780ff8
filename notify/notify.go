package notify

import (
	"context"
	"encoding/json"
	"log"

	"tourane/rdx"
)

// Broadcaster is the in-process fan-out half of the relay; the chat hub
// satisfies it. Delivery is at-most-once with no confirmation.
type Broadcaster interface {
	BroadcastTo(room string, data []byte)
}

var broadcaster Broadcaster

// SetBroadcaster wires the websocket hub in at startup. A nil broadcaster
// simply skips local fan-out.
func SetBroadcaster(b Broadcaster) {
	broadcaster = b
}

// Envelope is the wire shape published on a topic.
type Envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// GuideTopic returns the private notification topic of a guide account.
func GuideTopic(guideUserID string) string {
	return "guide_" + guideUserID
}

// Publish sends an event on a topic. Fire-and-forget: failures are logged
// and swallowed, never surfaced to the caller, so booking and payment
// success cannot depend on notification delivery.
func Publish(ctx context.Context, topic, event string, payload any) {
	data, err := json.Marshal(Envelope{Event: event, Payload: payload})
	if err != nil {
		log.Printf("[notify] marshal %s on %s: %v", event, topic, err)
		return
	}

	if broadcaster != nil {
		broadcaster.BroadcastTo(topic, data)
	}

	if err := rdx.Conn.Publish(ctx, topic, data).Err(); err != nil {
		log.Printf("[notify] publish %s on %s: %v", event, topic, err)
	}
}
