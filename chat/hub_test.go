package chat

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "user_a_b",
	}

	hub.register <- client

	data, _ := json.Marshal(map[string]string{"message": "hello test"})
	hub.BroadcastTo("user_a_b", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubBroadcastIsRoomScoped(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	inRoom := &Client{Send: make(chan []byte, 1), Room: "guide_g1"}
	elsewhere := &Client{Send: make(chan []byte, 1), Room: "guide_g2"}

	hub.register <- inRoom
	hub.register <- elsewhere

	hub.BroadcastTo("guide_g1", []byte("ping"))

	select {
	case <-inRoom.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message in target room")
	}

	select {
	case got := <-elsewhere.Send:
		t.Fatalf("unexpected delivery to other room: %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}
