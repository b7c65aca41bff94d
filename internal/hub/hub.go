package hub

import (
	"encoding/json"
	"sync"

	"github.com/aryanarora07/studybuddy-new/internal/config"
	"github.com/aryanarora07/studybuddy-new/pkg/log"
)

// Hub owns the room membership registry and relays events between clients.
// A room exists exactly while it has at least one member: the first join
// creates it, the last leave (or disconnect) removes it. Each instance is
// independent; nothing is process-global.
type Hub struct {
	clients    map[string]*Client            // clientID -> client
	rooms      map[string]map[string]*Client // roomName -> clientID -> client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *roomBroadcast
	mu         sync.RWMutex
	config     config.WebSocketConfig
}

type roomBroadcast struct {
	RoomName string
	Data     []byte
	Exclude  string // client ID to exclude, the sender
}

// NewHub creates a new Hub. Call Run in a goroutine before registering
// clients.
func NewHub(cfg config.WebSocketConfig) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *roomBroadcast, 256),
		config:     cfg,
	}
}

// Run drains the register/unregister/broadcast channels. Serializing
// disconnects and broadcasts through one loop guarantees that no broadcast
// accepted after a disconnect can reach the departed client.
func (h *Hub) Run() {
	l := log.L()
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			l.Debug().Str(log.FieldClientID, client.ID).Msg("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				for roomName, members := range h.rooms {
					delete(members, client.ID)
					if len(members) == 0 {
						delete(h.rooms, roomName)
					}
				}
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			l.Debug().Str(log.FieldClientID, client.ID).Msg("client unregistered")

		case msg := <-h.broadcast:
			h.mu.RLock()
			if members, ok := h.rooms[msg.RoomName]; ok {
				for clientID, client := range members {
					if clientID == msg.Exclude {
						continue
					}
					select {
					case client.Send <- msg.Data:
					default:
						// Slow consumer; drop it rather than stall the room.
						go h.removeClient(client)
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub and from every room it joined.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// JoinRoom adds a client to a room, creating the room on first join.
// Rejoining is a no-op; a client may be in any number of rooms at once.
func (h *Hub) JoinRoom(client *Client, roomName string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomName]; !ok {
		h.rooms[roomName] = make(map[string]*Client)
	}
	h.rooms[roomName][client.ID] = client

	log.L().Info().
		Str(log.FieldClientID, client.ID).
		Str(log.FieldRoom, roomName).
		Int("members", len(h.rooms[roomName])).
		Msg("client joined room")
}

// LeaveRoom removes a client from a room. Leaving a room the client is not
// a member of is a no-op. The room entry is dropped once empty.
func (h *Hub) LeaveRoom(client *Client, roomName string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[roomName]
	if !ok {
		return
	}
	delete(members, client.ID)
	if len(members) == 0 {
		delete(h.rooms, roomName)
	}

	log.L().Info().
		Str(log.FieldClientID, client.ID).
		Str(log.FieldRoom, roomName).
		Msg("client left room")
}

// BroadcastToRoom delivers payload to every current member of the room
// except the sender. An empty or unknown room is a silent no-op.
func (h *Hub) BroadcastToRoom(roomName string, payload interface{}, exclude string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	h.broadcast <- &roomBroadcast{
		RoomName: roomName,
		Data:     data,
		Exclude:  exclude,
	}
	return nil
}

// RoomClientCount reports the current number of members in a room.
func (h *Hub) RoomClientCount(roomName string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[roomName])
}

// IsMember reports whether the client is currently a member of the room.
func (h *Hub) IsMember(clientID, roomName string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.rooms[roomName][clientID]
	return ok
}

// Stats returns the number of active rooms and connected clients.
func (h *Hub) Stats() (rooms, clients int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms), len(h.clients)
}

func (h *Hub) removeClient(client *Client) {
	h.unregister <- client
}
