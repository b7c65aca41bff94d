package domain

import "time"

// Room is the persisted record behind a named study room. The realtime
// layer only sees room names; this record exists so that joining a room
// can be authorized over HTTP before the socket join is attempted.
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"roomName"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRoomRequest represents a create-or-join room request.
type CreateRoomRequest struct {
	RoomName string `json:"roomName" binding:"required,min=1,max=100"`
}

// RoomResponse represents a room in API responses.
type RoomResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"roomName"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts Room to RoomResponse.
func (r *Room) ToResponse() RoomResponse {
	return RoomResponse{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
}
