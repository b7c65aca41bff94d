package domain

import "time"

// WebSocket frame types from client.
const (
	FrameJoinRoom       = "join-room"
	FrameLeaveRoom      = "leave-room"
	FrameSendMessage    = "send-message"
	FrameDrawLine       = "draw-line"
	FrameUpdateDocument = "update-document"
)

// WebSocket frame types to client.
const (
	FrameMessage        = "message"
	FrameDrawLineOut    = "drawLine"
	FrameDocumentUpdate = "documentUpdate"
	FrameError          = "error"
)

// Error codes for realtime error frames.
const (
	ErrCodeBadFrame = "BAD_FRAME"
)

// BaseFrame is the tag every WebSocket frame starts with.
type BaseFrame struct {
	Type string `json:"type"`
}

// ChatMessage is a chat event payload; relayed unchanged.
type ChatMessage struct {
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Point is a whiteboard coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is a whiteboard draw operation payload; relayed unchanged.
type Line struct {
	Start     Point   `json:"start"`
	End       Point   `json:"end"`
	Color     string  `json:"color"`
	BrushSize float64 `json:"brushSize"`
}

// Client -> Server frames

type JoinRoomFrame struct {
	Type     string `json:"type"`
	RoomName string `json:"roomName"`
}

type LeaveRoomFrame struct {
	Type     string `json:"type"`
	RoomName string `json:"roomName"`
}

type SendMessageFrame struct {
	Type     string      `json:"type"`
	RoomName string      `json:"roomName"`
	Message  ChatMessage `json:"message"`
}

type DrawLineFrame struct {
	Type     string `json:"type"`
	RoomName string `json:"roomName"`
	Line     Line   `json:"line"`
}

type UpdateDocumentFrame struct {
	Type     string `json:"type"`
	RoomName string `json:"roomName"`
	Content  string `json:"content"`
}

// Server -> Client frames

type MessageFrame struct {
	Type     string      `json:"type"`
	RoomName string      `json:"roomName"`
	Message  ChatMessage `json:"message"`
}

type DrawLineOutFrame struct {
	Type     string `json:"type"`
	RoomName string `json:"roomName"`
	Line     Line   `json:"line"`
}

type DocumentUpdateFrame struct {
	Type     string `json:"type"`
	RoomName string `json:"roomName"`
	Content  string `json:"content"`
}

type ErrorFrame struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorFrame builds an error frame for the client.
func NewErrorFrame(code, message string) *ErrorFrame {
	return &ErrorFrame{
		Type:    FrameError,
		Code:    code,
		Message: message,
	}
}
