package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/aryanarora07/studybuddy-new/internal/config"
	"github.com/aryanarora07/studybuddy-new/internal/domain"
	"github.com/aryanarora07/studybuddy-new/internal/hub"
	"github.com/aryanarora07/studybuddy-new/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler accepts realtime connections and dispatches their frames onto
// the hub. Frames are processed in arrival order per connection, which is
// what keeps one sender's events FIFO for every recipient.
type WSHandler struct {
	hub   *hub.Hub
	wsCfg config.WebSocketConfig
}

// NewWSHandler creates a new WebSocket handler.
func NewWSHandler(h *hub.Hub, wsCfg config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		hub:   h,
		wsCfg: wsCfg,
	}
}

// RegisterRoutes registers the realtime endpoint.
func (h *WSHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws", h.HandleWebSocket)
}

// HandleWebSocket upgrades the request and runs the connection's pumps.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Ctx(c.Request.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), h.hub, conn, h.wsCfg)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.handleFrame)
}

// handleFrame dispatches one inbound frame. Relay and membership
// operations are fire-and-forget: a frame referencing a room with no
// other members relays to nobody and reports nothing back.
func (h *WSHandler) handleFrame(client *hub.Client, message []byte) {
	var base domain.BaseFrame
	if err := json.Unmarshal(message, &base); err != nil {
		client.SendFrame(domain.NewErrorFrame(domain.ErrCodeBadFrame, "invalid frame"))
		return
	}

	switch base.Type {
	case domain.FrameJoinRoom:
		var frame domain.JoinRoomFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			client.SendFrame(domain.NewErrorFrame(domain.ErrCodeBadFrame, "invalid join-room frame"))
			return
		}
		if strings.TrimSpace(frame.RoomName) == "" {
			client.SendFrame(domain.NewErrorFrame(domain.ErrCodeBadFrame, "room name must not be empty"))
			return
		}
		h.hub.JoinRoom(client, frame.RoomName)

	case domain.FrameLeaveRoom:
		var frame domain.LeaveRoomFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			client.SendFrame(domain.NewErrorFrame(domain.ErrCodeBadFrame, "invalid leave-room frame"))
			return
		}
		h.hub.LeaveRoom(client, frame.RoomName)

	case domain.FrameSendMessage:
		var frame domain.SendMessageFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			client.SendFrame(domain.NewErrorFrame(domain.ErrCodeBadFrame, "invalid send-message frame"))
			return
		}
		h.hub.BroadcastToRoom(frame.RoomName, &domain.MessageFrame{
			Type:     domain.FrameMessage,
			RoomName: frame.RoomName,
			Message:  frame.Message,
		}, client.ID)

	case domain.FrameDrawLine:
		var frame domain.DrawLineFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			client.SendFrame(domain.NewErrorFrame(domain.ErrCodeBadFrame, "invalid draw-line frame"))
			return
		}
		h.hub.BroadcastToRoom(frame.RoomName, &domain.DrawLineOutFrame{
			Type:     domain.FrameDrawLineOut,
			RoomName: frame.RoomName,
			Line:     frame.Line,
		}, client.ID)

	case domain.FrameUpdateDocument:
		var frame domain.UpdateDocumentFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			client.SendFrame(domain.NewErrorFrame(domain.ErrCodeBadFrame, "invalid update-document frame"))
			return
		}
		h.hub.BroadcastToRoom(frame.RoomName, &domain.DocumentUpdateFrame{
			Type:     domain.FrameDocumentUpdate,
			RoomName: frame.RoomName,
			Content:  frame.Content,
		}, client.ID)

	default:
		client.SendFrame(domain.NewErrorFrame(domain.ErrCodeBadFrame, "unknown frame type"))
	}
}
