package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryanarora07/studybuddy-new/internal/config"
	"github.com/aryanarora07/studybuddy-new/internal/domain"
	"github.com/aryanarora07/studybuddy-new/internal/hub"
)

func wsTestConfig() config.WebSocketConfig {
	return config.WebSocketConfig{
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 65536,
		SendBufferSize: 64,
	}
}

func startWSServer(t *testing.T) (*httptest.Server, *hub.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := hub.NewHub(wsTestConfig())
	go h.Run()

	r := gin.New()
	NewWSHandler(h, wsTestConfig()).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, h
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, frame interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(frame))
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]json.RawMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &frame))
	return frame
}

func frameType(t *testing.T, frame map[string]json.RawMessage) string {
	t.Helper()
	var typ string
	require.NoError(t, json.Unmarshal(frame["type"], &typ))
	return typ
}

func assertNoFrame(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
	_, data, err := conn.ReadMessage()
	if err == nil {
		t.Fatalf("unexpected frame: %s", data)
	}
}

func joinRoom(t *testing.T, h *hub.Hub, conn *websocket.Conn, room string, wantMembers int) {
	t.Helper()
	send(t, conn, domain.JoinRoomFrame{Type: domain.FrameJoinRoom, RoomName: room})
	require.Eventually(t, func() bool {
		return h.RoomClientCount(room) == wantMembers
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSendMessageRelayedToPeersOnly(t *testing.T) {
	srv, h := startWSServer(t)
	sender := dial(t, srv)
	peer := dial(t, srv)
	joinRoom(t, h, sender, "algebra", 1)
	joinRoom(t, h, peer, "algebra", 2)

	sent := domain.ChatMessage{
		Text:      "anyone up for flashcards?",
		Sender:    "amelia",
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}
	send(t, sender, domain.SendMessageFrame{
		Type:     domain.FrameSendMessage,
		RoomName: "algebra",
		Message:  sent,
	})

	frame := readFrame(t, peer)
	assert.Equal(t, domain.FrameMessage, frameType(t, frame))

	var got domain.ChatMessage
	require.NoError(t, json.Unmarshal(frame["message"], &got))
	assert.Equal(t, sent.Text, got.Text)
	assert.Equal(t, sent.Sender, got.Sender)
	assert.True(t, sent.Timestamp.Equal(got.Timestamp))

	assertNoFrame(t, sender)
}

func TestDrawLineRelayed(t *testing.T) {
	srv, h := startWSServer(t)
	sender := dial(t, srv)
	peer := dial(t, srv)
	joinRoom(t, h, sender, "whiteboard", 1)
	joinRoom(t, h, peer, "whiteboard", 2)

	line := domain.Line{
		Start:     domain.Point{X: 1, Y: 2},
		End:       domain.Point{X: 3.5, Y: 4.5},
		Color:     "#ff0000",
		BrushSize: 3,
	}
	send(t, sender, domain.DrawLineFrame{
		Type:     domain.FrameDrawLine,
		RoomName: "whiteboard",
		Line:     line,
	})

	frame := readFrame(t, peer)
	assert.Equal(t, domain.FrameDrawLineOut, frameType(t, frame))

	var got domain.Line
	require.NoError(t, json.Unmarshal(frame["line"], &got))
	assert.Equal(t, line, got)
}

func TestUpdateDocumentRelayed(t *testing.T) {
	srv, h := startWSServer(t)
	sender := dial(t, srv)
	peer := dial(t, srv)
	joinRoom(t, h, sender, "notes", 1)
	joinRoom(t, h, peer, "notes", 2)

	send(t, sender, domain.UpdateDocumentFrame{
		Type:     domain.FrameUpdateDocument,
		RoomName: "notes",
		Content:  "shared outline v2",
	})

	frame := readFrame(t, peer)
	assert.Equal(t, domain.FrameDocumentUpdate, frameType(t, frame))

	var content string
	require.NoError(t, json.Unmarshal(frame["content"], &content))
	assert.Equal(t, "shared outline v2", content)
}

func TestRelayDoesNotCrossRooms(t *testing.T) {
	srv, h := startWSServer(t)
	sender := dial(t, srv)
	outsider := dial(t, srv)
	joinRoom(t, h, sender, "algebra", 1)
	joinRoom(t, h, outsider, "physics", 1)

	send(t, sender, domain.UpdateDocumentFrame{
		Type:     domain.FrameUpdateDocument,
		RoomName: "algebra",
		Content:  "private",
	})

	assertNoFrame(t, outsider)
}

func TestSenderEventsArriveInOrder(t *testing.T) {
	srv, h := startWSServer(t)
	sender := dial(t, srv)
	peer := dial(t, srv)
	joinRoom(t, h, sender, "algebra", 1)
	joinRoom(t, h, peer, "algebra", 2)

	const n = 25
	for i := 0; i < n; i++ {
		send(t, sender, domain.UpdateDocumentFrame{
			Type:     domain.FrameUpdateDocument,
			RoomName: "algebra",
			Content:  string(rune('a' + i)),
		})
	}

	for i := 0; i < n; i++ {
		frame := readFrame(t, peer)
		var content string
		require.NoError(t, json.Unmarshal(frame["content"], &content))
		assert.Equal(t, string(rune('a'+i)), content)
	}
}

func TestDisconnectLeavesAllRooms(t *testing.T) {
	srv, h := startWSServer(t)
	conn := dial(t, srv)
	stayer := dial(t, srv)
	joinRoom(t, h, conn, "algebra", 1)
	joinRoom(t, h, stayer, "algebra", 2)
	joinRoom(t, h, conn, "physics", 1)

	conn.Close()

	require.Eventually(t, func() bool {
		return h.RoomClientCount("physics") == 0 && h.RoomClientCount("algebra") == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLeaveRoomStopsDelivery(t *testing.T) {
	srv, h := startWSServer(t)
	sender := dial(t, srv)
	peer := dial(t, srv)
	joinRoom(t, h, sender, "algebra", 1)
	joinRoom(t, h, peer, "algebra", 2)

	send(t, peer, domain.LeaveRoomFrame{Type: domain.FrameLeaveRoom, RoomName: "algebra"})
	require.Eventually(t, func() bool {
		return h.RoomClientCount("algebra") == 1
	}, 2*time.Second, 10*time.Millisecond)

	send(t, sender, domain.SendMessageFrame{
		Type:     domain.FrameSendMessage,
		RoomName: "algebra",
		Message:  domain.ChatMessage{Text: "late", Sender: "amelia"},
	})

	assertNoFrame(t, peer)
}

func TestEmptyRoomNameRejected(t *testing.T) {
	srv, _ := startWSServer(t)
	conn := dial(t, srv)

	send(t, conn, domain.JoinRoomFrame{Type: domain.FrameJoinRoom, RoomName: "   "})

	frame := readFrame(t, conn)
	assert.Equal(t, domain.FrameError, frameType(t, frame))

	var code string
	require.NoError(t, json.Unmarshal(frame["code"], &code))
	assert.Equal(t, domain.ErrCodeBadFrame, code)
}

func TestMalformedFrameRejected(t *testing.T) {
	srv, _ := startWSServer(t)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

	frame := readFrame(t, conn)
	assert.Equal(t, domain.FrameError, frameType(t, frame))
}

func TestUnknownFrameTypeRejected(t *testing.T) {
	srv, _ := startWSServer(t)
	conn := dial(t, srv)

	send(t, conn, domain.BaseFrame{Type: "teleport"})

	frame := readFrame(t, conn)
	assert.Equal(t, domain.FrameError, frameType(t, frame))
}

func TestRelayToEmptyRoomIsSilent(t *testing.T) {
	srv, h := startWSServer(t)
	conn := dial(t, srv)
	joinRoom(t, h, conn, "algebra", 1)

	// Sender is the only member; nothing comes back, connection stays up.
	send(t, conn, domain.SendMessageFrame{
		Type:     domain.FrameSendMessage,
		RoomName: "algebra",
		Message:  domain.ChatMessage{Text: "hello?", Sender: "amelia"},
	})

	assertNoFrame(t, conn)

	send(t, conn, domain.LeaveRoomFrame{Type: domain.FrameLeaveRoom, RoomName: "algebra"})
	require.Eventually(t, func() bool {
		return h.RoomClientCount("algebra") == 0
	}, 2*time.Second, 10*time.Millisecond)
}
