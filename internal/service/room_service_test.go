package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryanarora07/studybuddy-new/internal/domain"
)

func TestCreateOrJoinCreatesRoomOnce(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := NewRoomService(repo)
	ctx := context.Background()

	first, err := svc.CreateOrJoin(ctx, "user-1", &domain.CreateRoomRequest{RoomName: "algebra"})
	require.NoError(t, err)
	assert.Equal(t, "algebra", first.Name)

	second, err := svc.CreateOrJoin(ctx, "user-2", &domain.CreateRoomRequest{RoomName: "algebra"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestCreateOrJoinTrimsName(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := NewRoomService(repo)

	room, err := svc.CreateOrJoin(context.Background(), "user-1", &domain.CreateRoomRequest{RoomName: "  algebra  "})
	require.NoError(t, err)
	assert.Equal(t, "algebra", room.Name)
}

func TestCreateOrJoinRejectsBlankName(t *testing.T) {
	svc := NewRoomService(newFakeRoomRepo())

	_, err := svc.CreateOrJoin(context.Background(), "user-1", &domain.CreateRoomRequest{RoomName: "   "})
	assert.ErrorIs(t, err, ErrEmptyRoomName)
}

func TestGetMyRooms(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := NewRoomService(repo)
	ctx := context.Background()

	_, err := svc.CreateOrJoin(ctx, "user-1", &domain.CreateRoomRequest{RoomName: "algebra"})
	require.NoError(t, err)
	_, err = svc.CreateOrJoin(ctx, "user-1", &domain.CreateRoomRequest{RoomName: "physics"})
	require.NoError(t, err)
	_, err = svc.CreateOrJoin(ctx, "user-2", &domain.CreateRoomRequest{RoomName: "history"})
	require.NoError(t, err)

	rooms, err := svc.GetMyRooms(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	names := []string{rooms[0].Name, rooms[1].Name}
	assert.ElementsMatch(t, []string{"algebra", "physics"}, names)
}

func TestGetMyRoomsEmpty(t *testing.T) {
	svc := NewRoomService(newFakeRoomRepo())

	rooms, err := svc.GetMyRooms(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, rooms)
}
