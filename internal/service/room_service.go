package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aryanarora07/studybuddy-new/internal/audit"
	"github.com/aryanarora07/studybuddy-new/internal/domain"
	"github.com/aryanarora07/studybuddy-new/internal/repository"
	"github.com/aryanarora07/studybuddy-new/pkg/log"
)

var ErrEmptyRoomName = errors.New("room name must not be empty")

// roomServiceImpl implements RoomService.
type roomServiceImpl struct {
	repo repository.RoomRepository
}

// NewRoomService creates a new room service.
func NewRoomService(repo repository.RoomRepository) RoomService {
	return &roomServiceImpl{repo: repo}
}

// CreateOrJoin creates the room if it does not exist and records the
// caller's membership. This must succeed before the caller is allowed to
// send a join-room frame on the realtime channel.
func (s *roomServiceImpl) CreateOrJoin(ctx context.Context, userID string, req *domain.CreateRoomRequest) (*domain.RoomResponse, error) {
	l := log.Ctx(ctx)

	name := strings.TrimSpace(req.RoomName)
	if name == "" {
		return nil, ErrEmptyRoomName
	}

	room, err := s.repo.GetOrCreate(ctx, name, userID)
	if err != nil {
		l.Error().Err(err).Str(log.FieldRoom, name).Msg("failed to get or create room")
		return nil, err
	}

	if err := s.repo.AddMember(ctx, room.ID, userID); err != nil {
		l.Error().Err(err).Str(log.FieldRoom, name).Msg("failed to add room member")
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionJoinRoom, userID, name, "room joined")

	resp := room.ToResponse()
	return &resp, nil
}

// GetMyRooms returns the rooms the caller has joined.
func (s *roomServiceImpl) GetMyRooms(ctx context.Context, userID string) ([]domain.RoomResponse, error) {
	rooms, err := s.repo.GetUserRooms(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.RoomResponse, len(rooms))
	for i, room := range rooms {
		responses[i] = room.ToResponse()
	}
	return responses, nil
}
