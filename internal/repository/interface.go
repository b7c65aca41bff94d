package repository

import (
	"context"
	"errors"

	"github.com/aryanarora07/studybuddy-new/internal/domain"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrProfileNotFound = errors.New("profile not found")
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
}

// ProfileRepository defines profile persistence operations.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	ListVisible(ctx context.Context, excludeUserID string) ([]*domain.Profile, error)
	SetPictureKey(ctx context.Context, userID, key string) error
}

// RoomRepository defines room persistence operations for the HTTP
// create/join boundary.
type RoomRepository interface {
	GetOrCreate(ctx context.Context, name, createdBy string) (*domain.Room, error)
	AddMember(ctx context.Context, roomID, userID string) error
	GetUserRooms(ctx context.Context, userID string) ([]*domain.Room, error)
}
