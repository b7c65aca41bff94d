package service

import (
	"context"
	"io"

	"github.com/aryanarora07/studybuddy-new/internal/domain"
)

// UserService handles account registration and authentication.
type UserService interface {
	Signup(ctx context.Context, req *domain.SignupRequest) (*domain.User, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error)
	RefreshToken(ctx context.Context, req *domain.RefreshTokenRequest) (*domain.AuthResponse, error)
}

// ProfileService handles profile reads, upserts and picture uploads.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.ProfileResponse, error)
	UploadAvatar(ctx context.Context, userID string, r io.Reader, size int64, contentType string) (string, error)
}

// PartnerService handles study-partner discovery.
type PartnerService interface {
	ListPartners(ctx context.Context, callerUserID, major, query string) ([]domain.StudyPartner, error)
}

// RoomService is the HTTP boundary that authorizes study-room joins before
// the realtime join-room frame is allowed.
type RoomService interface {
	CreateOrJoin(ctx context.Context, userID string, req *domain.CreateRoomRequest) (*domain.RoomResponse, error)
	GetMyRooms(ctx context.Context, userID string) ([]domain.RoomResponse, error)
}
