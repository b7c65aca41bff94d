package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aryanarora07/studybuddy-new/internal/audit"
	"github.com/aryanarora07/studybuddy-new/internal/domain"
	"github.com/aryanarora07/studybuddy-new/internal/repository"
	"github.com/aryanarora07/studybuddy-new/pkg/log"
	"github.com/aryanarora07/studybuddy-new/pkg/storage"
)

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrUnsupportedPicture = errors.New("unsupported picture content type")
)

const pictureURLExpiry = time.Hour

// profileServiceImpl implements ProfileService.
type profileServiceImpl struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
	store    storage.Storage
}

// NewProfileService creates a new profile service.
func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository, store storage.Storage) ProfileService {
	return &profileServiceImpl{
		profiles: profiles,
		users:    users,
		store:    store,
	}
}

// GetProfile returns a user's profile joined with their public user info.
func (s *profileServiceImpl) GetProfile(ctx context.Context, userID string) (*domain.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			// Account exists but the profile was never filled in.
			profile = &domain.Profile{
				UserID:            userID,
				StudyPreference:   domain.StudyPreferenceBoth,
				ProfileVisibility: true,
			}
		} else {
			return nil, err
		}
	}

	resp := profile.ToResponse(user.ToResponse(), s.pictureURL(ctx, profile))
	return &resp, nil
}

// UpdateProfile upserts the caller's profile.
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.ProfileResponse, error) {
	l := log.Ctx(ctx)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	visibility := true
	if req.ProfileVisibility != nil {
		visibility = *req.ProfileVisibility
	}

	preference := req.StudyPreference
	if preference == "" {
		preference = domain.StudyPreferenceBoth
	}

	profile := &domain.Profile{
		UserID:            userID,
		Major:             req.Major,
		Subjects:          req.Subjects,
		Availability:      req.Availability,
		Location:          req.Location,
		Bio:               req.Bio,
		StudyPreference:   preference,
		ProfileVisibility: visibility,
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to upsert profile")
		return nil, err
	}

	audit.Log(ctx, audit.ActionUpdateProfile, userID, "profile updated")

	// Re-read to pick up fields the upsert does not touch (picture key).
	stored, err := s.profiles.GetByUserID(ctx, userID)
	if err == nil {
		profile = stored
	}

	resp := profile.ToResponse(user.ToResponse(), s.pictureURL(ctx, profile))
	return &resp, nil
}

// UploadAvatar stores a profile picture and records its key. Returns the
// URL the picture can be fetched from.
func (s *profileServiceImpl) UploadAvatar(ctx context.Context, userID string, r io.Reader, size int64, contentType string) (string, error) {
	l := log.Ctx(ctx)

	ext, ok := pictureExtension(contentType)
	if !ok {
		return "", ErrUnsupportedPicture
	}

	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New().String(), ext)
	if err := s.store.Write(ctx, key, r, size, contentType); err != nil {
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to store avatar")
		return "", err
	}

	if err := s.profiles.SetPictureKey(ctx, userID, key); err != nil {
		return "", err
	}

	audit.Log(ctx, audit.ActionUploadAvatar, userID, "profile picture uploaded")

	return s.store.GetURL(ctx, key, pictureURLExpiry)
}

func (s *profileServiceImpl) pictureURL(ctx context.Context, profile *domain.Profile) string {
	if profile.PictureKey == "" {
		return ""
	}
	url, err := s.store.GetURL(ctx, profile.PictureKey, pictureURLExpiry)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str(log.FieldUserID, profile.UserID).Msg("failed to resolve picture URL")
		return ""
	}
	return url
}

func pictureExtension(contentType string) (string, bool) {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png", true
	case "image/jpeg", "image/jpg":
		return ".jpg", true
	case "image/webp":
		return ".webp", true
	default:
		return "", false
	}
}
