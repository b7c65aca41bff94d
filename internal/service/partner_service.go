package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/aryanarora07/studybuddy-new/internal/domain"
	"github.com/aryanarora07/studybuddy-new/internal/presence"
	"github.com/aryanarora07/studybuddy-new/internal/repository"
	"github.com/aryanarora07/studybuddy-new/pkg/log"
	"github.com/aryanarora07/studybuddy-new/pkg/storage"
)

// partnerServiceImpl implements PartnerService.
type partnerServiceImpl struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
	presence presence.Store
	store    storage.Storage
}

// NewPartnerService creates a new partner discovery service.
func NewPartnerService(profiles repository.ProfileRepository, users repository.UserRepository, presenceStore presence.Store, store storage.Storage) PartnerService {
	return &partnerServiceImpl{
		profiles: profiles,
		users:    users,
		presence: presenceStore,
		store:    store,
	}
}

// ListPartners returns visible profiles other than the caller's, each with
// live presence. Optional filters: major (exact) and query (substring of
// name or any subject).
func (s *partnerServiceImpl) ListPartners(ctx context.Context, callerUserID, major, query string) ([]domain.StudyPartner, error) {
	profiles, err := s.profiles.ListVisible(ctx, callerUserID)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return []domain.StudyPartner{}, nil
	}

	userIDs := make([]string, len(profiles))
	for i, p := range profiles {
		userIDs[i] = p.UserID
	}

	// Users and presence come from different stores; fetch them in parallel.
	var (
		users  []*domain.User
		online map[string]bool
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.users.GetByIDs(gCtx, userIDs)
		return err
	})
	g.Go(func() error {
		var err error
		online, err = s.presence.OnlineStatus(gCtx, userIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	usersByID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	partners := make([]domain.StudyPartner, 0, len(profiles))
	for _, p := range profiles {
		user, ok := usersByID[p.UserID]
		if !ok {
			continue // profile row without a live account
		}
		if major != "" && p.Major != major {
			continue
		}
		if query != "" && !matchesQuery(user.Name, p.Subjects, query) {
			continue
		}

		partners = append(partners, domain.StudyPartner{
			ProfileResponse: p.ToResponse(user.ToResponse(), s.pictureURL(ctx, p)),
			IsOnline:        online[p.UserID],
		})
	}

	return partners, nil
}

func (s *partnerServiceImpl) pictureURL(ctx context.Context, profile *domain.Profile) string {
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

func matchesQuery(name string, subjects []string, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(name), q) {
		return true
	}
	for _, subject := range subjects {
		if strings.Contains(strings.ToLower(subject), q) {
			return true
		}
	}
	return false
}
