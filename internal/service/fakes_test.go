package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aryanarora07/studybuddy-new/internal/domain"
	"github.com/aryanarora07/studybuddy-new/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // by ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) GetByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			copied := *u
			result = append(result, &copied)
		}
	}
	return result, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile // by user ID
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *profile
	if existing, ok := r.profiles[profile.UserID]; ok {
		copied.PictureKey = existing.PictureKey
	}
	copied.UpdatedAt = time.Now()
	r.profiles[profile.UserID] = &copied
	return nil
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProfileRepo) ListVisible(ctx context.Context, excludeUserID string) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Profile
	for _, p := range r.profiles {
		if p.UserID == excludeUserID || !p.ProfileVisibility {
			continue
		}
		copied := *p
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeProfileRepo) SetPictureKey(ctx context.Context, userID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		p = &domain.Profile{
			UserID:            userID,
			StudyPreference:   domain.StudyPreferenceBoth,
			ProfileVisibility: true,
		}
		r.profiles[userID] = p
	}
	p.PictureKey = key
	return nil
}

type fakeRoomRepo struct {
	mu      sync.Mutex
	rooms   map[string]*domain.Room // by name
	members map[string][]string     // roomID -> user IDs
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{
		rooms:   make(map[string]*domain.Room),
		members: make(map[string][]string),
	}
}

func (r *fakeRoomRepo) GetOrCreate(ctx context.Context, name, createdBy string) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok := r.rooms[name]; ok {
		copied := *room
		return &copied, nil
	}
	room := &domain.Room{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
	r.rooms[name] = room
	copied := *room
	return &copied, nil
}

func (r *fakeRoomRepo) AddMember(ctx context.Context, roomID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.members[roomID] {
		if id == userID {
			return nil
		}
	}
	r.members[roomID] = append(r.members[roomID], userID)
	return nil
}

func (r *fakeRoomRepo) GetUserRooms(ctx context.Context, userID string) ([]*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Room
	for _, room := range r.rooms {
		for _, id := range r.members[room.ID] {
			if id == userID {
				copied := *room
				result = append(result, &copied)
			}
		}
	}
	return result, nil
}

// fakeStorage keeps objects in memory.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) Write(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *fakeStorage) Read(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such object: %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *fakeStorage) GetURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "/uploads/" + key, nil
}
