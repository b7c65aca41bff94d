package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryanarora07/studybuddy-new/internal/domain"
)

func seedUser(t *testing.T, users *fakeUserRepo, name string) string {
	t.Helper()
	user := &domain.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, users.Create(context.Background(), user))
	return user.ID
}

func TestGetProfileFallsBackToEmptyProfile(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewProfileService(newFakeProfileRepo(), users, newFakeStorage())
	ctx := context.Background()

	userID := seedUser(t, users, "amelia")

	profile, err := svc.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "amelia", profile.User.Name)
	assert.Equal(t, domain.StudyPreferenceBoth, profile.StudyPreference)
	assert.True(t, profile.ProfileVisibility)
	assert.Empty(t, profile.Major)
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo(), newFakeUserRepo(), newFakeStorage())

	_, err := svc.GetProfile(context.Background(), "no-such-user")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUpdateProfileUpserts(t *testing.T) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	svc := NewProfileService(profiles, users, newFakeStorage())
	ctx := context.Background()

	userID := seedUser(t, users, "amelia")

	visible := false
	updated, err := svc.UpdateProfile(ctx, userID, &domain.UpdateProfileRequest{
		Major:             "mathematics",
		Subjects:          []string{"algebra", "topology"},
		Availability:      []string{"evenings"},
		Location:          "north campus",
		Bio:               "second year",
		StudyPreference:   domain.StudyPreferenceGroup,
		ProfileVisibility: &visible,
	})
	require.NoError(t, err)
	assert.Equal(t, "mathematics", updated.Major)
	assert.Equal(t, []string{"algebra", "topology"}, updated.Subjects)
	assert.Equal(t, domain.StudyPreferenceGroup, updated.StudyPreference)
	assert.False(t, updated.ProfileVisibility)

	// A second update replaces the fields.
	updated, err = svc.UpdateProfile(ctx, userID, &domain.UpdateProfileRequest{Major: "physics"})
	require.NoError(t, err)
	assert.Equal(t, "physics", updated.Major)
	assert.True(t, updated.ProfileVisibility)
	assert.Equal(t, domain.StudyPreferenceBoth, updated.StudyPreference)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo(), newFakeUserRepo(), newFakeStorage())

	_, err := svc.UpdateProfile(context.Background(), "no-such-user", &domain.UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUploadAvatarStoresAndLinks(t *testing.T) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	store := newFakeStorage()
	svc := NewProfileService(profiles, users, store)
	ctx := context.Background()

	userID := seedUser(t, users, "amelia")

	url, err := svc.UploadAvatar(ctx, userID, strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Contains(t, url, "avatars/"+userID+"/")
	assert.True(t, strings.HasSuffix(url, ".png"))

	stored, err := profiles.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PictureKey)

	exists, err := store.Exists(ctx, stored.PictureKey)
	require.NoError(t, err)
	assert.True(t, exists)

	// The picture now shows up on the profile.
	profile, err := svc.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, url, profile.ProfilePicture)
}

func TestUploadAvatarSurvivesProfileUpdate(t *testing.T) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	svc := NewProfileService(profiles, users, newFakeStorage())
	ctx := context.Background()

	userID := seedUser(t, users, "amelia")

	_, err := svc.UploadAvatar(ctx, userID, strings.NewReader("img"), 3, "image/jpeg")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, userID, &domain.UpdateProfileRequest{Major: "math"})
	require.NoError(t, err)
	assert.NotEmpty(t, updated.ProfilePicture)
}

func TestUploadAvatarRejectsUnsupportedType(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewProfileService(newFakeProfileRepo(), users, newFakeStorage())

	userID := seedUser(t, users, "amelia")

	_, err := svc.UploadAvatar(context.Background(), userID, strings.NewReader("gif"), 3, "image/gif")
	assert.ErrorIs(t, err, ErrUnsupportedPicture)
}
