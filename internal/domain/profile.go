package domain

import "time"

// Study preference values.
const (
	StudyPreferenceSolo  = "solo"
	StudyPreferenceGroup = "group"
	StudyPreferenceBoth  = "both"
)

// Profile holds the study-partner matching attributes of a user.
type Profile struct {
	UserID            string    `json:"userId"`
	Major             string    `json:"major"`
	Subjects          []string  `json:"subjects"`
	Availability      []string  `json:"availability"`
	Location          string    `json:"location"`
	Bio               string    `json:"bio"`
	StudyPreference   string    `json:"studyPreference"`
	ProfileVisibility bool      `json:"profileVisibility"`
	PictureKey        string    `json:"-"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UpdateProfileRequest represents a profile upsert request.
type UpdateProfileRequest struct {
	Major             string   `json:"major" binding:"max=100"`
	Subjects          []string `json:"subjects"`
	Availability      []string `json:"availability"`
	Location          string   `json:"location" binding:"max=200"`
	Bio               string   `json:"bio" binding:"max=2000"`
	StudyPreference   string   `json:"studyPreference" binding:"omitempty,oneof=solo group both"`
	ProfileVisibility *bool    `json:"profileVisibility"`
}

// ProfileResponse represents a profile in API responses, joined with the
// owning user's public info.
type ProfileResponse struct {
	User              UserResponse `json:"user"`
	Major             string       `json:"major"`
	Subjects          []string     `json:"subjects"`
	Availability      []string     `json:"availability"`
	Location          string       `json:"location"`
	Bio               string       `json:"bio"`
	StudyPreference   string       `json:"studyPreference"`
	ProfileVisibility bool         `json:"profileVisibility"`
	ProfilePicture    string       `json:"profilePicture,omitempty"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// StudyPartner is a discoverable profile with live presence.
type StudyPartner struct {
	ProfileResponse
	IsOnline bool `json:"isOnline"`
}

// ToResponse joins a profile with its user and picture URL.
func (p *Profile) ToResponse(user UserResponse, pictureURL string) ProfileResponse {
	return ProfileResponse{
		User:              user,
		Major:             p.Major,
		Subjects:          p.Subjects,
		Availability:      p.Availability,
		Location:          p.Location,
		Bio:               p.Bio,
		StudyPreference:   p.StudyPreference,
		ProfileVisibility: p.ProfileVisibility,
		ProfilePicture:    pictureURL,
		UpdatedAt:         p.UpdatedAt,
	}
}
