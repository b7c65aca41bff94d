package domain

import (
	"time"

	"gorm.io/gorm"

	"github.com/aryanarora07/studybuddy-new/pkg/database"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           string         `gorm:"type:varchar(36);primaryKey"`
	Name         string         `gorm:"type:varchar(100);not null"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string         `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to domain User.
func (m *UserModel) ToDomain() *User {
	return &User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// UserToModel converts domain User to UserModel.
func UserToModel(u *User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// ProfileModel is the GORM model for the profiles table.
type ProfileModel struct {
	UserID            string               `gorm:"type:varchar(36);primaryKey"`
	Major             string               `gorm:"type:varchar(100)"`
	Subjects          database.StringArray `gorm:"type:text"`
	Availability      database.StringArray `gorm:"type:text"`
	Location          string               `gorm:"type:varchar(200)"`
	Bio               string               `gorm:"type:text"`
	StudyPreference   string               `gorm:"type:varchar(10);default:both"`
	ProfileVisibility bool                 `gorm:"default:true"`
	PictureKey        string               `gorm:"type:varchar(255)"`
	UpdatedAt         time.Time            `gorm:"autoUpdateTime"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts ProfileModel to domain Profile.
func (m *ProfileModel) ToDomain() *Profile {
	return &Profile{
		UserID:            m.UserID,
		Major:             m.Major,
		Subjects:          []string(m.Subjects),
		Availability:      []string(m.Availability),
		Location:          m.Location,
		Bio:               m.Bio,
		StudyPreference:   m.StudyPreference,
		ProfileVisibility: m.ProfileVisibility,
		PictureKey:        m.PictureKey,
		UpdatedAt:         m.UpdatedAt,
	}
}

// ProfileToModel converts domain Profile to ProfileModel.
func ProfileToModel(p *Profile) *ProfileModel {
	return &ProfileModel{
		UserID:            p.UserID,
		Major:             p.Major,
		Subjects:          database.StringArray(p.Subjects),
		Availability:      database.StringArray(p.Availability),
		Location:          p.Location,
		Bio:               p.Bio,
		StudyPreference:   p.StudyPreference,
		ProfileVisibility: p.ProfileVisibility,
		PictureKey:        p.PictureKey,
		UpdatedAt:         p.UpdatedAt,
	}
}

// RoomModel is the GORM model for the rooms table.
type RoomModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	CreatedBy string    `gorm:"type:varchar(36);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (RoomModel) TableName() string {
	return "rooms"
}

// ToDomain converts RoomModel to domain Room.
func (m *RoomModel) ToDomain() *Room {
	return &Room{
		ID:        m.ID,
		Name:      m.Name,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}

// RoomToModel converts domain Room to RoomModel.
func RoomToModel(r *Room) *RoomModel {
	return &RoomModel{
		ID:        r.ID,
		Name:      r.Name,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
	}
}

// RoomMemberModel records which users have joined a room via the HTTP
// boundary. The realtime membership in the hub is separate and transient.
type RoomMemberModel struct {
	RoomID   string    `gorm:"type:varchar(36);primaryKey"`
	UserID   string    `gorm:"type:varchar(36);primaryKey"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

func (RoomMemberModel) TableName() string {
	return "room_members"
}
