package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aryanarora07/studybuddy-new/internal/domain"
)

// GormRoomRepository implements RoomRepository using GORM.
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GORM-based room repository.
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// GetOrCreate returns the room with the given name, creating it if absent.
func (r *GormRoomRepository) GetOrCreate(ctx context.Context, name, createdBy string) (*domain.Room, error) {
	var model domain.RoomModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.First(&model, "name = ?", name)
		if result.Error == nil {
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		model = domain.RoomModel{
			ID:        uuid.New().String(),
			Name:      name,
			CreatedBy: createdBy,
		}
		if err := tx.Create(&model).Error; err != nil {
			// Lost a race with a concurrent create; read the winner.
			return tx.First(&model, "name = ?", name).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// AddMember records that a user joined a room. Rejoining is a no-op.
func (r *GormRoomRepository) AddMember(ctx context.Context, roomID, userID string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.RoomMemberModel{
			RoomID: roomID,
			UserID: userID,
		}).Error
}

// GetUserRooms returns the rooms a user has joined, most recent first.
func (r *GormRoomRepository) GetUserRooms(ctx context.Context, userID string) ([]*domain.Room, error) {
	var models []domain.RoomModel
	result := r.db.WithContext(ctx).
		Joins("JOIN room_members ON room_members.room_id = rooms.id").
		Where("room_members.user_id = ?", userID).
		Order("room_members.joined_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	rooms := make([]*domain.Room, len(models))
	for i := range models {
		rooms[i] = models[i].ToDomain()
	}
	return rooms, nil
}
