package repository

import (
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByLogin(db *gorm.DB, login string) (*entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	UpdateLastLogin(db *gorm.DB, id uuid.UUID, at time.Time) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	CountByRole(db *gorm.DB, roleID int) (int64, error)
}
