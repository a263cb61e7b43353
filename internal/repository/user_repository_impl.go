package repository

import (
	"errors"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	domainRepo "github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return db.Create(user).Error
}

func (r *userRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := db.Preload("Role").
		Preload("DoctorProfile.Hospital").
		Preload("PatientProfile").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByLogin matches either the username or the email address.
func (r *userRepository) FindByLogin(db *gorm.DB, login string) (*entity.User, error) {
	var user entity.User
	err := db.Preload("Role").
		Where("username = ? OR LOWER(email) = LOWER(?)", login, login).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(db *gorm.DB, user *entity.User) error {
	return db.Omit("Role", "DoctorProfile", "PatientProfile").Save(user).Error
}

func (r *userRepository) UpdateLastLogin(db *gorm.DB, id uuid.UUID, at time.Time) error {
	return db.Model(&entity.User{}).Where("id = ?", id).Update("last_login_at", at).Error
}

func (r *userRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	return rowsAffected(db.Where("id = ?", id).Delete(&entity.User{}))
}

func (r *userRepository) CountByRole(db *gorm.DB, roleID int) (int64, error) {
	var total int64
	err := db.Model(&entity.User{}).Where("role_id = ?", roleID).Count(&total).Error
	return total, err
}
