package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gopherpress/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

// ListDirectory returns every account as an id+name pair, alphabetical by
// name. It feeds the author filter control on the posts index.
func (r *UserRepository) ListDirectory() ([]model.UserSummary, error) {
	var users []model.UserSummary
	if err := r.db.Model(&model.User{}).
		Select("id", "name").
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list user directory failed: %w", err)
	}
	return users, nil
}
