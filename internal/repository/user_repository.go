package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/Victormarshall911/NexTalk/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return &user, err
}

// FindByIDs is the batched profile lookup used by the conversation
// aggregator. Missing ids are simply absent from the result.
func (r *UserRepository) FindByIDs(ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	err := r.db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// ListOthers returns the user directory excluding the caller.
func (r *UserRepository) ListOthers(userID uint, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id <> ?", userID).
		Order("full_name ASC, email ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) SearchUsers(query string, excludeID uint, limit int) ([]models.User, error) {
	var users []models.User
	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.Where("id <> ? AND (LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?)", excludeID, pattern, pattern).
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdatePushToken(userID uint, token string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("push_token", token).Error
}

func (r *UserRepository) UpdateOnlineStatus(userID uint, isOnline bool) error {
	updates := map[string]interface{}{"is_online": isOnline}
	if !isOnline {
		updates["last_seen"] = gorm.Expr("NOW()")
	}
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}
