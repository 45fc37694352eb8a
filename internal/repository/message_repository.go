package repository

import (
	"gorm.io/gorm"

	"github.com/Victormarshall911/NexTalk/internal/models"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepository) FindByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("Sender").First(&message, id).Error
	return &message, err
}

func (r *MessageRepository) FindByClientID(clientID string, senderID uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("Sender").
		Where("client_id = ? AND sender_id = ?", clientID, senderID).
		First(&message).Error
	return &message, err
}

// FindInvolving returns the full message set where userID participates,
// newest first. Ties on created_at break on id so the order is stable.
func (r *MessageRepository) FindInvolving(userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&messages).Error
	return messages, err
}

// FindConversation returns the newest messages of the symmetric pair,
// newest first.
func (r *MessageRepository) FindConversation(userID1, userID2 uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("Sender").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID1, userID2, userID2, userID1).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// FindConversationCursor pages backwards through a pair's history,
// returning messages older than the cursor id.
func (r *MessageRepository) FindConversationCursor(userID1, userID2 uint, cursor uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("Sender").
		Where("id < ? AND ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))",
			cursor, userID1, userID2, userID2, userID1).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// MarkConversationAsRead flips the read flag on every unread message the
// peer sent to userID. Returns the number of rows updated.
func (r *MessageRepository) MarkConversationAsRead(userID uint, peerID uint) (int64, error) {
	result := r.db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = false", peerID, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": gorm.Expr("NOW()"),
		})
	return result.RowsAffected, result.Error
}
