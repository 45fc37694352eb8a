package repository

import (
	"github.com/Victormarshall911/NexTalk/internal/models"
)

// UserRepositoryInterface is the profile directory contract.
type UserRepositoryInterface interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	FindByIDs(ids []uint) ([]models.User, error)
	ListOthers(userID uint, limit int) ([]models.User, error)
	SearchUsers(query string, excludeID uint, limit int) ([]models.User, error)
	Update(user *models.User) error
	UpdatePushToken(userID uint, token string) error
	UpdateOnlineStatus(userID uint, isOnline bool) error
}

// MessageRepositoryInterface is the message store contract.
type MessageRepositoryInterface interface {
	Create(message *models.Message) error
	FindByID(id uint) (*models.Message, error)
	FindByClientID(clientID string, senderID uint) (*models.Message, error)
	// FindInvolving returns every message where userID is sender or
	// receiver, newest first. The conversation aggregator depends on
	// this ordering.
	FindInvolving(userID uint) ([]models.Message, error)
	FindConversation(userID1, userID2 uint, limit int) ([]models.Message, error)
	FindConversationCursor(userID1, userID2 uint, cursor uint, limit int) ([]models.Message, error)
	MarkConversationAsRead(userID uint, peerID uint) (int64, error)
}

// RefreshTokenRepositoryInterface is the session-token store contract.
type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	FindValidByHash(tokenHash string) (*models.RefreshToken, error)
	RevokeByHash(tokenHash string) error
	RevokeAllForUser(userID uint) error
}
