package service

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Victormarshall911/NexTalk/internal/models"
)

// MockMessageRepository is an in-memory message store for service tests.
type MockMessageRepository struct {
	messages map[uint]*models.Message
	nextID   uint

	failFindInvolving bool
}

func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{
		messages: make(map[uint]*models.Message),
		nextID:   1,
	}
}

func (m *MockMessageRepository) Create(message *models.Message) error {
	if message.ID == 0 {
		message.ID = m.nextID
		m.nextID++
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	m.messages[message.ID] = message
	return nil
}

func (m *MockMessageRepository) FindByID(id uint) (*models.Message, error) {
	if msg, ok := m.messages[id]; ok {
		return msg, nil
	}
	return nil, errors.New("record not found")
}

func (m *MockMessageRepository) FindByClientID(clientID string, senderID uint) (*models.Message, error) {
	for _, msg := range m.messages {
		if msg.ClientID == clientID && msg.SenderID == senderID {
			return msg, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *MockMessageRepository) FindInvolving(userID uint) ([]models.Message, error) {
	if m.failFindInvolving {
		return nil, errors.New("store unavailable")
	}
	var result []models.Message
	for _, msg := range m.messages {
		if msg.SenderID == userID || msg.ReceiverID == userID {
			result = append(result, *msg)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (m *MockMessageRepository) FindConversation(userID1, userID2 uint, limit int) ([]models.Message, error) {
	var result []models.Message
	for _, msg := range m.messages {
		if (msg.SenderID == userID1 && msg.ReceiverID == userID2) ||
			(msg.SenderID == userID2 && msg.ReceiverID == userID1) {
			result = append(result, *msg)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockMessageRepository) FindConversationCursor(userID1, userID2 uint, cursor uint, limit int) ([]models.Message, error) {
	all, err := m.FindConversation(userID1, userID2, len(m.messages))
	if err != nil {
		return nil, err
	}
	var result []models.Message
	for _, msg := range all {
		if msg.ID < cursor {
			result = append(result, msg)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *MockMessageRepository) MarkConversationAsRead(userID uint, peerID uint) (int64, error) {
	var updated int64
	now := time.Now()
	for _, msg := range m.messages {
		if msg.SenderID == peerID && msg.ReceiverID == userID && !msg.IsRead {
			msg.IsRead = true
			msg.ReadAt = &now
			updated++
		}
	}
	return updated, nil
}

// MockUserRepository is an in-memory profile directory for service tests.
type MockUserRepository struct {
	users  map[uint]*models.User
	nextID uint
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[uint]*models.User),
		nextID: 1,
	}
}

func (m *MockUserRepository) Create(user *models.User) error {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, errors.New("record not found")
}

func (m *MockUserRepository) FindByIDs(ids []uint) ([]models.User, error) {
	var result []models.User
	for _, id := range ids {
		if user, ok := m.users[id]; ok {
			result = append(result, *user)
		}
	}
	return result, nil
}

func (m *MockUserRepository) ListOthers(userID uint, limit int) ([]models.User, error) {
	var result []models.User
	for _, user := range m.users {
		if user.ID != userID {
			result = append(result, *user)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockUserRepository) SearchUsers(query string, excludeID uint, limit int) ([]models.User, error) {
	q := strings.ToLower(query)
	var result []models.User
	for _, user := range m.users {
		if user.ID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(user.FullName), q) ||
			strings.Contains(strings.ToLower(user.Email), q) {
			result = append(result, *user)
		}
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockUserRepository) Update(user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) UpdatePushToken(userID uint, token string) error {
	user, ok := m.users[userID]
	if !ok {
		return errors.New("record not found")
	}
	user.PushToken = token
	return nil
}

func (m *MockUserRepository) UpdateOnlineStatus(userID uint, isOnline bool) error {
	user, ok := m.users[userID]
	if !ok {
		return errors.New("record not found")
	}
	user.IsOnline = isOnline
	if !isOnline {
		now := time.Now()
		user.LastSeen = &now
	}
	return nil
}

// MockPresenceSource is a canned presence answer for directory tests.
type MockPresenceSource struct {
	online map[uint]struct{}
	err    error
}

func (m *MockPresenceSource) OnlineUserIDs() (map[uint]struct{}, error) {
	return m.online, m.err
}

// MockRefreshTokenRepository is an in-memory refresh token store.
type MockRefreshTokenRepository struct {
	tokens map[string]*models.RefreshToken
	nextID uint
}

func NewMockRefreshTokenRepository() *MockRefreshTokenRepository {
	return &MockRefreshTokenRepository{
		tokens: make(map[string]*models.RefreshToken),
		nextID: 1,
	}
}

func (m *MockRefreshTokenRepository) Create(token *models.RefreshToken) error {
	if token.ID == 0 {
		token.ID = m.nextID
		m.nextID++
	}
	m.tokens[token.TokenHash] = token
	return nil
}

func (m *MockRefreshTokenRepository) FindValidByHash(tokenHash string) (*models.RefreshToken, error) {
	token, ok := m.tokens[tokenHash]
	if !ok || token.IsRevoked() || token.IsExpired(time.Now()) {
		return nil, errors.New("record not found")
	}
	return token, nil
}

func (m *MockRefreshTokenRepository) RevokeByHash(tokenHash string) error {
	if token, ok := m.tokens[tokenHash]; ok && !token.IsRevoked() {
		now := time.Now()
		token.RevokedAt = &now
	}
	return nil
}

func (m *MockRefreshTokenRepository) RevokeAllForUser(userID uint) error {
	now := time.Now()
	for _, token := range m.tokens {
		if token.UserID == userID && !token.IsRevoked() {
			token.RevokedAt = &now
		}
	}
	return nil
}
