package service

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Victormarshall911/NexTalk/internal/cache"
	"github.com/Victormarshall911/NexTalk/internal/models"
	"github.com/Victormarshall911/NexTalk/internal/repository"
	"github.com/Victormarshall911/NexTalk/internal/validation"
)

// PresenceSource reports which users currently hold a feed connection.
// A nil map means no presence data is available.
type PresenceSource interface {
	OnlineUserIDs() (map[uint]struct{}, error)
}

// UserService fronts the profile directory.
type UserService struct {
	userRepo     repository.UserRepositoryInterface
	profileCache *cache.ProfileCache
	presence     PresenceSource
}

func NewUserService(userRepo repository.UserRepositoryInterface, profileCache *cache.ProfileCache, presence PresenceSource) *UserService {
	return &UserService{userRepo: userRepo, profileCache: profileCache, presence: presence}
}

func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetUsersByIDs is the batched directory lookup. Cached profiles are used
// when present; only the misses hit the store. Ids with no profile row are
// absent from the result, not an error.
func (s *UserService) GetUsersByIDs(ids []uint) (map[uint]models.User, error) {
	result := s.profileCache.GetMany(ids)

	var missing []uint
	for _, id := range ids {
		if _, ok := result[id]; !ok {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		fetched, err := s.userRepo.FindByIDs(missing)
		if err != nil {
			return nil, fmt.Errorf("batch profile lookup: %w", err)
		}
		for _, user := range fetched {
			result[user.ID] = user
		}
		// Best effort: a failed cache write only costs the next lookup.
		_ = s.profileCache.SetMany(fetched)
	}

	return result, nil
}

// ListDirectory returns everyone except the caller, for the People screen.
func (s *UserService) ListDirectory(userID uint, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	users, err := s.userRepo.ListOthers(userID, limit)
	if err != nil {
		return nil, err
	}
	s.overlayPresence(users)
	return users, nil
}

func (s *UserService) SearchUsers(query string, excludeID uint, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	users, err := s.userRepo.SearchUsers(query, excludeID, limit)
	if err != nil {
		return nil, err
	}
	s.overlayPresence(users)
	return users, nil
}

// overlayPresence replaces the stored is_online column with live-connection
// state. The stored column lags a crashed client until its presence key
// expires, so the cache wins whenever it answers.
func (s *UserService) overlayPresence(users []models.User) {
	if s.presence == nil {
		return
	}
	online, err := s.presence.OnlineUserIDs()
	if err != nil {
		log.Warn().Err(err).Msg("directory: presence lookup failed")
		return
	}
	applyPresence(users, online)
}

func applyPresence(users []models.User, online map[uint]struct{}) {
	if online == nil {
		return
	}
	for i := range users {
		_, ok := online[users[i].ID]
		users[i].IsOnline = ok
	}
}

type UpdateProfileInput struct {
	FullName string `json:"full_name"`
}

func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.FullName = validation.TrimAndLimit(input.FullName, validation.MaxFullNameLength())
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	_ = s.profileCache.Invalidate(userID)
	return user, nil
}

// RegisterPushToken saves the device token produced by the client's
// notification-permission flow. An empty token unregisters the device.
func (s *UserService) RegisterPushToken(userID uint, token string) error {
	if err := s.userRepo.UpdatePushToken(userID, token); err != nil {
		return fmt.Errorf("update push token: %w", err)
	}
	_ = s.profileCache.Invalidate(userID)
	return nil
}

func (s *UserService) SetUserOnline(userID uint) error {
	return s.userRepo.UpdateOnlineStatus(userID, true)
}

func (s *UserService) SetUserOffline(userID uint) error {
	return s.userRepo.UpdateOnlineStatus(userID, false)
}
