package cache

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Victormarshall911/NexTalk/internal/models"
)

const ProfileTTL = 2 * time.Minute

// ProfileCache sits in front of the profile directory for the batched
// lookups the conversation aggregator issues on every pass. Profiles change
// rarely, so a short TTL plus invalidation on profile update is enough.
type ProfileCache struct {
	redis *RedisCache
}

func NewProfileCache(redis *RedisCache) *ProfileCache {
	return &ProfileCache{redis: redis}
}

func profileKey(userID uint) string {
	return fmt.Sprintf("profile:%d", userID)
}

// GetMany returns the cached profiles found for ids, keyed by user id.
// Misses are simply absent; the caller fetches those from the directory.
// A nil cache behaves as all-miss.
func (pc *ProfileCache) GetMany(ids []uint) map[uint]models.User {
	found := make(map[uint]models.User, len(ids))
	if pc == nil || pc.redis == nil {
		return found
	}

	for _, id := range ids {
		data, err := pc.redis.Get(profileKey(id))
		if err != nil || data == nil {
			continue
		}
		var user models.User
		if err := msgpack.Unmarshal(data, &user); err != nil {
			continue
		}
		found[id] = user
	}
	return found
}

// SetMany caches profile rows fetched from the directory.
func (pc *ProfileCache) SetMany(users []models.User) error {
	if pc == nil || pc.redis == nil {
		return nil
	}

	for _, user := range users {
		data, err := msgpack.Marshal(user)
		if err != nil {
			return err
		}
		if err := pc.redis.Set(profileKey(user.ID), data, ProfileTTL); err != nil {
			return err
		}
	}
	return nil
}

// Invalidate drops a user's cached profile after a profile update.
func (pc *ProfileCache) Invalidate(userID uint) error {
	if pc == nil || pc.redis == nil {
		return nil
	}
	return pc.redis.Delete(profileKey(userID))
}
