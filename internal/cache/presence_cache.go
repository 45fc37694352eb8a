package cache

import (
	"fmt"
	"strconv"
	"time"
)

const presenceSetKey = "online:users"

// PresenceCache tracks which users hold a live realtime-feed connection.
// Each online user gets a TTL key sized to the feed's liveness window, so a
// crashed client that never disconnects cleanly expires on its own; the
// online:users set exists for listing and is pruned of expired members on
// read.
type PresenceCache struct {
	redis *RedisCache
	ttl   time.Duration
}

func NewPresenceCache(redis *RedisCache, ttl time.Duration) *PresenceCache {
	return &PresenceCache{redis: redis, ttl: ttl}
}

func presenceKey(userID uint) string {
	return fmt.Sprintf("online:%d", userID)
}

// SetOnline marks a user online.
func (pc *PresenceCache) SetOnline(userID uint) error {
	if pc == nil || pc.redis == nil {
		return nil
	}
	if err := pc.redis.SetAdd(presenceSetKey, userID); err != nil {
		return err
	}
	return pc.redis.Set(presenceKey(userID), []byte("1"), pc.ttl)
}

// SetOffline marks a user offline.
func (pc *PresenceCache) SetOffline(userID uint) error {
	if pc == nil || pc.redis == nil {
		return nil
	}
	if err := pc.redis.SetRemove(presenceSetKey, userID); err != nil {
		return err
	}
	return pc.redis.Delete(presenceKey(userID))
}

// OnlineUserIDs returns the users whose presence keys are still live.
// Set members whose key expired (a crashed client) are removed on the way
// through. A nil cache returns a nil map, meaning "no presence data".
func (pc *PresenceCache) OnlineUserIDs() (map[uint]struct{}, error) {
	if pc == nil || pc.redis == nil {
		return nil, nil
	}

	members, err := pc.redis.SetMembers(presenceSetKey)
	if err != nil {
		return nil, err
	}

	online := make(map[uint]struct{}, len(members))
	for _, member := range members {
		id, err := strconv.ParseUint(member, 10, 32)
		if err != nil {
			continue
		}
		alive, err := pc.redis.Get(presenceKey(uint(id)))
		if err != nil {
			return nil, err
		}
		if alive == nil {
			_ = pc.redis.SetRemove(presenceSetKey, uint(id))
			continue
		}
		online[uint(id)] = struct{}{}
	}
	return online, nil
}
