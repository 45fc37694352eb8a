package service

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Victormarshall911/NexTalk/internal/models"
	"github.com/Victormarshall911/NexTalk/internal/repository"
)

// namePlaceholder fills a summary between the grouping pass and the batched
// directory lookup. It never survives Aggregate: unresolved names degrade to
// nameUnknown.
const (
	namePlaceholder = "Loading…"
	nameUnknown     = "Unknown"
)

// ConversationSummary is one row of the chats list: the per-counterpart
// rollup of the flat message log. It is derived, never persisted.
type ConversationSummary struct {
	PeerID        uint      `json:"peer_id"`
	DisplayName   string    `json:"display_name"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int       `json:"unread_count"`
}

// ConversationService recomputes conversation summaries from scratch on
// every call. There is no incremental path: callers re-request after a feed
// event or on screen focus, and the newest computation wins.
type ConversationService struct {
	messageRepo repository.MessageRepositoryInterface
	users       *UserService
}

func NewConversationService(messageRepo repository.MessageRepositoryInterface, users *UserService) *ConversationService {
	return &ConversationService{messageRepo: messageRepo, users: users}
}

// Aggregate builds the ordered summary list for userID.
//
// A failed or empty message query yields an empty list, not an error: the
// caller cannot distinguish "no conversations" from "store unavailable",
// which keeps the chats screen rendering in both cases.
func (s *ConversationService) Aggregate(userID uint) []ConversationSummary {
	messages, err := s.messageRepo.FindInvolving(userID)
	if err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("conversations: message query failed")
		return []ConversationSummary{}
	}

	summaries, peerIDs := groupByCounterpart(userID, messages)
	s.resolveNames(summaries, peerIDs)
	return summaries
}

// groupByCounterpart runs the single aggregation pass over the message set,
// which must be sorted newest-first (FindInvolving guarantees it).
//
// The first message seen for a counterpart is, by the input ordering, the
// pair's most recent one; it creates the summary and fixes its place in the
// output. Every unread counterpart-authored message bumps the unread count,
// whether or not it created the summary.
func groupByCounterpart(userID uint, messages []models.Message) ([]ConversationSummary, []uint) {
	summaries := []ConversationSummary{}
	index := make(map[uint]int)
	peerIDs := make([]uint, 0)

	for i := range messages {
		msg := &messages[i]
		peerID := msg.CounterpartID(userID)

		at, ok := index[peerID]
		if !ok {
			at = len(summaries)
			index[peerID] = at
			peerIDs = append(peerIDs, peerID)
			summaries = append(summaries, ConversationSummary{
				PeerID:        peerID,
				DisplayName:   namePlaceholder,
				LastMessage:   msg.Text,
				LastMessageAt: msg.CreatedAt,
			})
		}

		if msg.SenderID != userID && !msg.IsRead {
			summaries[at].UnreadCount++
		}
	}

	return summaries, peerIDs
}

// resolveNames replaces placeholders with directory names in one batched
// lookup: full name, else email, else "Unknown". A missing profile row or a
// failed lookup only degrades the name; the summary always stays.
func (s *ConversationService) resolveNames(summaries []ConversationSummary, peerIDs []uint) {
	if len(peerIDs) == 0 {
		return
	}

	profiles, err := s.users.GetUsersByIDs(peerIDs)
	if err != nil {
		log.Warn().Err(err).Msg("conversations: profile lookup failed")
		profiles = nil
	}

	for i := range summaries {
		profile, ok := profiles[summaries[i].PeerID]
		if !ok || profile.DisplayName() == "" {
			summaries[i].DisplayName = nameUnknown
			continue
		}
		summaries[i].DisplayName = profile.DisplayName()
	}
}
