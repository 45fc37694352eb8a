package service

import (
	"errors"
	"testing"
	"time"

	"github.com/Victormarshall911/NexTalk/internal/models"
)

func TestSendMessageCreatesRow(t *testing.T) {
	repo := NewMockMessageRepository()
	svc := NewMessageService(repo)

	msg, err := svc.SendMessage(1, SendMessageInput{
		ClientID:   "client-1",
		ReceiverID: 2,
		Text:       "hello",
	})
	if err != nil {
		t.Fatalf("SendMessage() error: %v", err)
	}

	if msg.SenderID != 1 || msg.ReceiverID != 2 {
		t.Errorf("message participants = (%d, %d), want (1, 2)", msg.SenderID, msg.ReceiverID)
	}
	if msg.Text != "hello" {
		t.Errorf("message text = %q, want %q", msg.Text, "hello")
	}
	if msg.IsRead {
		t.Error("new message is marked read")
	}
}

func TestSendMessageDeduplicatesByClientID(t *testing.T) {
	repo := NewMockMessageRepository()
	svc := NewMessageService(repo)

	input := SendMessageInput{ClientID: "client-1", ReceiverID: 2, Text: "hello"}

	first, err := svc.SendMessage(1, input)
	if err != nil {
		t.Fatalf("SendMessage() error: %v", err)
	}
	second, err := svc.SendMessage(1, input)
	if err != nil {
		t.Fatalf("SendMessage() retry error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("retried send inserted a second row: ids %d and %d", first.ID, second.ID)
	}
	if len(repo.messages) != 1 {
		t.Errorf("store holds %d messages, want 1", len(repo.messages))
	}
}

func TestSendMessageGeneratesClientID(t *testing.T) {
	repo := NewMockMessageRepository()
	svc := NewMessageService(repo)

	msg, err := svc.SendMessage(1, SendMessageInput{ReceiverID: 2, Text: "hello"})
	if err != nil {
		t.Fatalf("SendMessage() error: %v", err)
	}
	if msg.ClientID == "" {
		t.Error("SendMessage() left ClientID empty")
	}
}

func TestSendMessageToSelfRejected(t *testing.T) {
	svc := NewMessageService(NewMockMessageRepository())

	_, err := svc.SendMessage(1, SendMessageInput{ReceiverID: 1, Text: "hi me"})
	if !errors.Is(err, ErrSelfMessage) {
		t.Errorf("SendMessage() error = %v, want ErrSelfMessage", err)
	}
}

func TestGetConversationNewestFirst(t *testing.T) {
	repo := NewMockMessageRepository()
	svc := NewMessageService(repo)
	base := time.Now()

	for i, text := range []string{"one", "two", "three"} {
		repo.Create(&models.Message{
			ClientID:   text,
			SenderID:   1,
			ReceiverID: 2,
			Text:       text,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
	}
	// Unrelated pair must not leak in.
	repo.Create(&models.Message{ClientID: "x", SenderID: 3, ReceiverID: 4, Text: "noise", CreatedAt: base})

	messages, err := svc.GetConversation(1, 2, 50)
	if err != nil {
		t.Fatalf("GetConversation() error: %v", err)
	}

	if len(messages) != 3 {
		t.Fatalf("GetConversation() returned %d messages, want 3", len(messages))
	}
	if messages[0].Text != "three" || messages[2].Text != "one" {
		t.Errorf("order = [%s, %s, %s], want newest first", messages[0].Text, messages[1].Text, messages[2].Text)
	}
}

func TestMarkConversationAsRead(t *testing.T) {
	repo := NewMockMessageRepository()
	svc := NewMessageService(repo)
	base := time.Now()

	repo.Create(&models.Message{ClientID: "a", SenderID: 2, ReceiverID: 1, Text: "a", CreatedAt: base})
	repo.Create(&models.Message{ClientID: "b", SenderID: 2, ReceiverID: 1, Text: "b", CreatedAt: base})
	// My own outgoing message must stay untouched.
	repo.Create(&models.Message{ClientID: "c", SenderID: 1, ReceiverID: 2, Text: "c", CreatedAt: base})

	updated, err := svc.MarkConversationAsRead(1, 2)
	if err != nil {
		t.Fatalf("MarkConversationAsRead() error: %v", err)
	}
	if updated != 2 {
		t.Errorf("MarkConversationAsRead() updated %d rows, want 2", updated)
	}

	// Second call is a no-op.
	updated, _ = svc.MarkConversationAsRead(1, 2)
	if updated != 0 {
		t.Errorf("second MarkConversationAsRead() updated %d rows, want 0", updated)
	}
}
