package service

import (
	"errors"
	"testing"

	"github.com/Victormarshall911/NexTalk/internal/models"
)

var errNoPresence = errors.New("presence unavailable")

func TestGetUsersByIDsReturnsOnlyExisting(t *testing.T) {
	userRepo := NewMockUserRepository()
	svc := NewUserService(userRepo, nil, nil)

	userRepo.Create(&models.User{ID: 1, Email: "a@example.com"})
	userRepo.Create(&models.User{ID: 2, Email: "b@example.com"})

	found, err := svc.GetUsersByIDs([]uint{1, 2, 99})
	if err != nil {
		t.Fatalf("GetUsersByIDs() error: %v", err)
	}

	if len(found) != 2 {
		t.Errorf("GetUsersByIDs() returned %d profiles, want 2", len(found))
	}
	if _, ok := found[99]; ok {
		t.Error("GetUsersByIDs() fabricated a profile for a missing id")
	}
}

func TestListDirectoryExcludesCaller(t *testing.T) {
	userRepo := NewMockUserRepository()
	svc := NewUserService(userRepo, nil, nil)

	userRepo.Create(&models.User{ID: 1, Email: "me@example.com"})
	userRepo.Create(&models.User{ID: 2, Email: "other@example.com"})

	users, err := svc.ListDirectory(1, 0)
	if err != nil {
		t.Fatalf("ListDirectory() error: %v", err)
	}
	if len(users) != 1 || users[0].ID != 2 {
		t.Errorf("ListDirectory() = %+v, want only user 2", users)
	}
}

func TestSearchUsersMatchesNameAndEmail(t *testing.T) {
	userRepo := NewMockUserRepository()
	svc := NewUserService(userRepo, nil, nil)

	userRepo.Create(&models.User{ID: 1, FullName: "Jane Roe", Email: "jane@example.com"})
	userRepo.Create(&models.User{ID: 2, FullName: "Bob Smith", Email: "bob@example.com"})

	byName, err := svc.SearchUsers("jane", 99, 0)
	if err != nil {
		t.Fatalf("SearchUsers() error: %v", err)
	}
	if len(byName) != 1 || byName[0].ID != 1 {
		t.Errorf("SearchUsers(\"jane\") = %+v, want user 1", byName)
	}

	byEmail, _ := svc.SearchUsers("bob@", 99, 0)
	if len(byEmail) != 1 || byEmail[0].ID != 2 {
		t.Errorf("SearchUsers(\"bob@\") = %+v, want user 2", byEmail)
	}
}

func TestListDirectoryOverlaysPresence(t *testing.T) {
	userRepo := NewMockUserRepository()
	// User 2's stored column says online but their presence key expired;
	// user 3 is the inverse.
	userRepo.Create(&models.User{ID: 1, Email: "me@example.com"})
	userRepo.Create(&models.User{ID: 2, Email: "stale@example.com", IsOnline: true})
	userRepo.Create(&models.User{ID: 3, Email: "live@example.com", IsOnline: false})
	presence := &MockPresenceSource{online: map[uint]struct{}{3: {}}}
	svc := NewUserService(userRepo, nil, presence)

	users, err := svc.ListDirectory(1, 0)
	if err != nil {
		t.Fatalf("ListDirectory() error: %v", err)
	}

	got := make(map[uint]bool, len(users))
	for _, u := range users {
		got[u.ID] = u.IsOnline
	}
	if got[2] {
		t.Error("user 2 reported online after their presence expired")
	}
	if !got[3] {
		t.Error("user 3 reported offline despite a live presence key")
	}
}

func TestListDirectoryKeepsStoredStateWithoutPresence(t *testing.T) {
	userRepo := NewMockUserRepository()
	userRepo.Create(&models.User{ID: 1, Email: "me@example.com"})
	userRepo.Create(&models.User{ID: 2, Email: "other@example.com", IsOnline: true})

	cases := []struct {
		name     string
		presence PresenceSource
	}{
		{"no presence source", nil},
		{"no presence data", &MockPresenceSource{online: nil}},
		{"presence lookup fails", &MockPresenceSource{err: errNoPresence}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewUserService(userRepo, nil, tc.presence)
			users, err := svc.ListDirectory(1, 0)
			if err != nil {
				t.Fatalf("ListDirectory() error: %v", err)
			}
			if len(users) != 1 || !users[0].IsOnline {
				t.Errorf("stored is_online overridden without presence data: %+v", users)
			}
		})
	}
}

func TestSearchUsersOverlaysPresence(t *testing.T) {
	userRepo := NewMockUserRepository()
	userRepo.Create(&models.User{ID: 2, FullName: "Jane Roe", Email: "jane@example.com"})
	presence := &MockPresenceSource{online: map[uint]struct{}{2: {}}}
	svc := NewUserService(userRepo, nil, presence)

	users, err := svc.SearchUsers("jane", 99, 0)
	if err != nil {
		t.Fatalf("SearchUsers() error: %v", err)
	}
	if len(users) != 1 || !users[0].IsOnline {
		t.Errorf("SearchUsers() = %+v, want user 2 online", users)
	}
}

func TestRegisterPushToken(t *testing.T) {
	userRepo := NewMockUserRepository()
	svc := NewUserService(userRepo, nil, nil)
	userRepo.Create(&models.User{ID: 1, Email: "me@example.com"})

	if err := svc.RegisterPushToken(1, "ExponentPushToken[abc]"); err != nil {
		t.Fatalf("RegisterPushToken() error: %v", err)
	}
	user, _ := userRepo.FindByID(1)
	if user.PushToken != "ExponentPushToken[abc]" {
		t.Errorf("push token = %q, want registered token", user.PushToken)
	}

	// Clearing unregisters the device.
	if err := svc.RegisterPushToken(1, ""); err != nil {
		t.Fatalf("RegisterPushToken(\"\") error: %v", err)
	}
	user, _ = userRepo.FindByID(1)
	if user.PushToken != "" {
		t.Errorf("push token = %q, want empty after unregister", user.PushToken)
	}
}

func TestUpdateProfileTrimsName(t *testing.T) {
	userRepo := NewMockUserRepository()
	svc := NewUserService(userRepo, nil, nil)
	userRepo.Create(&models.User{ID: 1, Email: "me@example.com"})

	user, err := svc.UpdateProfile(1, UpdateProfileInput{FullName: "  Jane Roe  "})
	if err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	if user.FullName != "Jane Roe" {
		t.Errorf("full name = %q, want trimmed", user.FullName)
	}
}
