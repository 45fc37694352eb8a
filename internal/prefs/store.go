package prefs

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	// DefaultTheme applies until a user toggles for the first time.
	DefaultTheme = ThemeLight
)

var ErrInvalidTheme = errors.New("theme must be \"light\" or \"dark\"")

// Store persists per-user client preferences in a local BadgerDB. Today that
// is a single key per user: the chosen theme.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the preference store at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open preference store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func themeKey(userID uint) []byte {
	return []byte(fmt.Sprintf("theme:%d", userID))
}

// Theme returns the user's stored theme, or the default when the user has
// never set one.
func (s *Store) Theme(userID uint) (string, error) {
	theme := DefaultTheme
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(themeKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			theme = string(val)
			return nil
		})
	})
	if err != nil {
		return "", fmt.Errorf("read theme: %w", err)
	}
	return theme, nil
}

// SetTheme stores the user's theme choice.
func (s *Store) SetTheme(userID uint, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return ErrInvalidTheme
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(themeKey(userID), []byte(theme))
	})
	if err != nil {
		return fmt.Errorf("write theme: %w", err)
	}
	return nil
}
