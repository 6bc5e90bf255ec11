//go:build darwin

package tgclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/gotd/td/session"
	"github.com/keybase/go-keychain"
)

const keychainAccount = "telegram-session"

// keychainStorage implements session.Storage using macOS Keychain.
type keychainStorage struct{}

// NewSessionStorage creates Keychain session storage, or file storage when
// an explicit path is given.
func NewSessionStorage(path string) SessionStorage {
	if path != "" {
		return newFileStorage(path)
	}
	return &keychainStorage{}
}

func keychainItem() keychain.Item {
	item := keychain.NewItem()
	item.SetSecClass(keychain.SecClassGenericPassword)
	item.SetService(appName)
	item.SetAccount(keychainAccount)
	return item
}

// LoadSession loads session data from Keychain.
func (s *keychainStorage) LoadSession(_ context.Context) ([]byte, error) {
	query := keychainItem()
	query.SetMatchLimit(keychain.MatchLimitOne)
	query.SetReturnData(true)

	results, err := keychain.QueryItem(query)
	if errors.Is(err, keychain.ErrorItemNotFound) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying keychain: %w", err)
	}

	if len(results) == 0 {
		return nil, session.ErrNotFound
	}

	return results[0].Data, nil
}

// StoreSession stores session data in Keychain.
func (s *keychainStorage) StoreSession(_ context.Context, data []byte) error {
	_ = keychain.DeleteItem(keychainItem()) // Ignore error if not found

	item := keychainItem()
	item.SetLabel("Telegram Old Chats Manager Session")
	item.SetData(data)
	item.SetSynchronizable(keychain.SynchronizableNo)
	item.SetAccessible(keychain.AccessibleWhenUnlocked)

	if err := keychain.AddItem(item); err != nil {
		return fmt.Errorf("adding keychain item: %w", err)
	}
	return nil
}

// DeleteSession removes session data from Keychain.
func (s *keychainStorage) DeleteSession() error {
	err := keychain.DeleteItem(keychainItem())
	if errors.Is(err, keychain.ErrorItemNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("deleting keychain item: %w", err)
	}
	return nil
}
