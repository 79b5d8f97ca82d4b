package auth

import (
	"errors"

	"github.com/QsSama-W/aliddns/internal/util"
)

const ServiceName = "aliddns"

var ErrTokenNotFound = errors.New("auth token not found")

type Store interface {
	SetToken(key string, token string) error
	GetToken(key string) (string, error)
	DeleteToken(key string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeKeyName normalizes a credential key name for consistent lookup.
func NormalizeKeyName(key string) string {
	return util.NormalizeKey(key)
}
