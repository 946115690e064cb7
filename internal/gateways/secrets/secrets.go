package secrets

import (
	"errors"
	"fmt"

	"github.com/quintans/wallfetch/internal/app"
	"github.com/zalando/go-keyring"
)

const apiKeyUser = "wallhaven-api-key"

type Secrets struct {
	service string
}

func NewSecrets() *Secrets {
	return &Secrets{service: app.Name}
}

// GetAPIKey returns an empty key when none was stored.
func (s *Secrets) GetAPIKey() (string, error) {
	key, err := keyring.Get(s.service, apiKeyUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("could not get API key: %w", err)
	}

	return key, nil
}

// SetAPIKey stores the key. An empty value removes it.
func (s *Secrets) SetAPIKey(value string) error {
	if value == "" {
		err := keyring.Delete(s.service, apiKeyUser)
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("could not remove API key: %w", err)
		}
		return nil
	}

	err := keyring.Set(s.service, apiKeyUser, value)
	if err != nil {
		return fmt.Errorf("could not save API key: %w", err)
	}

	return nil
}
