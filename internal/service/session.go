package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sstrand/romdeck/internal/backend"
)

// addressKey is the persisted-store key holding the device address.
const addressKey = "misterIp"

// SettingsStore is the slice of the KV store the session needs.
type SettingsStore interface {
	GetSetting(key string) (string, bool)
	SetSetting(key, value string) error
}

// SessionService owns the device address that parameterizes every network
// call. The address is persisted so it survives restarts; changing it
// invalidates every in-flight operation, which the orchestrator enforces by
// bumping its request generation.
type SessionService struct {
	store   SettingsStore
	client  *backend.Client
	logger  *slog.Logger
	address string
}

// NewSessionService loads the persisted address (falling back to the given
// default) and points the backend client at it.
func NewSessionService(store SettingsStore, client *backend.Client, defaultAddress string, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}

	address := defaultAddress
	if saved, ok := store.GetSetting(addressKey); ok && strings.TrimSpace(saved) != "" {
		address = strings.TrimSpace(saved)
	}

	client.SetAddress(address)
	return &SessionService{
		store:   store,
		client:  client,
		logger:  logger,
		address: address,
	}
}

// Address returns the current device address.
func (s *SessionService) Address() string {
	return s.address
}

// HasStoredAddress reports whether an address has ever been saved. Used to
// decide if the first-run prompt should appear.
func (s *SessionService) HasStoredAddress() bool {
	saved, ok := s.store.GetSetting(addressKey)
	return ok && strings.TrimSpace(saved) != ""
}

// SetAddress persists a new device address and repoints the client. Writes
// are user-driven and serial, so last-writer-wins is safe.
func (s *SessionService) SetAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("device address cannot be empty")
	}
	if address == s.address {
		return nil
	}

	if err := s.store.SetSetting(addressKey, address); err != nil {
		return fmt.Errorf("failed to persist device address: %w", err)
	}

	s.address = address
	s.client.SetAddress(address)
	s.logger.Info("device address changed", "address", address)
	return nil
}
