package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/supportzen/internal/domain"
	"github.com/spec-kit/supportzen/internal/persistence"
)

// SettingsStore owns the scalar preference slot.
type SettingsStore struct {
	mu       sync.Mutex
	slots    persistence.SlotStore
	logger   *zap.Logger
	settings domain.Settings
}

// NewSettingsStore constructs the store. Call Load before first use.
func NewSettingsStore(slots persistence.SlotStore, logger *zap.Logger) *SettingsStore {
	return &SettingsStore{
		slots:    slots,
		logger:   logger,
		settings: domain.DefaultSettings(),
	}
}

// Load reads persisted preferences; missing or unparsable data falls back to
// defaults.
func (s *SettingsStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := s.slots.Read(ctx, persistence.SlotSettings)
	if errors.Is(err, persistence.ErrSlotEmpty) {
		s.settings = domain.DefaultSettings()
		s.persist(ctx)
		return
	}
	if err != nil {
		s.logger.Error("read settings slot", zap.Error(err))
		s.settings = domain.DefaultSettings()
		return
	}

	var loaded domain.Settings
	if err := json.Unmarshal(payload, &loaded); err != nil {
		s.logger.Warn("settings slot unparsable, using defaults", zap.Error(err))
		s.settings = domain.DefaultSettings()
		s.persist(ctx)
		return
	}
	s.settings = loaded.Normalize()
}

// Get returns the current preferences.
func (s *SettingsStore) Get() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Update replaces the preferences, normalizing invalid values.
func (s *SettingsStore) Update(ctx context.Context, settings domain.Settings) domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings.Normalize()
	s.persist(ctx)
	return s.settings
}

func (s *SettingsStore) persist(ctx context.Context) {
	payload, err := json.Marshal(s.settings)
	if err != nil {
		s.logger.Error("marshal settings", zap.Error(err))
		return
	}
	if err := s.slots.Write(ctx, persistence.SlotSettings, payload); err != nil {
		s.logger.Error("persist settings slot", zap.Error(err))
	}
}
