package services

import (
	"context"
	"strings"

	"github.com/nimasrn/resto-manager/internal/model"
	"github.com/nimasrn/resto-manager/internal/notify"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, s *model.Settings) (string, error)
}

type MessageSender interface {
	SendMessage(ctx context.Context, text string) bool
}

type SettingsService struct {
	repo   SettingsRepository
	sender MessageSender
}

func NewSettingsService(repo SettingsRepository, sender MessageSender) *SettingsService {
	return &SettingsService{
		repo:   repo,
		sender: sender,
	}
}

// Get returns the stored settings, or the defaults when none were saved.
func (s *SettingsService) Get(ctx context.Context) (*model.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, storeError("get settings", err)
	}
	if settings == nil {
		return model.DefaultSettings(), nil
	}
	return settings, nil
}

// Save replaces the settings record.
func (s *SettingsService) Save(ctx context.Context, in model.Settings) (*model.Settings, error) {
	settings := &model.Settings{
		TelegramBotToken: strings.TrimSpace(in.TelegramBotToken),
		TelegramChatID:   strings.TrimSpace(in.TelegramChatID),
		RestaurantName:   strings.TrimSpace(in.RestaurantName),
	}
	if _, err := s.repo.Save(ctx, settings); err != nil {
		return nil, storeError("save settings", err)
	}
	return settings, nil
}

// SendTest sends the connection test message with the stored settings and
// reports whether it was delivered.
func (s *SettingsService) SendTest(ctx context.Context) (bool, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return s.sender.SendMessage(ctx, notify.ConnectionTestMessage(settings.RestaurantName)), nil
}
