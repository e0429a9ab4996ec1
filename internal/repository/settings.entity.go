package repository

import "github.com/nimasrn/resto-manager/internal/model"

type SettingsEntity struct {
	ID               string `gorm:"primaryKey;column:id"`
	TelegramBotToken string `gorm:"column:telegram_bot_token;not null"`
	TelegramChatID   string `gorm:"column:telegram_chat_id;not null"`
	RestaurantName   string `gorm:"column:restaurant_name;not null"`
}

func (SettingsEntity) TableName() string {
	return "settings"
}

func toSettingsEntity(m *model.Settings) *SettingsEntity {
	return &SettingsEntity{
		ID:               model.SettingsID,
		TelegramBotToken: m.TelegramBotToken,
		TelegramChatID:   m.TelegramChatID,
		RestaurantName:   m.RestaurantName,
	}
}

func toSettingsModel(e *SettingsEntity) *model.Settings {
	return &model.Settings{
		ID:               e.ID,
		TelegramBotToken: e.TelegramBotToken,
		TelegramChatID:   e.TelegramChatID,
		RestaurantName:   e.RestaurantName,
	}
}
