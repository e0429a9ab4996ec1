package model

// SettingsID is the fixed key of the single settings record.
const SettingsID = "config"

const DefaultRestaurantName = "Restoran"

type Settings struct {
	ID               string `json:"id"`
	TelegramBotToken string `json:"telegramBotToken"`
	TelegramChatID   string `json:"telegramChatId"`
	RestaurantName   string `json:"restaurantName"`
}

// DefaultSettings is what callers see before anything was saved.
func DefaultSettings() *Settings {
	return &Settings{
		ID:             SettingsID,
		RestaurantName: DefaultRestaurantName,
	}
}

// CanNotify reports whether both Telegram credentials are present.
func (s *Settings) CanNotify() bool {
	return s != nil && s.TelegramBotToken != "" && s.TelegramChatID != ""
}
