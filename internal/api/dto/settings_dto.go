package dto

// SettingsRequest replaces the scalar preference set.
type SettingsRequest struct {
	AvatarURL          string  `json:"avatarUrl"`
	Theme              string  `json:"theme"`
	TimeFormat         string  `json:"timeFormat"`
	TicketDisplayLimit int     `json:"ticketDisplayLimit"`
	ExchangeRate       float64 `json:"exchangeRate"`
}

// LoginRequest carries the dashboard password.
type LoginRequest struct {
	Password string `json:"password"`
}
