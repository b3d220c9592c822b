package domain

// TimeFormat selects 12h or 24h clock display.
type TimeFormat string

const (
	TimeFormat12h TimeFormat = "12h"
	TimeFormat24h TimeFormat = "24h"
)

// Settings holds the scalar dashboard preferences persisted alongside the
// ticket and shift collections. TicketDisplayLimit of -1 means "show all".
// ExchangeRate is PHP per USD, used by the earnings projection.
type Settings struct {
	AvatarURL          string     `json:"avatarUrl,omitempty"`
	Theme              string     `json:"theme,omitempty"`
	TimeFormat         TimeFormat `json:"timeFormat"`
	TicketDisplayLimit int        `json:"ticketDisplayLimit"`
	ExchangeRate       float64    `json:"exchangeRate"`
}

// DefaultSettings returns the first-run preference set.
func DefaultSettings() Settings {
	return Settings{
		TimeFormat:         TimeFormat12h,
		TicketDisplayLimit: 10,
		ExchangeRate:       58.75,
	}
}

// Normalize clamps invalid preference values back to defaults.
func (s Settings) Normalize() Settings {
	if s.TimeFormat != TimeFormat12h && s.TimeFormat != TimeFormat24h {
		s.TimeFormat = TimeFormat12h
	}
	if s.TicketDisplayLimit == 0 || s.TicketDisplayLimit < -1 {
		s.TicketDisplayLimit = 10
	}
	if s.ExchangeRate <= 0 {
		s.ExchangeRate = DefaultSettings().ExchangeRate
	}
	return s
}
