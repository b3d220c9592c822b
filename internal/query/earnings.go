package query

import (
	"github.com/shopspring/decimal"

	"github.com/spec-kit/supportzen/internal/domain"
)

// Earnings summarizes payout for resolved work: a flat USD rate per resolved
// or closed ticket, converted to PHP at the configured exchange rate.
type Earnings struct {
	ResolvedTickets int    `json:"resolvedTickets"`
	PricePerTicket  string `json:"pricePerTicketUsd"`
	ExchangeRate    string `json:"exchangeRate"`
	TotalUSD        string `json:"totalUsd"`
	TotalPHP        string `json:"totalPhp"`
}

// ComputeEarnings derives the earnings summary from a ticket snapshot.
func ComputeEarnings(tickets []domain.Ticket, price decimal.Decimal, exchangeRate float64) Earnings {
	count := 0
	for _, t := range tickets {
		if domain.TerminalStatus(t.Status) {
			count++
		}
	}

	rate := decimal.NewFromFloat(exchangeRate)
	usd := earningsUSD(tickets, price)
	return Earnings{
		ResolvedTickets: count,
		PricePerTicket:  price.StringFixed(2),
		ExchangeRate:    rate.StringFixed(2),
		TotalUSD:        usd.StringFixed(2),
		TotalPHP:        usd.Mul(rate).StringFixed(2),
	}
}

func earningsUSD(tickets []domain.Ticket, price decimal.Decimal) decimal.Decimal {
	count := 0
	for _, t := range tickets {
		if domain.TerminalStatus(t.Status) {
			count++
		}
	}
	return price.Mul(decimal.NewFromInt(int64(count)))
}
