package commands

import (
	"cryptoalert-telegram-bot/internal/store"
	"cryptoalert-telegram-bot/lib/helpers"
	"cryptoalert-telegram-bot/lib/translation"
)

// PriceSource provides current prices. Unavailability is reported via
// ok=false, never as an error.
type PriceSource interface {
	Price(ticker, currency string) (float64, bool)
}

// Handler implements the user-facing bot commands on top of the alert
// store and a price source. Every reply is MarkdownV2-safe.
type Handler struct {
	Store  *store.AlertStore
	Prices PriceSource
}

func (h *Handler) CommandStart() string {
	return helpers.EscapeMarkdownV2(translation.Translate(
		"Welcome to the Crypto Price Tracker Bot! Use /price <crypto> [currency] to get the price."))
}
