package commands

import (
	"strings"

	"cryptoalert-telegram-bot/lib/helpers"
	"cryptoalert-telegram-bot/lib/translation"

	log "github.com/sirupsen/logrus"
)

// defaultPriceCurrency differs from defaultAlertCurrency on purpose;
// the one-off price command historically quotes against usdt while
// alerts default to usd. Do not unify without a migration notice.
const defaultPriceCurrency = "usdt"

func (h *Handler) CommandPrice(args []string) string {
	log.Debugf("processing command /price with arguments: %v", args)

	if len(args) < 1 {
		return helpers.EscapeMarkdownV2(translation.Translate("Usage: /price <crypto> [currency]"))
	}

	ticker := strings.ToLower(args[0])
	currency := defaultPriceCurrency
	if len(args) > 1 {
		currency = strings.ToLower(args[1])
	}

	current, ok := h.Prices.Price(ticker, currency)
	if !ok {
		return helpers.EscapeMarkdownV2(translation.Translate(
			"Could not fetch the price for %s in %s",
			strings.ToUpper(ticker), strings.ToUpper(currency)))
	}

	return translation.Translate(
		"The price of *%s* in *%s* is `%s`",
		helpers.EscapeMarkdownV2(strings.ToUpper(ticker)),
		helpers.EscapeMarkdownV2(strings.ToUpper(currency)),
		helpers.FormatPriceUS(current, false))
}
