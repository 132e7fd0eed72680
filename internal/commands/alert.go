package commands

import (
	"fmt"
	"strconv"
	"strings"

	"cryptoalert-telegram-bot/internal/store"
	"cryptoalert-telegram-bot/internal/types"
	"cryptoalert-telegram-bot/lib/helpers"
	"cryptoalert-telegram-bot/lib/translation"

	log "github.com/sirupsen/logrus"
)

const defaultAlertCurrency = "usd"

func quotaReachedReply() string {
	return helpers.EscapeMarkdownV2(translation.Translate(
		"You've reached the maximum limit of %d alerts. Delete some alerts using /del before adding new ones.",
		store.MaxAlertsPerUser))
}

// CommandSetAlert creates a new price alert. The quota is checked up
// front so a user at the limit gets the quota message even on
// otherwise malformed input, matching the historical behavior.
func (h *Handler) CommandSetAlert(chatID int64, args []string) string {
	log.Debugf("processing command /alert with arguments: %v", args)

	if h.Store.Count(chatID) >= store.MaxAlertsPerUser {
		return quotaReachedReply()
	}

	if len(args) < 3 {
		return helpers.EscapeMarkdownV2(translation.Translate(
			"Usage: /alert <crypto> <target_price> <above/below> [currency]"))
	}

	asset := strings.ToLower(args[0])

	target, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return helpers.EscapeMarkdownV2(translation.Translate("Invalid price value. Please enter a number."))
	}

	condition, ok := types.ParseCondition(args[2])
	if !ok {
		return helpers.EscapeMarkdownV2(translation.Translate("Condition must be 'above' or 'below'"))
	}

	currency := defaultAlertCurrency
	if len(args) > 3 {
		currency = strings.ToLower(args[3])
	}

	alert, err := h.Store.Add(chatID, asset, currency, target, condition)
	if err != nil {
		// Quota race between Count and Add.
		return quotaReachedReply()
	}

	return helpers.EscapeMarkdownV2(translation.Translate(
		"Alert #%s set for %s when price is %s %s %s",
		alert.ID,
		strings.ToUpper(alert.Asset),
		string(alert.Condition),
		helpers.FormatTargetUS(alert.TargetPrice, false),
		strings.ToUpper(alert.Currency)))
}

func (h *Handler) CommandDeleteAlert(chatID int64, args []string) string {
	log.Debugf("processing command /del with arguments: %v", args)

	if len(args) < 1 {
		return helpers.EscapeMarkdownV2(translation.Translate("Usage: /del <alert_id>"))
	}

	if h.Store.Count(chatID) == 0 {
		return helpers.EscapeMarkdownV2(translation.Translate("You have no active alerts."))
	}

	alertID := args[0]
	if _, err := h.Store.Remove(chatID, alertID); err != nil {
		return helpers.EscapeMarkdownV2(translation.Translate("Alert #%s not found.", alertID))
	}

	return helpers.EscapeMarkdownV2(translation.Translate("Alert #%s deleted.", alertID))
}

func (h *Handler) CommandListAlerts(chatID int64) string {
	log.Debug("processing command /alerts")

	alerts := h.Store.List(chatID)
	if len(alerts) == 0 {
		return helpers.EscapeMarkdownV2(translation.Translate("You have no active alerts."))
	}

	var b strings.Builder
	b.WriteString(helpers.EscapeMarkdownV2(translation.Translate(
		"Your active alerts (%d/%d):",
		len(alerts), store.MaxAlertsPerUser)))

	for _, alert := range alerts {
		b.WriteString("\n")
		b.WriteString(helpers.EscapeMarkdownV2(fmt.Sprintf("#%s: %s %s %s %s",
			alert.ID,
			strings.ToUpper(alert.Asset),
			alert.Condition,
			helpers.FormatTargetUS(alert.TargetPrice, false),
			strings.ToUpper(alert.Currency))))
	}

	b.WriteString("\n\n")
	b.WriteString(helpers.EscapeMarkdownV2(translation.Translate("Use /del <alert_id> to remove an alert.")))
	return b.String()
}
