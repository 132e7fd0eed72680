package commands

import (
	"strings"
	"testing"

	"cryptoalert-telegram-bot/internal/store"
	"cryptoalert-telegram-bot/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPrices struct {
	price float64
	ok    bool

	gotTicker   string
	gotCurrency string
}

func (s *stubPrices) Price(ticker, currency string) (float64, bool) {
	s.gotTicker = ticker
	s.gotCurrency = currency
	return s.price, s.ok
}

func newTestHandler(price float64, ok bool) (*Handler, *stubPrices) {
	prices := &stubPrices{price: price, ok: ok}
	return &Handler{Store: store.NewAlertStore(), Prices: prices}, prices
}

func TestCommandPrice(t *testing.T) {
	h, prices := newTestHandler(51000, true)

	reply := h.CommandPrice([]string{"BTC"})
	assert.Contains(t, reply, "BTC")
	assert.Contains(t, reply, "51,000")
	assert.Equal(t, "btc", prices.gotTicker)

	reply = h.CommandPrice([]string{"btc", "EUR"})
	assert.Equal(t, "eur", prices.gotCurrency)
	assert.Contains(t, reply, "EUR")
}

func TestCommandPriceUsage(t *testing.T) {
	h, _ := newTestHandler(0, false)
	assert.Contains(t, h.CommandPrice(nil), "Usage: /price")
}

func TestCommandPriceUnavailable(t *testing.T) {
	h, _ := newTestHandler(0, false)
	reply := h.CommandPrice([]string{"xyz123nonexistent"})
	assert.Contains(t, reply, "Could not fetch the price")
}

// The one-off price command defaults to usdt while alerts default to
// usd. The asymmetry is deliberate; this test pins it down so it is
// never unified by accident.
func TestDefaultCurrencyAsymmetry(t *testing.T) {
	h, prices := newTestHandler(51000, true)

	h.CommandPrice([]string{"btc"})
	assert.Equal(t, "usdt", prices.gotCurrency)

	h.CommandSetAlert(1, []string{"btc", "50000", "above"})
	alerts := h.Store.List(1)
	require.Len(t, alerts, 1)
	assert.Equal(t, "usd", alerts[0].Currency)

	assert.NotEqual(t, defaultPriceCurrency, defaultAlertCurrency)
}

func TestCommandSetAlert(t *testing.T) {
	h, _ := newTestHandler(0, false)

	reply := h.CommandSetAlert(1, []string{"BTC", "50000", "ABOVE", "USD"})
	alerts := h.Store.List(1)
	require.Len(t, alerts, 1)
	assert.Equal(t, "btc", alerts[0].Asset)
	assert.Equal(t, "usd", alerts[0].Currency)
	assert.Equal(t, 50000.0, alerts[0].TargetPrice)
	assert.Equal(t, types.ConditionAbove, alerts[0].Condition)
	assert.Contains(t, reply, alerts[0].ID)
}

func TestCommandSetAlertValidation(t *testing.T) {
	h, _ := newTestHandler(0, false)

	assert.Contains(t, h.CommandSetAlert(1, []string{"btc", "50000"}), "Usage: /alert")
	assert.Contains(t, h.CommandSetAlert(1, []string{"btc", "abc", "above"}), "Invalid price value")
	assert.Contains(t, h.CommandSetAlert(1, []string{"btc", "50000", "sideways"}), "Condition must be")
	assert.Zero(t, h.Store.Count(1), "no alert is created on invalid input")
}

func TestCommandSetAlertQuota(t *testing.T) {
	h, _ := newTestHandler(0, false)

	for i := 0; i < store.MaxAlertsPerUser; i++ {
		reply := h.CommandSetAlert(1, []string{"btc", "50000", "above"})
		assert.NotContains(t, reply, "maximum limit")
	}

	reply := h.CommandSetAlert(1, []string{"btc", "50000", "above"})
	assert.Contains(t, reply, "maximum limit")
	assert.Contains(t, reply, "5 alerts")
	assert.NotContains(t, reply, "%d", "quota count must be substituted")
	assert.Equal(t, store.MaxAlertsPerUser, h.Store.Count(1))
}

func TestCommandDeleteAlert(t *testing.T) {
	h, _ := newTestHandler(0, false)

	assert.Contains(t, h.CommandDeleteAlert(1, nil), "Usage: /del")
	assert.Contains(t, h.CommandDeleteAlert(1, []string{"deadbeef"}), "no active alerts")

	h.CommandSetAlert(1, []string{"btc", "50000", "above"})
	alerts := h.Store.List(1)
	require.Len(t, alerts, 1)

	assert.Contains(t, h.CommandDeleteAlert(1, []string{"deadbeef"}), "not found")
	assert.Equal(t, 1, h.Store.Count(1))

	reply := h.CommandDeleteAlert(1, []string{alerts[0].ID})
	assert.Contains(t, reply, "deleted")
	assert.Contains(t, reply, alerts[0].ID)
	assert.NotContains(t, reply, "%s", "alert id must be substituted")
	assert.Zero(t, h.Store.Count(1))
}

func TestCommandListAlerts(t *testing.T) {
	h, _ := newTestHandler(0, false)

	assert.Contains(t, h.CommandListAlerts(1), "no active alerts")

	h.CommandSetAlert(1, []string{"btc", "50000", "above"})
	h.CommandSetAlert(1, []string{"eth", "1800", "below", "eur"})

	reply := h.CommandListAlerts(1)
	assert.Contains(t, reply, "2/5")
	assert.NotContains(t, reply, "%d")
	assert.Contains(t, reply, "BTC")
	assert.Contains(t, reply, "ETH")
	assert.Contains(t, reply, "above")
	assert.Contains(t, reply, "below")
	assert.Contains(t, reply, "EUR")
	for _, alert := range h.Store.List(1) {
		assert.Contains(t, reply, alert.ID)
	}
}

func TestCommandStart(t *testing.T) {
	h, _ := newTestHandler(0, false)
	reply := h.CommandStart()
	assert.Contains(t, reply, "Welcome")
	assert.False(t, strings.Contains(reply, "%"), "no unexpanded format verbs")
}
