package alert

import (
	"strings"
	"sync"
	"time"

	"cryptoalert-telegram-bot/internal/store"
	"cryptoalert-telegram-bot/internal/telegram"
	"cryptoalert-telegram-bot/lib/helpers"
	"cryptoalert-telegram-bot/lib/translation"

	log "github.com/sirupsen/logrus"
)

// PriceSource provides current prices; ok=false means unavailable.
type PriceSource interface {
	Price(ticker, currency string) (float64, bool)
}

// Notifier delivers outbound messages to users.
type Notifier interface {
	SendMessage(m telegram.Message) error
}

// Service periodically scans the alert store and notifies users whose
// price thresholds have been crossed. Triggered alerts are removed
// before delivery, so a notification is sent at most once per alert.
type Service struct {
	store    *store.AlertStore
	prices   PriceSource
	notifier Notifier
	interval time.Duration

	// processingMutex ensures only one check pass runs at a time
	processingMutex sync.Mutex
}

func NewService(s *store.AlertStore, p PriceSource, n Notifier, interval time.Duration) *Service {
	return &Service{
		store:    s,
		prices:   p,
		notifier: n,
		interval: interval,
	}
}

// Start launches the background check loop.
func (s *Service) Start() {
	go func() {
		for {
			s.processingMutex.Lock()
			s.checkOnce()
			s.processingMutex.Unlock()
			time.Sleep(s.interval)
		}
	}()
	log.Infof("alert service started, checking every %s", s.interval)
}

func (s *Service) checkOnce() {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic recovered in alert checker: %v", r)
		}
	}()
	s.CheckAlerts()
}

// CheckAlerts compares every registered alert with the live price and
// fires the ones whose condition is satisfied. It iterates a snapshot
// taken under lock, so user-initiated removals during the pass are
// safe. A failed lookup leaves the alert armed for the next pass; a
// failed delivery is logged and never retried.
func (s *Service) CheckAlerts() {
	log.Debug("checking alerts...")

	for chatID, alerts := range s.store.Snapshot() {
		for _, alert := range alerts {
			current, ok := s.prices.Price(alert.Asset, alert.Currency)
			if !ok {
				log.Warnf("no price data for %s/%s, alert %s stays armed", alert.Asset, alert.Currency, alert.ID)
				continue
			}

			if !alert.Satisfied(current) {
				continue
			}

			// Remove first: if the user deleted the alert mid-scan the
			// removal reports not found and no notification goes out.
			if _, err := s.store.Remove(chatID, alert.ID); err != nil {
				log.Debugf("alert %s already removed, skipping notification", alert.ID)
				continue
			}

			text := helpers.EscapeMarkdownV2(translation.Translate(
				"🔔 Alert: %s is now %s %s %s!\nCurrent price: %s %s",
				strings.ToUpper(alert.Asset),
				string(alert.Condition),
				helpers.FormatTargetUS(alert.TargetPrice, false),
				strings.ToUpper(alert.Currency),
				helpers.FormatPriceUS(current, false),
				strings.ToUpper(alert.Currency)))

			if err := s.notifier.SendMessage(telegram.Message{ChatID: chatID, Text: text}); err != nil {
				log.Errorf("failed to send alert notification to chat %d: %v", chatID, err)
				continue
			}
			log.Infof("alert %s fired for chat %d (%s %s %v at %v)",
				alert.ID, chatID, alert.Asset, alert.Condition, alert.TargetPrice, current)
		}
	}

	log.Debug("alert check completed")
}
