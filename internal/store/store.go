package store

import (
	"sync"

	"cryptoalert-telegram-bot/internal/types"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MaxAlertsPerUser caps how many alerts a single chat may hold at once.
const MaxAlertsPerUser = 5

var (
	ErrQuotaExceeded = errors.New("alert quota exceeded")
	ErrNotFound      = errors.New("alert not found")
)

// AlertStore keeps every chat's alerts in memory, in insertion order.
// State is volatile and lost on restart. IDs are the first 8 characters
// of a v4 UUID; collisions within a list are not checked (known
// limitation, acceptable at <= 5 live alerts per chat).
type AlertStore struct {
	mu     sync.Mutex
	alerts map[int64][]types.Alert
}

func NewAlertStore() *AlertStore {
	return &AlertStore{alerts: make(map[int64][]types.Alert)}
}

// Add registers a new alert for the chat. It fails with ErrQuotaExceeded
// when the chat already holds MaxAlertsPerUser alerts.
func (s *AlertStore) Add(chatID int64, asset, currency string, target float64, condition types.Condition) (types.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.alerts[chatID]) >= MaxAlertsPerUser {
		return types.Alert{}, ErrQuotaExceeded
	}

	alert := types.Alert{
		ID:          uuid.NewString()[:8],
		Asset:       asset,
		Currency:    currency,
		TargetPrice: target,
		Condition:   condition,
	}
	s.alerts[chatID] = append(s.alerts[chatID], alert)
	return alert, nil
}

// List returns a copy of the chat's alerts in insertion order.
func (s *AlertStore) List(chatID int64) []types.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	alerts := make([]types.Alert, len(s.alerts[chatID]))
	copy(alerts, s.alerts[chatID])
	return alerts
}

// Count returns how many alerts the chat currently holds.
func (s *AlertStore) Count(chatID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.alerts[chatID])
}

// TotalCount returns the number of alerts across all chats.
func (s *AlertStore) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, alerts := range s.alerts {
		total += len(alerts)
	}
	return total
}

// Remove deletes the chat's alert with the given id and returns it.
// Removing an id that is already gone fails with ErrNotFound, so a
// second removal attempt is a harmless no-op for callers.
func (s *AlertStore) Remove(chatID int64, alertID string) (types.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, alert := range s.alerts[chatID] {
		if alert.ID == alertID {
			s.alerts[chatID] = append(s.alerts[chatID][:i], s.alerts[chatID][i+1:]...)
			if len(s.alerts[chatID]) == 0 {
				delete(s.alerts, chatID)
			}
			return alert, nil
		}
	}
	return types.Alert{}, ErrNotFound
}

// Snapshot returns a copy of the full chat -> alerts mapping, taken
// under lock, so the evaluator can iterate while removals happen.
func (s *AlertStore) Snapshot() map[int64][]types.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[int64][]types.Alert, len(s.alerts))
	for chatID, alerts := range s.alerts {
		cp := make([]types.Alert, len(alerts))
		copy(cp, alerts)
		snapshot[chatID] = cp
	}
	return snapshot
}
