package types

import "strings"

// Condition is the direction of a threshold crossing that triggers an alert.
type Condition string

const (
	ConditionAbove Condition = "above"
	ConditionBelow Condition = "below"
)

// ParseCondition maps user input to a Condition, case-insensitively.
func ParseCondition(s string) (Condition, bool) {
	switch Condition(strings.ToLower(s)) {
	case ConditionAbove:
		return ConditionAbove, true
	case ConditionBelow:
		return ConditionBelow, true
	}
	return "", false
}

// Alert is a single user-defined price trigger. The ID is unique only
// within the owning user's alert list.
type Alert struct {
	ID          string    `json:"id"`
	Asset       string    `json:"asset"`
	Currency    string    `json:"currency"`
	TargetPrice float64   `json:"target_price"`
	Condition   Condition `json:"condition"`
}

// Satisfied reports whether the alert fires at the given price.
// Comparison is strict: a price exactly at the target does not fire.
func (a Alert) Satisfied(price float64) bool {
	switch a.Condition {
	case ConditionAbove:
		return price > a.TargetPrice
	case ConditionBelow:
		return price < a.TargetPrice
	}
	return false
}
