package models

// SignalAction is the trading classification derived from a reading.
type SignalAction string

const (
	ActionBuy  SignalAction = "BUY"
	ActionSell SignalAction = "SELL"
	ActionHold SignalAction = "HOLD"
)

// Signal pairs an action with a human-readable reason.
type Signal struct {
	Action SignalAction `json:"action"`
	Reason string       `json:"reason"`
}

// Actionable reports whether the signal warrants a notification.
func (s Signal) Actionable() bool {
	return s.Action == ActionBuy || s.Action == ActionSell
}

// UpdateEvent is published to the event topic after each completed cycle.
type UpdateEvent struct {
	Reading *MacroReading `json:"reading"`
	Signal  Signal        `json:"signal"`
}
