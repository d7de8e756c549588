package chat

import (
	"strings"

	"github.com/moosemarche/moosebot/backend/internal/model/catalog"
	"github.com/moosemarche/moosebot/backend/internal/model/chat"
)

// Notification is a transient toast a host raises after certain outcomes.
type Notification struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

var notifications = map[chat.Outcome]Notification{
	chat.OutcomeVendorLead:   {Title: "✅ VENDOR LEAD CAPTURED", Icon: "🚀"},
	chat.OutcomeConsumerLead: {Title: "✅ WAITLIST CONFIRMED", Icon: "🛡️"},
}

// NotificationFor reports the toast bound to outcome, if any.
func NotificationFor(outcome chat.Outcome) (Notification, bool) {
	n, ok := notifications[outcome]
	return n, ok
}

// DebugState is the internal logic view shown next to a reply in debug mode.
type DebugState struct {
	Intent  string       `json:"intent"`
	Pricing []PricingRow `json:"pricing,omitempty"`
	Vendors []VendorRow  `json:"vendors,omitempty"`
}

// PricingRow is a pricing tier with its CPM as a plain JSON number.
type PricingRow struct {
	Name    catalog.TierName `json:"name"`
	CPMCost float64          `json:"cpm_cost"`
}

// VendorRow is a vendor listing with its rating as a plain JSON number.
type VendorRow struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Location string  `json:"location"`
	Verified bool    `json:"verified"`
	Rating   float64 `json:"rating"`
}

// Inspect builds the debug view for outcome: pricing for vendor outcomes,
// inventory for consumer outcomes.
func Inspect(store catalog.Store, outcome chat.Outcome) DebugState {
	state := DebugState{Intent: strings.ToUpper(string(outcome))}
	switch {
	case strings.Contains(string(outcome), "vendor"):
		for _, tier := range store.Pricing() {
			state.Pricing = append(state.Pricing, PricingRow{Name: tier.Name, CPMCost: tier.CPMCost.InexactFloat64()})
		}
	case strings.Contains(string(outcome), "consumer"):
		for _, v := range store.Vendors() {
			state.Vendors = append(state.Vendors, VendorRow{
				Name:     v.Name,
				Category: v.Category,
				Location: v.Location,
				Verified: v.Verified,
				Rating:   v.Rating.InexactFloat64(),
			})
		}
	}
	return state
}

// ReplyView is the wire form of a turn shared by every host transport.
type ReplyView struct {
	Reply        string        `json:"reply"`
	Outcome      chat.Outcome  `json:"outcome"`
	Flow         string        `json:"flow"`
	Notification *Notification `json:"notification,omitempty"`
	Debug        *DebugState   `json:"debug,omitempty"`
}

// Present renders turn for a host. The debug panel is only attached when debug is set.
func Present(turn Turn, store catalog.Store, debug bool) ReplyView {
	view := ReplyView{
		Reply:        turn.Reply.Content,
		Outcome:      turn.Outcome,
		Flow:         turn.Flow.String(),
		Notification: turn.Notification,
	}
	if debug {
		state := Inspect(store, turn.Outcome)
		view.Debug = &state
	}
	return view
}
